package command

import (
	"fmt"

	"github.com/atomicstack/popup-launcher/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Dispatcher launches a shell command line without waiting for it.
type Dispatcher interface {
	Execute(command string) error
}

// Request encapsulates a leaf activation.
type Request struct {
	ID      string
	Label   string
	Command string
}

// Result is delivered back to the model once a request has been handed to
// the dispatcher.
type Result struct {
	ID    string
	Label string
	Err   error
}

// Bus coordinates the execution of launcher commands.
type Bus struct {
	dispatcher Dispatcher
	tracer     events.CommandTracer
	log        *zap.Logger
}

// New initialises a command bus instance.
func New(dispatcher Dispatcher, tracer events.CommandTracer, log *zap.Logger) *Bus {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bus{dispatcher: dispatcher, tracer: tracer, log: log}
}

// Execute wraps a dispatch into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	b.tracer.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if b.dispatcher == nil {
			b.tracer.Skip(req.ID, req.Label)
			return Result{ID: req.ID, Label: req.Label, Err: fmt.Errorf("no dispatcher configured for %q", req.Label)}
		}
		err := b.dispatcher.Execute(req.Command)
		if err != nil {
			b.log.Error("command dispatch failed",
				zap.String("id", req.ID),
				zap.String("label", req.Label),
				zap.Error(err),
			)
		}
		result := Result{ID: req.ID, Label: req.Label, Err: err}
		b.tracer.Result(req.ID, req.Label, fmt.Sprintf("%T", result))
		return result
	}
}
