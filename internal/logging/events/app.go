package events

import (
	"github.com/atomicstack/popup-launcher/internal/logging"
	"go.uber.org/zap"
)

type AppTracer struct {
	t *logging.Tracer
}

func (a AppTracer) Start(payload map[string]interface{}) {
	a.t.Trace("app.start", zap.Any("payload", payload))
}

func (a AppTracer) ConfigLoaded(path string, buttons, categories int) {
	a.t.Trace("app.config", zap.String("path", path), zap.Int("buttons", buttons), zap.Int("categories", categories))
}

func (a AppTracer) Exit(reason string) {
	a.t.Trace("app.exit", zap.String("reason", reason))
}

// Tracers groups the typed trace emitters handed to each component.
type Tracers struct {
	App      AppTracer
	UI       UITracer
	Filter   FilterTracer
	Action   ActionTracer
	Command  CommandTracer
	Dispatch DispatchTracer
}

// New binds every tracer to t. A nil tracer disables all of them.
func New(t *logging.Tracer) Tracers {
	if t == nil {
		t = logging.NewTracer(nil, false)
	}
	return Tracers{
		App:      AppTracer{t: t},
		UI:       UITracer{t: t},
		Filter:   FilterTracer{t: t},
		Action:   ActionTracer{t: t},
		Command:  CommandTracer{t: t},
		Dispatch: DispatchTracer{t: t},
	}
}

// Disabled returns tracers that drop every event.
func Disabled() Tracers {
	return New(nil)
}
