// Package dispatcher launches menu commands as detached background
// processes. Execute returns as soon as the child has been created; the
// launcher never waits for, or reads from, the processes it starts.
package dispatcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/atomicstack/popup-launcher/internal/logging/events"
	"go.uber.org/zap"
)

// ErrEmptyCommand is wrapped by DispatchError when there is nothing to run.
var ErrEmptyCommand = errors.New("empty command")

// DispatchError reports that the process could not be created.
type DispatchError struct {
	Command string
	Err     error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch %q: %v", e.Command, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// Starter creates the process for cmd without waiting for it. Tests replace
// it to avoid spawning real processes.
type Starter func(cmd *exec.Cmd) error

// Dispatcher runs shell command lines in their own session.
type Dispatcher struct {
	shell  []string
	dir    string
	env    []string
	start  Starter
	reap   bool
	log    *zap.Logger
	tracer events.DispatchTracer
}

// Option customises a Dispatcher.
type Option func(*Dispatcher)

// WithShell overrides the interpreter. The command line is appended as the
// final argument, so shell must end with the flag that takes a script
// (for example []string{"/bin/bash", "-c"}).
func WithShell(shell ...string) Option {
	return func(d *Dispatcher) {
		if len(shell) > 0 && strings.TrimSpace(shell[0]) != "" {
			d.shell = append([]string(nil), shell...)
		}
	}
}

// ParseShell splits a shell command line such as "/bin/bash -c". A bare
// interpreter gets the platform's script flag appended.
func ParseShell(line string) []string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return defaultShell()
	}
	if len(fields) == 1 {
		fields = append(fields, defaultShell()[1])
	}
	return fields
}

// WithDir sets the working directory of launched commands.
func WithDir(dir string) Option {
	return func(d *Dispatcher) {
		d.dir = dir
	}
}

// WithEnv replaces the environment passed to launched commands.
func WithEnv(env []string) Option {
	return func(d *Dispatcher) {
		d.env = append([]string(nil), env...)
	}
}

// WithStarter replaces process creation.
func WithStarter(start Starter) Option {
	return func(d *Dispatcher) {
		if start != nil {
			d.start = start
			d.reap = false
		}
	}
}

// WithTracer attaches trace events for spawned processes.
func WithTracer(t events.DispatchTracer) Option {
	return func(d *Dispatcher) {
		d.tracer = t
	}
}

// New builds a dispatcher using the platform shell.
func New(log *zap.Logger, opts ...Option) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Dispatcher{
		shell:  defaultShell(),
		start:  startCmd,
		reap:   true,
		log:    log,
		tracer: events.Disabled().Dispatch,
	}
	if home, err := os.UserHomeDir(); err == nil {
		d.dir = home
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Shell returns the interpreter argv prefix.
func (d *Dispatcher) Shell() []string {
	return append([]string(nil), d.shell...)
}

// Command builds the process description for a command line without
// starting it.
func (d *Dispatcher) Command(command string) *exec.Cmd {
	args := append(append([]string(nil), d.shell[1:]...), command)
	cmd := exec.Command(d.shell[0], args...)
	cmd.Dir = d.dir
	if d.env != nil {
		cmd.Env = append([]string(nil), d.env...)
	}
	// Leaving Stdin/Stdout/Stderr nil connects them to the null device, so
	// nothing the child prints reaches the overlay's terminal.
	cmd.SysProcAttr = detachedAttr()
	return cmd
}

// Execute starts command through the shell and returns immediately.
func (d *Dispatcher) Execute(command string) error {
	if strings.TrimSpace(command) == "" {
		err := &DispatchError{Command: command, Err: ErrEmptyCommand}
		d.log.Error("command dispatch failed", zap.Error(err))
		return err
	}
	cmd := d.Command(command)
	if err := d.start(cmd); err != nil {
		derr := &DispatchError{Command: command, Err: err}
		d.log.Error("command dispatch failed",
			zap.String("command", command),
			zap.Strings("shell", d.shell),
			zap.Error(err),
		)
		return derr
	}
	pid := 0
	if cmd.Process != nil {
		pid = cmd.Process.Pid
	}
	d.log.Info("command dispatched", zap.String("command", command), zap.Int("pid", pid))
	d.tracer.Spawn(command, pid)
	if d.reap && cmd.Process != nil {
		go d.wait(cmd, command, pid)
	}
	return nil
}

// wait collects the exit status so the child is not left as a zombie while
// the launcher is still running.
func (d *Dispatcher) wait(cmd *exec.Cmd, command string, pid int) {
	err := cmd.Wait()
	d.tracer.Exit(command, pid, err)
	if err != nil {
		d.log.Debug("dispatched command exited", zap.String("command", command), zap.Int("pid", pid), zap.Error(err))
		return
	}
	d.log.Debug("dispatched command exited", zap.String("command", command), zap.Int("pid", pid))
}

func startCmd(cmd *exec.Cmd) error {
	return cmd.Start()
}
