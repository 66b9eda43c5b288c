// Popup-launcher shows a keyboard and mouse driven menu of shell commands
// read from a JSON file, launches the chosen entry detached, and exits.
//
// Usage:
//
//	popup-launcher [flags]
//	popup-launcher validate|list|dump|version [flags]
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atomicstack/popup-launcher/internal/app"
	"github.com/atomicstack/popup-launcher/internal/config"
	"github.com/atomicstack/popup-launcher/internal/logging"
	"github.com/atomicstack/popup-launcher/internal/logging/events"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// exitError carries the process exit code for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error {
	return &exitError{code: exitUsage, err: err}
}

func failure(err error) error {
	return &exitError{code: exitFailure, err: err}
}

func main() {
	os.Exit(run(os.Args[1:], os.Environ(), os.Stdout, os.Stderr))
}

// run executes the CLI and maps the outcome onto an exit code.
func run(args, environ []string, stdout, stderr io.Writer) int {
	root := newRootCmd(args, environ, stdout)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.Execute()
	if err == nil {
		return exitOK
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		if exitErr.code == exitUsage {
			fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return exitErr.code
	}
	// cobra reports unknown commands and bad arguments without going
	// through the flag error func.
	fmt.Fprintf(stderr, "Configuration error: %v\n", err)
	return exitUsage
}

func newRootCmd(args, environ []string, stdout io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "popup-launcher",
		Short: "Popup menu that launches shell commands",
		Long: `A small terminal menu of buttons grouped into categories.

Selecting a button runs its command detached from the launcher and closes
the menu. Escape goes back to the main menu or closes it from there.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := config.Register(root.PersistentFlags(), environ)
	resolve := func() (config.Config, error) {
		cfg, err := flags.Resolve(args)
		if err != nil {
			return config.Config{}, usageError(err)
		}
		return cfg, nil
	}

	root.RunE = func(_ *cobra.Command, _ []string) error {
		cfg, err := resolve()
		if err != nil {
			return err
		}
		return runLauncher(cfg)
	}

	root.AddCommand(
		newValidateCmd(resolve, stdout),
		newListCmd(resolve, stdout),
		newDumpCmd(resolve, stdout),
		newVersionCmd(stdout),
	)
	return root
}

// runLauncher owns the terminal until the menu closes.
func runLauncher(cfg config.Config) error {
	log, err := logging.New(logging.Options{
		FilePath: cfg.Logging.FilePath,
		Level:    cfg.Logging.Level,
		Trace:    cfg.Logging.Trace,
	})
	if err != nil {
		return failure(err)
	}
	defer func() { _ = log.Sync() }()

	tracers := events.New(logging.NewTracer(log, cfg.Logging.Trace))
	traceStartup(tracers, cfg)

	if err := app.Run(cfg.App, log, tracers); err != nil {
		log.Error("launcher failed", zap.Error(err))
		return failure(err)
	}
	return nil
}

func traceStartup(tracers events.Tracers, cfg config.Config) {
	tracers.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		file *os.File
	}{
		{"stdin", os.Stdin},
		{"stdout", os.Stdout},
		{"stderr", os.Stderr},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.file.Fd())
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			width, height, err := term.GetSize(fd)
			if err != nil {
				entry.Error = err.Error()
			} else {
				entry.Width, entry.Height = width, height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			}
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
