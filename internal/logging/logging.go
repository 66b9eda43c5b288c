package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	appDirName     = "popup-launcher"
	defaultLogFile = "popup-launcher.log"
)

// Options controls where and how much the launcher logs.
type Options struct {
	// FilePath receives JSON log lines. Empty falls back to DefaultPath.
	FilePath string
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// Trace enables structured trace events; it implies debug level.
	Trace bool
	// Console writes human-readable lines to stderr instead of the file.
	// Used by CLI subcommands that do not own the terminal.
	Console bool
}

// ParseLevel maps a level name onto a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", level)
	}
}

// DefaultPath returns the log file location under the user cache directory,
// or the working directory when no cache directory is available.
func DefaultPath() string {
	dir, err := os.UserCacheDir()
	if err != nil || dir == "" {
		return defaultLogFile
	}
	return filepath.Join(dir, appDirName, defaultLogFile)
}

// New builds the logger for a run. Directories for the log file are created
// when missing.
func New(opts Options) (*zap.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	if opts.Trace && level > zapcore.DebugLevel {
		level = zapcore.DebugLevel
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		ErrorOutputPaths: []string{"stderr"},
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if opts.Console {
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
		cfg.OutputPaths = []string{"stderr"}
		return cfg.Build()
	}

	path := strings.TrimSpace(opts.FilePath)
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	cfg.OutputPaths = []string{path}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}
	return logger, nil
}

// Tracer emits structured trace entries when tracing is enabled.
type Tracer struct {
	log     *zap.Logger
	enabled bool
}

// NewTracer wraps a logger. A nil logger yields a disabled tracer.
func NewTracer(log *zap.Logger, enabled bool) *Tracer {
	if log == nil {
		return &Tracer{log: zap.NewNop()}
	}
	return &Tracer{log: log.Named("trace"), enabled: enabled}
}

// Enabled reports whether trace entries are written.
func (t *Tracer) Enabled() bool {
	return t != nil && t.enabled
}

// Trace appends a structured entry named by event.
func (t *Tracer) Trace(event string, fields ...zap.Field) {
	if !t.Enabled() {
		return
	}
	t.log.Debug(event, fields...)
}
