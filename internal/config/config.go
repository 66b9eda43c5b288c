package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/atomicstack/popup-launcher/internal/app"
	"github.com/atomicstack/popup-launcher/internal/logging"
	"github.com/spf13/pflag"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Level    string
	Trace    bool
}

const (
	appName      = "popup-launcher"
	menuFileName = "menu-config.json"
	bundledDir   = "config"
)

const (
	envConfig   = "POPUP_LAUNCHER_CONFIG"
	envWidth    = "POPUP_LAUNCHER_WIDTH"
	envHeight   = "POPUP_LAUNCHER_HEIGHT"
	envFooter   = "POPUP_LAUNCHER_FOOTER"
	envMouse    = "POPUP_LAUNCHER_MOUSE"
	envTrace    = "POPUP_LAUNCHER_TRACE"
	envLogFile  = "POPUP_LAUNCHER_LOG_FILE"
	envLogLevel = "POPUP_LAUNCHER_LOG_LEVEL"
	envShell    = "POPUP_LAUNCHER_SHELL"
)

// Flags holds the values bound to a flag set until Resolve turns them into
// a Config.
type Flags struct {
	env map[string]string

	configPath *string
	width      *int
	height     *int
	footer     *bool
	mouse      *bool
	trace      *bool
	logFile    *string
	logLevel   *string
	shell      *string
}

// Register binds the launcher flags to fs, using environment values as
// defaults.
func Register(fs *pflag.FlagSet, environ []string) *Flags {
	env := parseEnv(environ)
	return &Flags{
		env:        env,
		configPath: fs.StringP("config", "c", envOrDefault(env, envConfig, ""), "path to the menu config (skips the default locations)"),
		width:      fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)"),
		height:     fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)"),
		footer:     fs.Bool("footer", envOrBool(env, envFooter, false), "enable footer hint row (disabled by default)"),
		mouse:      fs.Bool("mouse", envOrBool(env, envMouse, true), "enable mouse clicks, clicking outside the menu dismisses it"),
		trace:      fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging"),
		logFile:    fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file"),
		logLevel:   fs.String("log-level", envOrDefault(env, envLogLevel, "info"), "log level: debug, info, warn or error"),
		shell:      fs.String("shell", envOrDefault(env, envShell, ""), "shell used to run commands, e.g. \"/bin/bash -c\""),
	}
}

// Resolve validates the bound values and assembles the runtime config.
func (f *Flags) Resolve(args []string) (Config, error) {
	if *f.width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *f.width)
	}
	if *f.height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *f.height)
	}
	if _, err := logging.ParseLevel(*f.logLevel); err != nil {
		return Config{}, err
	}

	logFile := strings.TrimSpace(*f.logFile)
	if logFile == "" {
		logFile = logging.DefaultPath()
	}

	cfg := Config{
		App: app.Config{
			MenuPaths:  MenuCandidates(*f.configPath, f.env),
			Width:      *f.width,
			Height:     *f.height,
			ShowFooter: *f.footer,
			Mouse:      *f.mouse,
			Shell:      strings.TrimSpace(*f.shell),
		},
		Logging: Logging{
			FilePath: logFile,
			Level:    strings.ToLower(strings.TrimSpace(*f.logLevel)),
			Trace:    *f.trace,
		},
		Flags: map[string]string{
			"config":   *f.configPath,
			"width":    strconv.Itoa(*f.width),
			"height":   strconv.Itoa(*f.height),
			"footer":   strconv.FormatBool(*f.footer),
			"mouse":    strconv.FormatBool(*f.mouse),
			"trace":    strconv.FormatBool(*f.trace),
			"logFile":  logFile,
			"logLevel": *f.logLevel,
			"shell":    *f.shell,
		},
		Args: append([]string(nil), args...),
	}
	return cfg, nil
}

// LoadArgs parses args against a fresh flag set. The cobra command binds
// the same flags through Register instead.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	flags := Register(fs, environ)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return flags.Resolve(args)
}

// MenuCandidates lists the menu config locations in lookup order. An
// explicit path replaces the defaults.
func MenuCandidates(explicit string, env map[string]string) []string {
	if trimmed := strings.TrimSpace(explicit); trimmed != "" {
		return []string{expandHome(trimmed, env)}
	}
	candidates := make([]string, 0, 2)
	if dir, err := UserConfigDir(env); err == nil {
		candidates = append(candidates, filepath.Join(dir, menuFileName))
	}
	if bundled := BundledMenuPath(); bundled != "" {
		candidates = append(candidates, bundled)
	}
	return candidates
}

// UserConfigDir returns the per-user directory for the launcher:
//   - Linux and other Unix-like systems: $XDG_CONFIG_HOME/popup-launcher or
//     $HOME/.config/popup-launcher
//   - macOS: $HOME/.config/popup-launcher
//   - Windows: %APPDATA%\popup-launcher
func UserConfigDir(env map[string]string) (string, error) {
	if runtime.GOOS == "windows" {
		if appData := env["APPDATA"]; appData != "" {
			return filepath.Join(appData, appName), nil
		}
	} else {
		if xdg := env["XDG_CONFIG_HOME"]; xdg != "" && runtime.GOOS != "darwin" {
			return filepath.Join(xdg, appName), nil
		}
		if home := env["HOME"]; home != "" {
			return filepath.Join(home, ".config", appName), nil
		}
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine user config directory: %w", err)
	}
	return filepath.Join(base, appName), nil
}

// BundledMenuPath is the default config shipped next to the executable.
func BundledMenuPath() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), bundledDir, menuFileName)
}

func expandHome(path string, env map[string]string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home := env["HOME"]
	if home == "" {
		var err error
		if home, err = os.UserHomeDir(); err != nil {
			return path
		}
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
