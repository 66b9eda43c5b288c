package app

import (
	"errors"
	"fmt"

	"github.com/atomicstack/popup-launcher/internal/dispatcher"
	"github.com/atomicstack/popup-launcher/internal/logging/events"
	"github.com/atomicstack/popup-launcher/internal/menu"
	"github.com/atomicstack/popup-launcher/internal/theme"
	"github.com/atomicstack/popup-launcher/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Config describes user-provided application options.
type Config struct {
	MenuPaths  []string
	Width      int
	Height     int
	ShowFooter bool
	Mouse      bool
	Shell      string
}

// LoadMenu resolves the menu config from cfg.MenuPaths.
func LoadMenu(cfg Config, log *zap.Logger) (*menu.Config, string, error) {
	menuCfg, path, err := menu.Load(cfg.MenuPaths, log)
	if err != nil {
		return nil, path, fmt.Errorf("load menu config: %w", err)
	}
	return menuCfg, path, nil
}

// NewModel builds the UI model for a loaded menu config.
func NewModel(cfg Config, menuCfg *menu.Config, log *zap.Logger, tracers events.Tracers) *ui.Model {
	styles, err := theme.FromConfig(menuCfg.Theme)
	if err != nil {
		log.Warn("ignoring menu theme", zap.Error(err))
	}
	d := dispatcher.New(log,
		dispatcher.WithShell(dispatcher.ParseShell(cfg.Shell)...),
		dispatcher.WithTracer(tracers.Dispatch),
	)
	return ui.NewModel(ui.Options{
		State:      menu.NewState(menuCfg, log),
		Dispatcher: d,
		Styles:     styles,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Mouse:      cfg.Mouse,
		Log:        log,
		Tracers:    tracers,
	})
}

// Run loads the menu and executes the Bubble Tea program. A menu that cannot
// be loaded is returned as an error before any UI is drawn.
func Run(cfg Config, log *zap.Logger, tracers events.Tracers) error {
	if log == nil {
		log = zap.NewNop()
	}
	menuCfg, path, err := LoadMenu(cfg, log)
	if err != nil {
		log.Error("menu config unavailable", zap.Strings("candidates", cfg.MenuPaths), zap.Error(err))
		return err
	}
	tracers.App.ConfigLoaded(path, len(menuCfg.Buttons), len(menuCfg.Categories))

	model := NewModel(cfg, menuCfg, log, tracers)
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	program := tea.NewProgram(model, opts...)
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		err = nil
	}
	reason := model.ExitReason()
	if reason == "" {
		reason = "closed"
	}
	tracers.App.Exit(reason)
	log.Info("launcher closed", zap.String("reason", reason))
	return err
}
