package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/atomicstack/popup-launcher/internal/app"
	"github.com/atomicstack/popup-launcher/internal/config"
	"github.com/atomicstack/popup-launcher/internal/format/table"
	"github.com/atomicstack/popup-launcher/internal/logging"
	"github.com/atomicstack/popup-launcher/internal/menu"
	"github.com/atomicstack/popup-launcher/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type resolver func() (config.Config, error)

// loadMenu resolves the runtime config and reads the menu with a console
// logger, since subcommands do not own the terminal.
func loadMenu(resolve resolver) (*menu.Config, string, error) {
	cfg, err := resolve()
	if err != nil {
		return nil, "", err
	}
	log, err := logging.New(logging.Options{Level: cfg.Logging.Level, Console: true})
	if err != nil {
		return nil, "", failure(err)
	}
	defer func() { _ = log.Sync() }()
	menuCfg, path, err := app.LoadMenu(cfg.App, log)
	if err != nil {
		log.Debug("menu config unavailable", zap.Strings("candidates", cfg.App.MenuPaths))
		return nil, path, failure(err)
	}
	return menuCfg, path, nil
}

func newValidateCmd(resolve resolver, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the menu config and report where it was found",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			menuCfg, path, err := loadMenu(resolve)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s: ok (%d buttons, %d categories)\n", path, len(menuCfg.Buttons), len(menuCfg.Categories))
			return nil
		},
	}
}

func newListCmd(resolve resolver, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the menu as a table in display order",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			menuCfg, _, err := loadMenu(resolve)
			if err != nil {
				return err
			}
			for _, line := range table.Format(listRows(menuCfg), nil) {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

// listRows walks the menu the way the UI presents it: root entries first,
// then each category's buttons.
func listRows(cfg *menu.Config) [][]string {
	reg := menu.BuildRegistry(cfg)
	rows := [][]string{{"MENU", "KIND", "NAME", "COMMAND"}}
	appendItems := func(where string, items []menu.Item) {
		for _, item := range items {
			if item.Kind == menu.KindBack {
				continue
			}
			rows = append(rows, []string{where, item.Kind.String(), item.Label, item.Command})
		}
	}
	appendItems("main", reg.RootItems())
	for _, cat := range reg.Categories() {
		items, _ := reg.CategoryItems(cat.Name)
		appendItems(cat.Name, items)
	}
	return rows
}

func newDumpCmd(resolve resolver, out io.Writer) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the validated menu config as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			encode, err := dumpEncoder(format)
			if err != nil {
				return usageError(err)
			}
			menuCfg, _, err := loadMenu(resolve)
			if err != nil {
				return err
			}
			data, err := encode(menuCfg)
			if err != nil {
				return failure(fmt.Errorf("encode menu config: %w", err))
			}
			_, err = out.Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format (json, yaml)")
	return cmd
}

func dumpEncoder(format string) (func(*menu.Config) ([]byte, error), error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return func(cfg *menu.Config) ([]byte, error) {
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return nil, err
			}
			return append(data, '\n'), nil
		}, nil
	case "yaml", "yml":
		return func(cfg *menu.Config) ([]byte, error) {
			return yaml.Marshal(cfg)
		}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}

func newVersionCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(out, "popup-launcher %s\n", version.Full())
		},
	}
}
