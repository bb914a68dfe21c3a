package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agrodash/agroadmin/internal/logging"
	"github.com/agrodash/agroadmin/internal/settings"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newSettingsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect or change the operator settings file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := c.settingsStore()
			if err != nil {
				return err
			}
			return printYAML(cmd, store.Load(cmd.Context()))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set key=value...",
		Short: "Change one or more settings",
		Long:  "Keys: dark_mode, locale, currency, page_size.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := parsePatch(args)
			if err != nil {
				return err
			}
			store, err := c.settingsStore()
			if err != nil {
				return err
			}
			s, err := store.Update(cmd.Context(), patch.Apply)
			if err != nil {
				return err
			}
			return printYAML(cmd, s)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Remove the settings file so defaults apply",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := c.settingsStore()
			if err != nil {
				return err
			}
			return store.Reset()
		},
	})

	return cmd
}

func (c *cli) settingsStore() (*settings.Store, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	return settings.NewStore(cfg.SettingsPath, logging.Nop()), nil
}

func parsePatch(args []string) (settings.Patch, error) {
	var p settings.Patch
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return p, fmt.Errorf("expected key=value, got %q", arg)
		}
		switch key {
		case "dark_mode":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return p, fmt.Errorf("dark_mode: %w", err)
			}
			p.DarkMode = &b
		case "locale":
			p.Locale = &value
		case "currency":
			v := strings.ToUpper(value)
			p.Currency = &v
		case "page_size":
			n, err := strconv.Atoi(value)
			if err != nil {
				return p, fmt.Errorf("page_size: %w", err)
			}
			p.PageSize = &n
		default:
			return p, fmt.Errorf("unknown setting %q", key)
		}
	}
	return p, nil
}

func printYAML(cmd *cobra.Command, v any) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	defer enc.Close()
	return enc.Encode(v)
}
