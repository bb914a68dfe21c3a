// Command agroctl is the operator tool of agroadmin: schema migrations,
// development tokens, the settings file and market price statistics.
package main

import (
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/agrodash/agroadmin/internal/server/config"
	"github.com/spf13/cobra"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type cli struct {
	configPath string
	out        io.Writer
	loadConfig func(path string) (*config.Config, error)
	openDB     func(dsn string) (*sql.DB, error)
}

func newCLI(out io.Writer) *cli {
	return &cli{
		out:        out,
		loadConfig: config.LoadFile,
		openDB: func(dsn string) (*sql.DB, error) {
			return sql.Open("pgx", dsn)
		},
	}
}

func (c *cli) config() (*config.Config, error) {
	cfg, err := c.loadConfig(c.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "agroctl",
		Short:         "Operator tool for the agroadmin backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(c.out)
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to JSON config file")

	root.AddCommand(
		newMigrateCmd(c),
		newTokenCmd(c),
		newSettingsCmd(c),
		newStatsCmd(c),
	)
	return root
}

func main() {
	if err := newRootCmd(newCLI(os.Stdout)).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
