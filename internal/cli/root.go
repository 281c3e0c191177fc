// Package cli is the command line front end of the cookbook recipes.
package cli

import (
	"github.com/ormcookbook/recipes/internal/config"
	"github.com/spf13/cobra"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"
)

// RootOptions holds the global flags and the configuration resolved from them.
type RootOptions struct {
	ConfigFile string
	Driver     string
	DSN        string
	Path       string
	Metrics    bool

	Config config.Config
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "cookbook",
		Short: "Run the HR data access recipes against a backend",
		Long: `cookbook drives the employee classification recipes of a chosen backend.

The backend is selected by --driver, the COOKBOOK_DRIVER environment variable,
or the driver key of the --config YAML file, in decreasing precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.ConfigFile, "config", "", "YAML configuration file")
	flags.StringVar(&opts.Driver, "driver", "", "backend driver (memory|sqlite|bolt|postgres|pgx|mysql)")
	flags.StringVar(&opts.DSN, "dsn", "", "connection string of the postgres, pgx and mysql drivers")
	flags.StringVar(&opts.Path, "path", "", "database file of the sqlite and bolt drivers")
	flags.BoolVar(&opts.Metrics, "metrics", false, "print the repository operation counters after the command")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewCreateCommand(opts))
	cmd.AddCommand(NewRenameCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewCertifyCommand(opts))

	return cmd
}

func (opts *RootOptions) resolve(cmd *cobra.Command) error {
	c, err := config.Read(opts.ConfigFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	var fromFlags config.Config
	if flags.Changed("driver") {
		fromFlags.Driver = opts.Driver
	}
	if flags.Changed("dsn") {
		fromFlags.DSN = opts.DSN
	}
	if flags.Changed("path") {
		fromFlags.Path = opts.Path
	}
	fromFlags.Metrics = opts.Metrics
	c.Merge(fromFlags)
	if err := c.Validate(); err != nil {
		return err
	}
	opts.Config = c

	logger.Configure(func(l *logging.Logger) {
		l.Out = cmd.ErrOrStderr()
		l.Level = logging.Level(c.LogLevel)
	})
	return nil
}
