package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/beqramo/case/internal/app"
	"github.com/beqramo/case/internal/config"
	"github.com/beqramo/case/internal/prefs"
)

// cli holds the global flags shared by every command.
type cli struct {
	opts    app.Options
	jsonOut bool
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "mealmarket",
		Short: "Browse TheMealDB recipes and keep a favorites list",
		Long: `mealmarket is a terminal recipe browser for TheMealDB.

Run without arguments to start the interactive interface. The subcommands
query the API and manage favorites from scripts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), c.opts)
		},
	}

	root.PersistentFlags().StringVar(&c.opts.ConfigPath, "config", "", "config file (default "+config.DefaultPath()+")")
	root.PersistentFlags().StringVar(&c.opts.PrefsPath, "prefs", "", "preferences file (default "+prefs.DefaultPath()+")")
	root.PersistentFlags().BoolVarP(&c.opts.Verbose, "verbose", "v", false, "log at debug level (subcommands log to stderr, the TUI to the log file)")
	root.PersistentFlags().BoolVar(&c.jsonOut, "json", false, "print JSON instead of tables")

	root.AddCommand(
		c.categoriesCmd(),
		c.mealsCmd(),
		c.searchCmd(),
		c.showCmd(),
		c.favoritesCmd(),
		c.logsCmd(),
	)
	return root
}

// withEnv bootstraps the application components for one command.
func (c *cli) withEnv(cmd *cobra.Command, fn func(ctx context.Context, env *app.Env) error) error {
	env, err := app.Bootstrap(c.opts)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	if err := fn(cmd.Context(), env); err != nil {
		env.Logger.Error("command failed", zap.String("command", cmd.CommandPath()), zap.Error(err))
		return err
	}
	return nil
}
