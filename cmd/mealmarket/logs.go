package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/beqramo/case/internal/config"
	"github.com/beqramo/case/internal/logtail"
)

func (c *cli) logsCmd() *cobra.Command {
	var (
		lines int
		level string
	)
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent records from the log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			minLevel, err := zapcore.ParseLevel(level)
			if err != nil {
				return fmt.Errorf("invalid --level: %w", err)
			}
			cfg, err := config.Load(c.opts.ConfigPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			entries, err := logtail.Tail(cfg.LogFile, lines, minLevel)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				_, err := fmt.Fprintf(out, "No log records in %s\n", cfg.LogFile)
				return err
			}
			for _, e := range entries {
				if _, err := fmt.Fprintln(out, e.Format()); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of log lines to scan from the end (0 for all)")
	cmd.Flags().StringVar(&level, "level", "info", "minimum level to show (debug, info, warn, error)")
	return cmd
}
