package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	theme "github.com/davidroman0O/firm-theme"
)

type rootFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "themectl",
		Short: "Compose and watch theme context values",
		Long: `themectl mounts a theme provider against an in-memory document.
It composes the published theme value from a base theme and design tokens,
and replays scripted attribute mutations to show how the active theme follows them.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "theme config file (YAML)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log provider activity to stderr")

	cmd.AddCommand(newComposeCmd(flags))
	cmd.AddCommand(newWatchCmd(flags))
	return cmd
}

func (f *rootFlags) loadConfig() (theme.Config, error) {
	if f.configPath == "" {
		return theme.DefaultConfig(), nil
	}
	return theme.LoadConfig(f.configPath)
}

func (f *rootFlags) logger() *slog.Logger {
	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
