package main

import (
	"context"
	"os"

	"github.com/desertthunder/mwl/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	runner := NewRunner(RunnerOpts{
		Config: shared.DefaultConfig(),
		Logger: logger,
	})

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

// newApp builds the root command. Global flags are resolved in [Runner.before] ahead of every subcommand.
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "mwl",
		Usage:   "Manage a movie watchlist served over REST",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:    "base-url",
				Usage:   "Backend base URL (overrides server.base_url)",
				Sources: cli.EnvVars("MWL_BASE_URL"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error",
			},
		},
		Before:   r.before,
		Action:   r.TUI,
		Commands: r.register(),
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Write an example config.toml",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Where to write the config (defaults to --config)",
			},
		},
		Action: r.Setup,
	}
}
