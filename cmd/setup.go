package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/mwl/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup writes the embedded example configuration to disk and checks that the backend it names answers.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("output")
	if path == "" {
		path = cmd.String("config")
	}

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}
	r.logger.Info("config file created", "path", path)

	config, err := shared.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("failed to load created config: %w", err)
	}

	r.writePlain("✓ Wrote %s\n", path)
	r.writePlain("Backend: %s\n", config.Server.BaseURL)

	health, err := r.watchlist.Health(ctx)
	if err != nil {
		r.logger.Warn("backend not reachable", "error", err)
		r.writePlain("⚠ Backend not reachable yet; edit server.base_url and run 'mwl status'\n")
		return nil
	}

	r.writePlain("Backend status: %s\n", health.Status)
	return nil
}
