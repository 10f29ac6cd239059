package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/mwl/internal/server"
	"github.com/desertthunder/mwl/internal/shared"
	"github.com/urfave/cli/v3"
)

// Preview serves the card view until interrupted.
func (r *Runner) Preview(ctx context.Context, cmd *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", cmd.String("addr"))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	router := server.NewBasicRouter()
	router.Use(server.Recover(r.logger), server.RequestID(), server.Logger(r.logger))
	router.Handler(server.NewPreviewHandler(r.watchlist, r.logger))

	url := "http://" + ln.Addr().String() + "/"
	r.writePlain("Serving %s from %s (ctrl+c to stop)\n", url, r.api.BaseURL())

	if cmd.Bool("open") {
		if err := shared.OpenBrowser(url); err != nil {
			r.logger.Warn("could not open browser", "error", err)
		}
	}

	return server.Serve(ctx, ln, router, r.logger)
}
