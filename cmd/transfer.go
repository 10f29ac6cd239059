package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/mwl/internal/formatter"
	"github.com/desertthunder/mwl/internal/models"
	"github.com/desertthunder/mwl/internal/shared"
	"github.com/desertthunder/mwl/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Export writes the watchlist in the requested format to a file, or to output with --stdout.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	movies, err := r.watchlist.FetchAllMovies(ctx)
	if err != nil {
		return fmt.Errorf("failed to load movies: %w", err)
	}
	if movies, err = selectMovies(movies, cmd.String("where")); err != nil {
		return err
	}

	var metrics *models.Metrics
	if format == formatter.FormatMarkdown {
		if metrics, err = r.watchlist.FetchMetrics(ctx); err != nil {
			r.logger.Warn("failed to load metrics, exporting without counts", "error", err)
			metrics = nil
		}
	}

	if cmd.Bool("stdout") {
		data, err := formatter.Export(movies, metrics, format)
		if err != nil {
			return err
		}
		_, err = r.output.Write(data)
		return err
	}

	path, err := formatter.WriteExport(movies, metrics, format, cmd.String("output"))
	if err != nil {
		return err
	}

	r.logger.Info("exported", "movies", len(movies), "format", format, "path", path)
	r.writePlain("✓ Exported %d movies to %s\n", len(movies), path)
	return nil
}

// Import creates one movie per CSV row, paced by the configured rate limit.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	path := strings.TrimSpace(cmd.StringArg("file"))
	if path == "" {
		return fmt.Errorf("%w: CSV file path", shared.ErrMissingArgument)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := formatter.ParseCSV(f)
	if err != nil {
		return err
	}

	if cmd.Bool("dry-run") {
		for _, row := range rows {
			r.writePlain("%d: %s [%s]\n", row.Line, row.Fields.Title, row.ID)
		}
		r.writePlainln("%d rows parsed, nothing sent", len(rows))
		return nil
	}

	opts := tasks.ImportOpts{RateLimit: r.config.Import.RateLimit, Burst: r.config.Import.Burst}
	if cmd.IsSet("rate") {
		opts.RateLimit = cmd.Float("rate")
	}
	if cmd.IsSet("burst") {
		opts.Burst = int(cmd.Int("burst"))
	}

	r.logger.Info("importing", "file", path, "rows", len(rows), "rate", opts.RateLimit)

	progress := make(chan tasks.ProgressUpdate, len(rows)+1)
	done := r.drain(progress, func(u tasks.ProgressUpdate) string {
		switch u.Phase {
		case tasks.ImportMovie:
			return fmt.Sprintf("[%d/%d] ✓ %s", u.Step, u.Total, u.Message)
		case tasks.ImportFailed:
			return fmt.Sprintf("[%d/%d] ✗ %s", u.Step, u.Total, u.Message)
		default:
			return u.Message
		}
	})

	result, err := r.engine.Import(ctx, progress, rows, opts)
	close(progress)
	<-done

	if result != nil {
		r.writePlainln("Imported %d of %d (%d failed)", result.Succeeded, result.Total, result.Failed)
	}
	if err != nil {
		return err
	}
	if result.Total > 0 && result.Succeeded == 0 {
		return fmt.Errorf("%w: no rows imported", shared.ErrAPIRequest)
	}
	return nil
}

// Dump fetches every read endpoint and prints the combined result as JSON.
func (r *Runner) Dump(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("dumping backend state")

	progress := make(chan tasks.ProgressUpdate, 8)
	done := r.drain(progress, func(u tasks.ProgressUpdate) string {
		r.logger.Debug(u.Message, "phase", u.Phase)
		return ""
	})

	result, err := r.engine.Dump(ctx, progress)
	close(progress)
	<-done

	if err != nil {
		return err
	}

	for _, e := range result.Errors {
		r.logger.Warn("endpoint failed", "endpoint", e.Endpoint, "error", e.Error)
	}
	return r.writeJSON(result.Data(), cmd.Bool("pretty"))
}
