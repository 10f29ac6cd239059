package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/mwl/internal/formatter"
	"github.com/desertthunder/mwl/internal/shared"
	"golang.org/x/time/rate"
)

// ImportOpts configures [Engine.Import].
type ImportOpts struct {
	RateLimit float64 // Create requests per second (default: 5)
	Burst     int     // Requests allowed at once (default: 1)
}

// ImportRowResult is the outcome for one CSV row.
type ImportRowResult struct {
	Line    int
	ID      string
	Success bool
	Error   error
}

// ImportResult summarizes an import run.
type ImportResult struct {
	Total     int
	Succeeded int
	Failed    int
	Results   []ImportRowResult // In row order
}

// Import creates one movie per row, in order, waiting on a rate limiter before each request.
//
// A failed create is recorded and the run continues. Cancelling ctx stops the run and returns the
// rows processed so far together with the context error.
func (e *Engine) Import(
	ctx context.Context,
	progress chan<- ProgressUpdate,
	rows []formatter.ImportRow,
	opts ImportOpts,
) (*ImportResult, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: watchlist client not initialized", shared.ErrServiceUnavailable)
	}

	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), opts.Burst)
	result := &ImportResult{
		Total:   len(rows),
		Results: make([]ImportRowResult, 0, len(rows)),
	}

	for i, row := range rows {
		if err := limiter.Wait(ctx); err != nil {
			return result, err
		}

		res := ImportRowResult{Line: row.Line, ID: row.ID}
		if _, err := e.svc.CreateMovie(ctx, row.ID, row.Fields); err != nil {
			res.Error = err
			result.Failed++
			e.sendProgress(progress, importFailedUpdate(i+1, len(rows), res))
		} else {
			res.Success = true
			result.Succeeded++
			e.sendProgress(progress, importedUpdate(i+1, len(rows), res))
		}
		result.Results = append(result.Results, res)
	}

	return result, nil
}
