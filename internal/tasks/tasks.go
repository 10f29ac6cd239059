package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/mwl/internal/models"
	"github.com/desertthunder/mwl/internal/services"
	"github.com/desertthunder/mwl/internal/shared"
	"golang.org/x/sync/errgroup"
)

// EndpointResult represents the result of fetching data from a single endpoint.
type EndpointResult struct {
	Endpoint string
	Error    error
}

// DumpResult contains everything fetched from the backend.
type DumpResult struct {
	Health  *models.Health
	Movies  []models.MovieRecord
	IDs     []string
	Metrics *models.Metrics
	Errors  []EndpointResult // Failed endpoint fetches, in endpoint order
}

// DumpData is the JSON form of a [DumpResult].
type DumpData struct {
	Health  *models.Health       `json:"health"`
	Movies  []models.MovieRecord `json:"movies,omitempty"`
	IDs     []string             `json:"ids,omitempty"`
	Metrics *models.Metrics      `json:"metrics,omitempty"`
	Errors  []map[string]string  `json:"errors,omitempty"`
}

// Data converts the result for JSON output.
func (r *DumpResult) Data() DumpData {
	d := DumpData{Health: r.Health, Movies: r.Movies, IDs: r.IDs, Metrics: r.Metrics}
	for _, e := range r.Errors {
		d.Errors = append(d.Errors, map[string]string{"endpoint": e.Endpoint, "error": e.Error.Error()})
	}
	return d
}

type endpointOperation struct {
	path    string
	phase   Phase
	message string
	fetch   func(ctx context.Context) error
}

// Engine runs multi-request operations against a [services.Watchlist].
type Engine struct {
	svc services.Watchlist
}

// NewEngine creates an Engine over svc.
func NewEngine(svc services.Watchlist) *Engine {
	return &Engine{svc: svc}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Dump fetches health, movies, ids and metrics concurrently.
//
// A failed endpoint is recorded in [DumpResult.Errors]; Dump itself fails only when every endpoint fails
// or ctx is cancelled.
func (e *Engine) Dump(ctx context.Context, progress chan<- ProgressUpdate) (*DumpResult, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: watchlist client not initialized", shared.ErrServiceUnavailable)
	}

	result := &DumpResult{}
	endpoints := []endpointOperation{
		{path: "/health", phase: FetchHealth, message: "Fetching health status...", fetch: func(ctx context.Context) (err error) {
			result.Health, err = e.svc.Health(ctx)
			return err
		}},
		{path: "/movies", phase: FetchMovies, message: "Fetching movies...", fetch: func(ctx context.Context) (err error) {
			result.Movies, err = e.svc.FetchAllMovies(ctx)
			return err
		}},
		{path: "/movie", phase: FetchIDs, message: "Fetching movie ids...", fetch: func(ctx context.Context) (err error) {
			result.IDs, err = e.svc.FetchMovieIDs(ctx)
			return err
		}},
		{path: "/app-metrics", phase: FetchMetrics, message: "Fetching metrics...", fetch: func(ctx context.Context) (err error) {
			result.Metrics, err = e.svc.FetchMetrics(ctx)
			return err
		}},
	}

	failures := make([]error, len(endpoints))
	var mu sync.Mutex
	step := 0

	g, gctx := errgroup.WithContext(ctx)
	for i, endpoint := range endpoints {
		g.Go(func() error {
			mu.Lock()
			step++
			e.sendProgress(progress, endpointUpdate(endpoint, step, len(endpoints)))
			mu.Unlock()

			failures[i] = endpoint.fetch(gctx)
			return nil
		})
	}
	// Fetch errors are kept per endpoint, so no goroutine fails the group.
	g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i, err := range failures {
		if err != nil {
			result.Errors = append(result.Errors, EndpointResult{Endpoint: endpoints[i].path, Error: err})
		}
	}
	if len(result.Errors) == len(endpoints) {
		return result, fmt.Errorf("%w: every endpoint failed: %v", shared.ErrServiceUnavailable, result.Errors[0].Error)
	}

	return result, nil
}
