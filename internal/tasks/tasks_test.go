package tasks

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/desertthunder/mwl/internal/formatter"
	"github.com/desertthunder/mwl/internal/models"
	"github.com/desertthunder/mwl/internal/services"
	"github.com/desertthunder/mwl/internal/shared"
	tu "github.com/desertthunder/mwl/internal/testing"
)

func TestDump(t *testing.T) {
	t.Run("Fetches Every Endpoint", func(t *testing.T) {
		svc := &tu.MockWatchlist{
			ListFn:    func() ([]models.MovieRecord, error) { return []models.MovieRecord{{ID: "m1", Title: "Alien"}}, nil },
			IDsFn:     func() ([]string, error) { return []string{"m1"}, nil },
			MetricsFn: func() (*models.Metrics, error) { return &models.Metrics{TotalMovies: 1, Unwatched: 1}, nil },
		}
		engine := NewEngine(svc)
		progress := make(chan ProgressUpdate, 10)

		result, err := engine.Dump(context.Background(), progress)
		if err != nil {
			t.Fatalf("Dump() error = %v", err)
		}

		if result.Health == nil || !result.Health.Healthy() {
			t.Errorf("expected healthy status, got %+v", result.Health)
		}
		if len(result.Movies) != 1 || len(result.IDs) != 1 {
			t.Errorf("unexpected movies %v ids %v", result.Movies, result.IDs)
		}
		if result.Metrics == nil || result.Metrics.TotalMovies != 1 {
			t.Errorf("unexpected metrics %+v", result.Metrics)
		}
		if len(result.Errors) != 0 {
			t.Errorf("expected no errors, got %v", result.Errors)
		}
		if len(svc.Calls()) != 4 {
			t.Errorf("expected 4 calls, got %v", svc.Calls())
		}

		close(progress)
		var updates int
		for range progress {
			updates++
		}
		if updates != 4 {
			t.Errorf("expected 4 progress updates, got %d", updates)
		}
	})

	t.Run("Partial Failure Is Recorded", func(t *testing.T) {
		svc := &tu.MockWatchlist{
			IDsFn: func() ([]string, error) { return []string{"m1", "m2"}, nil },
			MetricsFn: func() (*models.Metrics, error) {
				return nil, &services.ApplicationError{Method: http.MethodGet, Path: "/app-metrics", StatusCode: http.StatusInternalServerError}
			},
		}

		result, err := NewEngine(svc).Dump(context.Background(), nil)
		if err != nil {
			t.Fatalf("Dump() error = %v", err)
		}
		if len(result.Errors) != 1 || result.Errors[0].Endpoint != "/app-metrics" {
			t.Fatalf("expected metrics failure, got %v", result.Errors)
		}
		if result.Health == nil || len(result.IDs) != 2 {
			t.Errorf("other endpoints should still load, got health %+v ids %v", result.Health, result.IDs)
		}
		if len(svc.Calls()) != 4 {
			t.Errorf("expected 4 calls, got %v", svc.Calls())
		}

		data := result.Data()
		if len(data.Errors) != 1 || !strings.Contains(data.Errors[0]["error"], "HTTP 500") {
			t.Errorf("unexpected JSON errors %v", data.Errors)
		}
	})

	t.Run("Every Endpoint Failing", func(t *testing.T) {
		down := &services.TransportError{Op: "request failed", Err: errors.New("connection refused")}
		svc := &tu.MockWatchlist{
			HealthFn:  func() (*models.Health, error) { return nil, down },
			ListFn:    func() ([]models.MovieRecord, error) { return nil, down },
			IDsFn:     func() ([]string, error) { return nil, down },
			MetricsFn: func() (*models.Metrics, error) { return nil, down },
		}

		result, err := NewEngine(svc).Dump(context.Background(), nil)
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Fatalf("expected ErrServiceUnavailable, got %v", err)
		}
		if len(result.Errors) != 4 {
			t.Errorf("expected 4 errors, got %d", len(result.Errors))
		}
	})

	t.Run("Nil Service", func(t *testing.T) {
		if _, err := NewEngine(nil).Dump(context.Background(), nil); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("Cancelled Context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := NewEngine(&tu.MockWatchlist{}).Dump(ctx, nil); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestImport(t *testing.T) {
	rows := []formatter.ImportRow{
		{Line: 2, ID: "alien", Fields: models.MovieFields{Title: "Alien"}},
		{Line: 3, ID: "dup", Fields: models.MovieFields{Title: "Dup"}},
		{Line: 4, ID: "clue", Fields: models.MovieFields{Title: "Clue"}},
	}

	t.Run("Continues Past Failures", func(t *testing.T) {
		svc := &tu.MockWatchlist{CreateFn: func(id string, f models.MovieFields) (*models.MovieRecord, error) {
			if id == "dup" {
				return nil, &services.ApplicationError{StatusCode: http.StatusConflict, Message: "Movie with this ID already exists"}
			}
			r := f.Record(id)
			return &r, nil
		}}
		progress := make(chan ProgressUpdate, 10)

		result, err := NewEngine(svc).Import(context.Background(), progress, rows, ImportOpts{RateLimit: 1000})
		if err != nil {
			t.Fatalf("Import() error = %v", err)
		}

		if result.Total != 3 || result.Succeeded != 2 || result.Failed != 1 {
			t.Errorf("unexpected counts %+v", result)
		}
		if result.Results[1].Success || result.Results[1].Line != 3 {
			t.Errorf("expected line 3 to fail, got %+v", result.Results[1])
		}

		want := []string{"POST /movie/alien", "POST /movie/dup", "POST /movie/clue"}
		if got := svc.Calls(); strings.Join(got, ",") != strings.Join(want, ",") {
			t.Errorf("expected calls %v in order, got %v", want, got)
		}

		close(progress)
		var failed int
		for u := range progress {
			if u.Phase == ImportFailed {
				failed++
				if !strings.Contains(u.Message, "line 3") {
					t.Errorf("unexpected failure message %q", u.Message)
				}
			}
		}
		if failed != 1 {
			t.Errorf("expected 1 failure update, got %d", failed)
		}
	})

	t.Run("Against Backend", func(t *testing.T) {
		backend := tu.NewBackend(t, models.MovieRecord{ID: "dup", Title: "Existing"})
		svc := services.NewWatchlistService(services.NewAPIService(backend.URL(), nil))

		result, err := NewEngine(svc).Import(context.Background(), nil, rows, ImportOpts{RateLimit: 1000, Burst: 3})
		if err != nil {
			t.Fatalf("Import() error = %v", err)
		}
		if result.Succeeded != 2 || result.Failed != 1 {
			t.Errorf("unexpected counts %+v", result)
		}
		if _, ok := backend.Movie("clue"); !ok {
			t.Error("expected clue to be created")
		}
	})

	t.Run("Cancelled Context Stops", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		svc := &tu.MockWatchlist{}
		result, err := NewEngine(svc).Import(ctx, nil, rows, ImportOpts{})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if len(result.Results) != 0 || len(svc.Calls()) != 0 {
			t.Errorf("expected no rows processed, got %+v", result)
		}
	})
}
