// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/mwl/internal/models"
)

// MockWatchlist is a test double for services.Watchlist.
//
// Each hook is optional; unset hooks return zero values. Calls are recorded in order.
type MockWatchlist struct {
	CreateFn  func(id string, fields models.MovieFields) (*models.MovieRecord, error)
	ListFn    func() ([]models.MovieRecord, error)
	GetFn     func(id string) (*models.MovieRecord, error)
	UpdateFn  func(id string, fields models.MovieFields) (*models.MovieRecord, error)
	DeleteFn  func(id string) error
	MetricsFn func() (*models.Metrics, error)
	IDsFn     func() ([]string, error)
	HealthFn  func() (*models.Health, error)

	mu    sync.Mutex
	calls []string
}

func (m *MockWatchlist) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

// Calls returns the recorded calls, e.g. "POST /movie/m1".
func (m *MockWatchlist) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockWatchlist) CreateMovie(ctx context.Context, id string, fields models.MovieFields) (*models.MovieRecord, error) {
	m.record("POST /movie/" + id)
	if m.CreateFn != nil {
		return m.CreateFn(id, fields)
	}
	r := fields.Record(id)
	return &r, nil
}

func (m *MockWatchlist) FetchAllMovies(ctx context.Context) ([]models.MovieRecord, error) {
	m.record("GET /movies")
	if m.ListFn != nil {
		return m.ListFn()
	}
	return []models.MovieRecord{}, nil
}

func (m *MockWatchlist) FetchMovie(ctx context.Context, id string) (*models.MovieRecord, error) {
	m.record("GET /movie/" + id)
	if m.GetFn != nil {
		return m.GetFn(id)
	}
	return &models.MovieRecord{ID: id}, nil
}

func (m *MockWatchlist) UpdateMovie(ctx context.Context, id string, fields models.MovieFields) (*models.MovieRecord, error) {
	m.record("PUT /movie/" + id)
	if m.UpdateFn != nil {
		return m.UpdateFn(id, fields)
	}
	r := fields.Record(id)
	return &r, nil
}

func (m *MockWatchlist) DeleteMovie(ctx context.Context, id string) error {
	m.record("DELETE /movie/" + id)
	if m.DeleteFn != nil {
		return m.DeleteFn(id)
	}
	return nil
}

func (m *MockWatchlist) FetchMetrics(ctx context.Context) (*models.Metrics, error) {
	m.record("GET /app-metrics")
	if m.MetricsFn != nil {
		return m.MetricsFn()
	}
	return &models.Metrics{}, nil
}

func (m *MockWatchlist) FetchMovieIDs(ctx context.Context) ([]string, error) {
	m.record("GET /movie")
	if m.IDsFn != nil {
		return m.IDsFn()
	}
	return []string{}, nil
}

func (m *MockWatchlist) Health(ctx context.Context) (*models.Health, error) {
	m.record("GET /health")
	if m.HealthFn != nil {
		return m.HealthFn()
	}
	return &models.Health{Status: "healthy"}, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

var _ io.ReadCloser = (*FCloser)(nil)

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
