package testing

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/mwl/internal/models"
)

// Backend is an in-memory stand-in for the watchlist REST server.
//
// It serves the same routes, status codes and error bodies, keeps insertion order for GET /movies,
// and records every request as "METHOD /path".
type Backend struct {
	Server *httptest.Server

	mu       sync.Mutex
	order    []string
	movies   map[string]models.MovieRecord
	requests []string
	failures map[string]failure
}

type failure struct {
	status int
	body   string
}

// NewBackend starts a Backend seeded with movies and stops it when the test ends.
func NewBackend(t *testing.T, seed ...models.MovieRecord) *Backend {
	t.Helper()

	b := &Backend{
		movies:   make(map[string]models.MovieRecord),
		failures: make(map[string]failure),
	}
	for _, m := range seed {
		b.order = append(b.order, m.ID)
		b.movies[m.ID] = m
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", b.health)
	mux.HandleFunc("GET /app-metrics", b.metrics)
	mux.HandleFunc("GET /movies", b.list)
	mux.HandleFunc("GET /movie", b.ids)
	mux.HandleFunc("GET /movie/{id}", b.get)
	mux.HandleFunc("POST /movie/{id}", b.create)
	mux.HandleFunc("PUT /movie/{id}", b.update)
	mux.HandleFunc("DELETE /movie/{id}", b.remove)

	b.Server = httptest.NewServer(b.recorder(mux))
	t.Cleanup(b.Server.Close)
	return b
}

// URL returns the base URL of the running server.
func (b *Backend) URL() string {
	return b.Server.URL
}

// Requests returns the recorded requests in arrival order.
func (b *Backend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

// Movie returns the stored record for id.
func (b *Backend) Movie(id string) (models.MovieRecord, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	m, ok := b.movies[id]
	return m, ok
}

// FailWith makes every request matching "METHOD /path" reply with status and body.
func (b *Backend) FailWith(route string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[route] = failure{status: status, body: body}
}

func (b *Backend) recorder(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.Method + " " + r.URL.Path

		b.mu.Lock()
		b.requests = append(b.requests, route)
		f, failing := b.failures[route]
		b.mu.Unlock()

		if failing {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.status)
			w.Write([]byte(f.body))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (b *Backend) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.Health{Status: "healthy", Timestamp: time.Now().UTC().Format(time.RFC3339)})
}

func (b *Backend) metrics(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	m := models.Metrics{TotalMovies: len(b.movies)}
	for _, movie := range b.movies {
		if movie.Watched {
			m.Watched++
		}
	}
	m.Unwatched = m.TotalMovies - m.Watched
	writeJSON(w, http.StatusOK, m)
}

func (b *Backend) list(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]models.MovieRecord, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.movies[id])
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) ids(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, append([]string{}, b.order...))
}

func (b *Backend) get(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	m, ok := b.movies[r.PathValue("id")]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Movie not found"})
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// decodeFields reads and validates a body the way the real server does.
func decodeFields(w http.ResponseWriter, r *http.Request) (models.MovieFields, bool) {
	var fields models.MovieFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No data provided"})
		return fields, false
	}

	var errs []string
	if fields.Title == "" {
		errs = append(errs, "Title is required")
	}
	if fields.Year.Valid && (fields.Year.Int64 < 1800 || fields.Year.Int64 > 2100) {
		errs = append(errs, "Year must be between 1800 and 2100")
	}
	if fields.Rating.Valid && (fields.Rating.Float64 < 0 || fields.Rating.Float64 > 10) {
		errs = append(errs, "Rating must be between 0 and 10")
	}
	if len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"errors": errs})
		return fields, false
	}
	return fields, true
}

func (b *Backend) create(w http.ResponseWriter, r *http.Request) {
	fields, ok := decodeFields(w, r)
	if !ok {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	id := r.PathValue("id")
	if _, exists := b.movies[id]; exists {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "Movie with this ID already exists"})
		return
	}

	m := fields.Record(id)
	b.order = append(b.order, id)
	b.movies[id] = m
	writeJSON(w, http.StatusCreated, m)
}

func (b *Backend) update(w http.ResponseWriter, r *http.Request) {
	fields, ok := decodeFields(w, r)
	if !ok {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	id := r.PathValue("id")
	if _, exists := b.movies[id]; !exists {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Movie not found"})
		return
	}

	m := fields.Record(id)
	b.movies[id] = m
	writeJSON(w, http.StatusOK, m)
}

func (b *Backend) remove(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := r.PathValue("id")
	if _, exists := b.movies[id]; !exists {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Movie not found"})
		return
	}

	delete(b.movies, id)
	for i, existing := range b.order {
		if existing == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Movie deleted successfully"})
}
