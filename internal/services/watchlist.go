package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/mwl/internal/models"
)

var _ Watchlist = (*WatchlistService)(nil)

// WatchlistService implements [Watchlist] over an [APIService].
//
// Every operation is a single request: no retries, no caching.
type WatchlistService struct {
	api *APIService
}

// NewWatchlistService creates a typed client over the given raw API service.
func NewWatchlistService(api *APIService) *WatchlistService {
	if api == nil {
		api = NewAPIService("", nil)
	}
	return &WatchlistService{api: api}
}

// API returns the underlying raw service.
func (s *WatchlistService) API() *APIService {
	return s.api
}

// MoviePath returns the per-id resource path with id escaped as a single segment.
func MoviePath(id string) string {
	return "/movie/" + url.PathEscape(id)
}

func (s *WatchlistService) CreateMovie(ctx context.Context, id string, fields models.MovieFields) (*models.MovieRecord, error) {
	return s.send(ctx, http.MethodPost, id, fields)
}

func (s *WatchlistService) UpdateMovie(ctx context.Context, id string, fields models.MovieFields) (*models.MovieRecord, error) {
	return s.send(ctx, http.MethodPut, id, fields)
}

// send issues a create or update. The echoed record is decoded when the server returns one;
// otherwise the submitted fields are returned under id.
func (s *WatchlistService) send(ctx context.Context, method, id string, fields models.MovieFields) (*models.MovieRecord, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal movie: %w", err)
	}

	path := MoviePath(id)
	resp, err := s.api.Do(ctx, method, path, data)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, newApplicationError(method, path, resp)
	}

	record := fields.Record(id)
	if resp.IsJSON {
		var echoed models.MovieRecord
		if err := json.Unmarshal(resp.Body, &echoed); err == nil && echoed.ID != "" {
			record = echoed
		}
	}
	return &record, nil
}

func (s *WatchlistService) FetchAllMovies(ctx context.Context) ([]models.MovieRecord, error) {
	var movies []models.MovieRecord
	if err := s.getJSON(ctx, "/movies", &movies); err != nil {
		return nil, err
	}
	if movies == nil {
		movies = []models.MovieRecord{}
	}
	return movies, nil
}

func (s *WatchlistService) FetchMovie(ctx context.Context, id string) (*models.MovieRecord, error) {
	var movie models.MovieRecord
	if err := s.getJSON(ctx, MoviePath(id), &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

func (s *WatchlistService) DeleteMovie(ctx context.Context, id string) error {
	path := MoviePath(id)
	resp, err := s.api.Delete(ctx, path)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return newApplicationError(http.MethodDelete, path, resp)
	}
	return nil
}

func (s *WatchlistService) FetchMetrics(ctx context.Context) (*models.Metrics, error) {
	var metrics models.Metrics
	if err := s.getJSON(ctx, "/app-metrics", &metrics); err != nil {
		return nil, err
	}
	return &metrics, nil
}

func (s *WatchlistService) FetchMovieIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := s.getJSON(ctx, "/movie", &ids); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (s *WatchlistService) Health(ctx context.Context) (*models.Health, error) {
	var health models.Health
	if err := s.getJSON(ctx, "/health", &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// getJSON performs a GET and decodes a 2xx body into v.
func (s *WatchlistService) getJSON(ctx context.Context, path string, v any) error {
	resp, err := s.api.Get(ctx, path)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return newApplicationError(http.MethodGet, path, resp)
	}
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return &TransportError{Op: "failed to decode " + path, Err: err}
	}
	return nil
}
