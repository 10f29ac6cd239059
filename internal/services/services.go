// package services defines interface Watchlist for talking to the watchlist REST backend
package services

import (
	"context"

	"github.com/desertthunder/mwl/internal/models"
)

// Watchlist is the command layer: one method per REST call the client makes.
type Watchlist interface {
	// CreateMovie stores a new record under the caller-supplied id (POST /movie/{id}).
	CreateMovie(ctx context.Context, id string, fields models.MovieFields) (*models.MovieRecord, error)

	// FetchAllMovies returns every record in server order (GET /movies).
	FetchAllMovies(ctx context.Context) ([]models.MovieRecord, error)

	// FetchMovie returns a single record (GET /movie/{id}).
	FetchMovie(ctx context.Context, id string) (*models.MovieRecord, error)

	// UpdateMovie replaces the fields of an existing record (PUT /movie/{id}).
	UpdateMovie(ctx context.Context, id string, fields models.MovieFields) (*models.MovieRecord, error)

	// DeleteMovie removes a record (DELETE /movie/{id}).
	DeleteMovie(ctx context.Context, id string) error

	// FetchMetrics returns aggregate counts (GET /app-metrics).
	FetchMetrics(ctx context.Context) (*models.Metrics, error)

	// FetchMovieIDs returns only the ids of stored records (GET /movie).
	FetchMovieIDs(ctx context.Context) ([]string, error)

	// Health returns the backend status (GET /health).
	Health(ctx context.Context) (*models.Health, error)
}
