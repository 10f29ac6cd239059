package models

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/guregu/null.v3"
)

// MovieRecord is a single watchlist entry owned by the backend.
type MovieRecord struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	Genre   string     `json:"genre"`
	Year    null.Int   `json:"year"`
	Rating  null.Float `json:"rating"`
	Watched bool       `json:"watched"`
	Notes   string     `json:"notes"`

	// Backend bookkeeping, decoded when present.
	ObjectID  string `json:"_id,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Fields returns the mutable portion of the record, as sent on update.
func (m MovieRecord) Fields() MovieFields {
	return MovieFields{
		Title:   m.Title,
		Genre:   m.Genre,
		Year:    m.Year,
		Rating:  m.Rating,
		Watched: m.Watched,
		Notes:   m.Notes,
	}
}

// Status returns the watched-state marker: "watched" or "unwatched".
func (m MovieRecord) Status() string {
	if m.Watched {
		return "watched"
	}
	return "unwatched"
}

// MovieFields is the request body for create and update.
//
// Year and Rating marshal to null when unset.
type MovieFields struct {
	Title   string     `json:"title"`
	Genre   string     `json:"genre"`
	Year    null.Int   `json:"year"`
	Rating  null.Float `json:"rating"`
	Watched bool       `json:"watched"`
	Notes   string     `json:"notes"`
}

// Record combines the fields with an id.
func (f MovieFields) Record(id string) MovieRecord {
	return MovieRecord{
		ID:      id,
		Title:   f.Title,
		Genre:   f.Genre,
		Year:    f.Year,
		Rating:  f.Rating,
		Watched: f.Watched,
		Notes:   f.Notes,
	}
}

// Metrics holds the aggregate counts served by /app-metrics.
type Metrics struct {
	TotalMovies int    `json:"total_movies"`
	Watched     int    `json:"watched"`
	Unwatched   int    `json:"unwatched"`
	Timestamp   string `json:"timestamp,omitempty"`
}

// Health is the backend status payload.
type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Healthy reports whether the backend says it is healthy.
func (h Health) Healthy() bool {
	return strings.EqualFold(h.Status, "healthy")
}

// FormatYear renders an optional year, or "" when unset or zero.
func FormatYear(y null.Int) string {
	if !y.Valid || y.Int64 == 0 {
		return ""
	}
	return fmt.Sprintf("%d", y.Int64)
}

// FormatRating renders an optional rating at full precision, or "" when unset or zero.
func FormatRating(r null.Float) string {
	if !r.Valid || r.Float64 == 0 {
		return ""
	}
	return strconv.FormatFloat(r.Float64, 'f', -1, 64)
}
