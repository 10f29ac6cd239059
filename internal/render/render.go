package render

import (
	"github.com/desertthunder/mwl/internal/models"
)

const (
	BadgeWatched   = "✓ Watched"
	BadgeUnwatched = "○ To Watch"

	// EmptyText is the placeholder shown when the list has no records.
	EmptyText = "No movies in your watchlist yet."
)

// InfoItem is one optional labelled detail on a card.
type InfoItem struct {
	Label string
	Value string
}

// Card is the display form of a single [models.MovieRecord].
type Card struct {
	ID     string
	Title  string
	Status string // "watched" or "unwatched"
	Badge  string
	Info   []InfoItem
	Notes  string
	Hidden bool
}

// Watched reports whether the card carries the watched marker.
func (c Card) Watched() bool {
	return c.Status == "watched"
}

// Page is a fully rendered list.
type Page struct {
	Cards []Card
	Empty bool
}

// Visible returns the cards not hidden by a filter.
func (p Page) Visible() []Card {
	out := make([]Card, 0, len(p.Cards))
	for _, c := range p.Cards {
		if !c.Hidden {
			out = append(out, c)
		}
	}
	return out
}

// Renderer builds pages from records.
type Renderer struct{}

// NewRenderer returns a [Renderer].
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces one card per record, in input order. An empty input yields an empty page with the placeholder on.
func (r *Renderer) Render(movies []models.MovieRecord) Page {
	if len(movies) == 0 {
		return Page{Cards: []Card{}, Empty: true}
	}

	cards := make([]Card, 0, len(movies))
	for _, m := range movies {
		cards = append(cards, NewCard(m))
	}
	return Page{Cards: cards}
}

// NewCard builds the card for a single record.
//
// Genre, year, rating and notes are included only when set; a zero year or rating counts as unset.
func NewCard(m models.MovieRecord) Card {
	c := Card{
		ID:     m.ID,
		Title:  m.Title,
		Status: m.Status(),
		Badge:  BadgeUnwatched,
		Notes:  m.Notes,
	}
	if m.Watched {
		c.Badge = BadgeWatched
	}

	if m.Genre != "" {
		c.Info = append(c.Info, InfoItem{Label: "Genre", Value: m.Genre})
	}
	if y := models.FormatYear(m.Year); y != "" {
		c.Info = append(c.Info, InfoItem{Label: "Year", Value: y})
	}
	if r := models.FormatRating(m.Rating); r != "" {
		c.Info = append(c.Info, InfoItem{Label: "Rating", Value: r + "/10 ⭐"})
	}
	return c
}
