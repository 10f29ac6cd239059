package render

import (
	"fmt"
	"strings"

	"github.com/desertthunder/mwl/internal/shared"
)

// Filter selects which cards are visible.
type Filter int

const (
	FilterAll Filter = iota
	FilterWatched
	FilterUnwatched
)

var Filters = []Filter{FilterAll, FilterWatched, FilterUnwatched}

func (f Filter) String() string {
	switch f {
	case FilterWatched:
		return "watched"
	case FilterUnwatched:
		return "unwatched"
	default:
		return "all"
	}
}

// Label is the filter bar caption.
func (f Filter) Label() string {
	switch f {
	case FilterWatched:
		return "Watched"
	case FilterUnwatched:
		return "To Watch"
	default:
		return "All"
	}
}

// ParseFilter accepts "all", "watched" or "unwatched" (case-insensitive). Empty means all.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "watched":
		return FilterWatched, nil
	case "unwatched":
		return FilterUnwatched, nil
	default:
		return FilterAll, fmt.Errorf("%w: filter %q (want all, watched or unwatched)", shared.ErrInvalidFlag, s)
	}
}

// Matches reports whether a card with the given status marker is shown under f.
func (f Filter) Matches(c Card) bool {
	switch f {
	case FilterWatched:
		return c.Status == "watched"
	case FilterUnwatched:
		return c.Status == "unwatched"
	default:
		return true
	}
}

// Apply sets Hidden on every card in place according to f. Nothing else on the cards changes.
func Apply(cards []Card, f Filter) {
	for i := range cards {
		cards[i].Hidden = !f.Matches(cards[i])
	}
}
