package models

import (
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/guregu/null.v3"
)

var (
	leadingInt   = regexp.MustCompile(`^\s*[+-]?\d+`)
	leadingFloat = regexp.MustCompile(`^\s*[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// ParseYear parses the leading integer of s. It is null when s has none.
func ParseYear(s string) null.Int {
	m := leadingInt.FindString(s)
	if m == "" {
		return null.Int{}
	}
	n, err := strconv.ParseInt(strings.TrimSpace(m), 10, 64)
	if err != nil {
		return null.Int{}
	}
	return null.IntFrom(n)
}

// ParseRating parses the leading decimal number of s. It is null when s has none.
func ParseRating(s string) null.Float {
	m := leadingFloat.FindString(s)
	if m == "" {
		return null.Float{}
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(m), 64)
	if err != nil {
		return null.Float{}
	}
	return null.FloatFrom(n)
}

// ParseWatched reads a watched flag from free text: true, yes, y, x, 1 and watched are true.
func ParseWatched(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "x", "1", "watched", "✓":
		return true
	default:
		return false
	}
}
