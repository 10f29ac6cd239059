package models

import (
	"testing"

	"gopkg.in/guregu/null.v3"
)

func TestParseYear(t *testing.T) {
	tc := map[string]null.Int{
		"":        {},
		"   ":     {},
		"1995":    null.IntFrom(1995),
		" 1995 ":  null.IntFrom(1995),
		"1999abc": null.IntFrom(1999),
		"2001.9":  null.IntFrom(2001),
		"-5":      null.IntFrom(-5),
		"soon":    {},
	}
	for in, want := range tc {
		if got := ParseYear(in); got != want {
			t.Errorf("ParseYear(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseRating(t *testing.T) {
	tc := map[string]null.Float{
		"":       {},
		"8.3":    null.FloatFrom(8.3),
		"7.5/10": null.FloatFrom(7.5),
		".5":     null.FloatFrom(0.5),
		"15":     null.FloatFrom(15),
		"1e1":    null.FloatFrom(10),
		"great":  {},
	}
	for in, want := range tc {
		if got := ParseRating(in); got != want {
			t.Errorf("ParseRating(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseWatched(t *testing.T) {
	for _, in := range []string{"true", "Yes", " x ", "1", "watched"} {
		if !ParseWatched(in) {
			t.Errorf("ParseWatched(%q) = false", in)
		}
	}
	for _, in := range []string{"", "false", "no", "0", "unwatched"} {
		if ParseWatched(in) {
			t.Errorf("ParseWatched(%q) = true", in)
		}
	}
}
