package formatter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/desertthunder/mwl/internal/models"
	"github.com/desertthunder/mwl/internal/shared"
)

// ImportRow is one movie read from a CSV file.
type ImportRow struct {
	Line   int
	ID     string
	Fields models.MovieFields
}

// ParseCSV reads movies from CSV with a header row.
//
// Columns are matched by name, case-insensitively and in any order. id and title are required
// columns; the rest are optional and unknown columns are ignored. Values are coerced the same way
// the form coerces them. Rows with an empty id are skipped.
func ParseCSV(r io.Reader) ([]ImportRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: CSV file is empty", shared.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, required := range []string{"id", "title"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: CSV header is missing the %q column", shared.ErrInvalidInput, required)
		}
	}

	var rows []ImportRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		line, _ := reader.FieldPos(0)
		get := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}

		id := strings.TrimSpace(get("id"))
		if id == "" {
			continue
		}

		rows = append(rows, ImportRow{
			Line: line,
			ID:   id,
			Fields: models.MovieFields{
				Title:   strings.TrimSpace(get("title")),
				Genre:   strings.TrimSpace(get("genre")),
				Year:    models.ParseYear(get("year")),
				Rating:  models.ParseRating(get("rating")),
				Watched: models.ParseWatched(get("watched")),
				Notes:   strings.TrimSpace(get("notes")),
			},
		})
	}

	return rows, nil
}
