// package formatter provides functions to export the watchlist to various formats (CSV, Markdown, plain text, HTML, JSON)
// and to read movies back from CSV
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/mwl/internal/models"
	"github.com/desertthunder/mwl/internal/render"
	"github.com/desertthunder/mwl/internal/shared"
	"gopkg.in/guregu/null.v3"
)

// Format is an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
)

// Formats lists the accepted export formats.
var Formats = []Format{FormatCSV, FormatMarkdown, FormatText, FormatHTML, FormatJSON}

// ParseFormat maps a format name or common alias to a [Format].
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	case "html", "htm":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: format %q (want csv, md, txt, html or json)", shared.ErrInvalidFlag, s)
	}
}

// CSVHeaders are the columns written by [ExportToCSV] and understood by [ParseCSV].
var CSVHeaders = []string{"id", "title", "genre", "year", "rating", "watched", "notes"}

// ExportToCSV converts movies to CSV with columns: id, title, genre, year, rating, watched, notes
func ExportToCSV(movies []models.MovieRecord) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(CSVHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, m := range movies {
		record := []string{
			m.ID,
			m.Title,
			m.Genre,
			csvInt(m.Year),
			csvFloat(m.Rating),
			fmt.Sprintf("%t", m.Watched),
			m.Notes,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts movies to a Markdown checklist, with counts when metrics is not nil
func ExportToMarkdown(movies []models.MovieRecord, metrics *models.Metrics) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Movie Watchlist\n\n")

	if metrics != nil {
		buf.WriteString(fmt.Sprintf("**Total**: %d\n", metrics.TotalMovies))
		buf.WriteString(fmt.Sprintf("**Watched**: %d\n", metrics.Watched))
		buf.WriteString(fmt.Sprintf("**To Watch**: %d\n\n", metrics.Unwatched))
	}

	if len(movies) == 0 {
		buf.WriteString("_No movies in your watchlist yet._\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("## Movies\n\n")
	for _, m := range movies {
		box := " "
		if m.Watched {
			box = "x"
		}
		buf.WriteString(fmt.Sprintf("- [%s] **%s** `%s`%s\n", box, m.Title, m.ID, details(m)))
		if m.Notes != "" {
			buf.WriteString(fmt.Sprintf("  > %s\n", m.Notes))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts movies to plain text format
func ExportToText(movies []models.MovieRecord) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Movies: %d\n\n", len(movies)))

	for i, m := range movies {
		status := "to watch"
		if m.Watched {
			status = "watched"
		}
		buf.WriteString(fmt.Sprintf("%d. %s [%s] (%s)%s\n", i+1, m.Title, m.ID, status, details(m)))
	}

	return buf.Bytes(), nil
}

// ExportToHTML renders movies as a standalone HTML page using the card markup.
func ExportToHTML(movies []models.MovieRecord) ([]byte, error) {
	var buf bytes.Buffer

	page := render.NewRenderer().Render(movies)
	if err := render.WriteDocument(&buf, "Movie Watchlist", page, render.FilterAll); err != nil {
		return nil, fmt.Errorf("failed to render HTML: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts movies to indented JSON. A nil slice is written as [].
func ExportToJSON(movies []models.MovieRecord) ([]byte, error) {
	if movies == nil {
		movies = []models.MovieRecord{}
	}
	data, err := json.MarshalIndent(movies, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Export dispatches to the exporter for format.
func Export(movies []models.MovieRecord, metrics *models.Metrics, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(movies)
	case FormatMarkdown:
		return ExportToMarkdown(movies, metrics)
	case FormatText:
		return ExportToText(movies)
	case FormatHTML:
		return ExportToHTML(movies)
	case FormatJSON:
		return ExportToJSON(movies)
	default:
		return nil, fmt.Errorf("%w: format %q", shared.ErrInvalidFlag, format)
	}
}

// WriteExport exports movies to path in the given format.
//
// Defaults to watchlist.{format} as the filename.
func WriteExport(movies []models.MovieRecord, metrics *models.Metrics, format Format, path string) (string, error) {
	if path == "" {
		path = "watchlist." + string(format)
	}

	data, err := Export(movies, metrics, format)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", format, err)
	}

	return path, nil
}

// csvInt writes every valid value, zero included, so [ParseCSV] reads back the same record.
func csvInt(v null.Int) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatInt(v.Int64, 10)
}

func csvFloat(v null.Float) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Float64, 'f', -1, 64)
}

// details is the " - genre, year, rating" suffix shared by the text exporters.
func details(m models.MovieRecord) string {
	var parts []string
	if m.Genre != "" {
		parts = append(parts, m.Genre)
	}
	if y := models.FormatYear(m.Year); y != "" {
		parts = append(parts, y)
	}
	if r := models.FormatRating(m.Rating); r != "" {
		parts = append(parts, r+"/10")
	}
	if len(parts) == 0 {
		return ""
	}
	return " - " + strings.Join(parts, ", ")
}
