package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/mwl/internal/models"
	"github.com/desertthunder/mwl/internal/query"
	"github.com/desertthunder/mwl/internal/render"
	"github.com/desertthunder/mwl/internal/shared"
	"github.com/desertthunder/mwl/internal/ui"
	"github.com/sahilm/fuzzy"
	"github.com/urfave/cli/v3"
)

const maxSuggestions = 3

func movieID(cmd *cli.Command) (string, error) {
	id := strings.TrimSpace(cmd.StringArg("id"))
	if id == "" {
		return "", fmt.Errorf("%w: movie id", shared.ErrMissingArgument)
	}
	return id, nil
}

// selectMovies applies an optional --where expression.
func selectMovies(movies []models.MovieRecord, where string) ([]models.MovieRecord, error) {
	if strings.TrimSpace(where) == "" {
		return movies, nil
	}
	pred, err := query.Compile(where)
	if err != nil {
		return nil, err
	}
	return pred.Filter(movies), nil
}

func cardDetails(c render.Card) string {
	parts := make([]string, 0, len(c.Info))
	for _, item := range c.Info {
		parts = append(parts, fmt.Sprintf("%s: %s", item.Label, item.Value))
	}
	return strings.Join(parts, " · ")
}

// List prints every movie in server order, narrowed by --where and --filter.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	filter, err := render.ParseFilter(cmd.String("filter"))
	if err != nil {
		return err
	}

	movies, err := r.watchlist.FetchAllMovies(ctx)
	if err != nil {
		return fmt.Errorf("failed to load movies: %w", err)
	}
	total := len(movies)

	if movies, err = selectMovies(movies, cmd.String("where")); err != nil {
		return err
	}

	page := render.NewRenderer().Render(movies)
	render.Apply(page.Cards, filter)
	visible := page.Visible()

	if cmd.Bool("json") {
		out := make([]models.MovieRecord, 0, len(visible))
		for i, c := range page.Cards {
			if !c.Hidden {
				out = append(out, movies[i])
			}
		}
		return r.writeJSON(out, cmd.Bool("pretty"))
	}

	if page.Empty {
		r.writePlain("%s\n", render.EmptyText)
		return nil
	}

	for _, c := range visible {
		r.writePlain("%-12s %s [%s]", c.Badge, c.Title, c.ID)
		if details := cardDetails(c); details != "" {
			r.writePlain(" - %s", details)
		}
		r.writePlain("\n")
	}
	r.writePlainln("Showing %d of %d (%s)", len(visible), total, filter.Label())
	return nil
}

// Get prints a single movie. An unknown id lists the closest stored ids.
func (r *Runner) Get(ctx context.Context, cmd *cli.Command) error {
	id, err := movieID(cmd)
	if err != nil {
		return err
	}

	movie, err := r.watchlist.FetchMovie(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrMovieNotFound) {
			if suggestions := r.suggest(ctx, id); len(suggestions) > 0 {
				return fmt.Errorf("%w: %q (did you mean %s?)", shared.ErrMovieNotFound, id, strings.Join(suggestions, ", "))
			}
		}
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(movie, true)
	}
	r.writeMovie(*movie)
	return nil
}

// suggest returns up to [maxSuggestions] stored ids that fuzzily match id.
func (r *Runner) suggest(ctx context.Context, id string) []string {
	ids, err := r.watchlist.FetchMovieIDs(ctx)
	if err != nil {
		r.logger.Debug("could not fetch ids for suggestions", "error", err)
		return nil
	}

	matches := fuzzy.Find(id, ids)
	out := make([]string, 0, maxSuggestions)
	for i := 0; i < len(matches) && i < maxSuggestions; i++ {
		out = append(out, matches[i].Str)
	}
	return out
}

func (r *Runner) writeMovie(m models.MovieRecord) {
	c := render.NewCard(m)
	r.writePlain("%s [%s]\n", c.Title, c.ID)
	r.writePlain("  Status: %s\n", c.Badge)
	for _, item := range c.Info {
		r.writePlain("  %s: %s\n", item.Label, item.Value)
	}
	if c.Notes != "" {
		r.writePlain("  Notes: %s\n", c.Notes)
	}
}

// Add creates a movie from flags, coerced the same way as the TUI form.
func (r *Runner) Add(ctx context.Context, cmd *cli.Command) error {
	id, err := movieID(cmd)
	if err != nil {
		return err
	}

	fields := ui.CoerceFields(ui.FormValues{
		ID:      id,
		Title:   cmd.String("title"),
		Genre:   cmd.String("genre"),
		Year:    cmd.String("year"),
		Rating:  cmd.String("rating"),
		Notes:   cmd.String("notes"),
		Watched: cmd.Bool("watched"),
	})

	r.logger.Debug("creating movie", "id", id, "title", fields.Title)
	movie, err := r.watchlist.CreateMovie(ctx, id, fields)
	if err != nil {
		return fmt.Errorf("failed to add movie: %w", err)
	}

	r.writePlain("✓ Movie added successfully!\n")
	r.writeMovie(*movie)
	return nil
}

// Update loads the movie, overrides the fields given as flags and sends the full record back.
func (r *Runner) Update(ctx context.Context, cmd *cli.Command) error {
	id, err := movieID(cmd)
	if err != nil {
		return err
	}

	current, err := r.watchlist.FetchMovie(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load movie: %w", err)
	}

	fields := current.Fields()
	if cmd.IsSet("title") {
		fields.Title = strings.TrimSpace(cmd.String("title"))
	}
	if cmd.IsSet("genre") {
		fields.Genre = strings.TrimSpace(cmd.String("genre"))
	}
	if cmd.IsSet("year") {
		fields.Year = models.ParseYear(cmd.String("year"))
	}
	if cmd.IsSet("rating") {
		fields.Rating = models.ParseRating(cmd.String("rating"))
	}
	if cmd.IsSet("watched") {
		fields.Watched = cmd.Bool("watched")
	}
	if cmd.IsSet("notes") {
		fields.Notes = strings.TrimSpace(cmd.String("notes"))
	}

	movie, err := r.watchlist.UpdateMovie(ctx, id, fields)
	if err != nil {
		return fmt.Errorf("failed to update movie: %w", err)
	}

	r.writePlain("✓ Movie updated successfully!\n")
	r.writeMovie(*movie)
	return nil
}

// Delete removes a movie after confirmation on input, unless --yes is given.
func (r *Runner) Delete(ctx context.Context, cmd *cli.Command) error {
	id, err := movieID(cmd)
	if err != nil {
		return err
	}

	if !cmd.Bool("yes") && !r.confirm(ui.ConfirmDeletePrompt) {
		r.writePlain("Cancelled\n")
		return nil
	}

	if err := r.watchlist.DeleteMovie(ctx, id); err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	r.writePlain("✓ Movie deleted successfully!\n")
	return nil
}

// confirm asks a yes/no question on input. Anything but y or yes is a no.
func (r *Runner) confirm(prompt string) bool {
	r.writePlain("%s [y/N] ", prompt)

	line, err := bufio.NewReader(r.input).ReadString('\n')
	if err != nil && line == "" {
		r.writePlain("\n")
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// Metrics prints the aggregate counts.
func (r *Runner) Metrics(ctx context.Context, cmd *cli.Command) error {
	metrics, err := r.watchlist.FetchMetrics(ctx)
	if err != nil {
		return fmt.Errorf("failed to load metrics: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(metrics, true)
	}

	r.writePlainHeader("Watchlist")
	r.writePlain("Total:    %d\n", metrics.TotalMovies)
	r.writePlain("Watched:  %d\n", metrics.Watched)
	r.writePlain("To Watch: %d\n", metrics.Unwatched)
	return nil
}

// IDs prints one stored id per line.
func (r *Runner) IDs(ctx context.Context, cmd *cli.Command) error {
	ids, err := r.watchlist.FetchMovieIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to load ids: %w", err)
	}
	for _, id := range ids {
		r.writePlain("%s\n", id)
	}
	return nil
}

// Status prints the backend health and fails when it is not healthy.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	health, err := r.watchlist.Health(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	r.writePlain("Backend: %s\n", r.api.BaseURL())
	r.writePlain("Status:  %s\n", health.Status)
	if health.Timestamp != "" {
		r.writePlain("Time:    %s\n", health.Timestamp)
	}

	if !health.Healthy() {
		return fmt.Errorf("%w: backend reports %q", shared.ErrServiceUnavailable, health.Status)
	}
	return nil
}

// Open opens the backend root in the default browser.
func (r *Runner) Open(ctx context.Context, cmd *cli.Command) error {
	target := r.api.BaseURL()
	r.logger.Info("opening browser", "url", target)
	return shared.OpenBrowser(target)
}
