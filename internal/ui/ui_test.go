package ui

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/mwl/internal/models"
	"github.com/desertthunder/mwl/internal/render"
	"github.com/desertthunder/mwl/internal/services"
	"github.com/desertthunder/mwl/internal/shared"
	tu "github.com/desertthunder/mwl/internal/testing"
	"gopkg.in/guregu/null.v3"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func seedMovies() []models.MovieRecord {
	return []models.MovieRecord{
		{ID: "m1", Title: "Alien", Genre: "Horror", Year: null.IntFrom(1979), Rating: null.FloatFrom(8.5), Watched: true, Notes: "in space"},
		{ID: "m2", Title: "Brazil"},
		{ID: "m3", Title: "Clue", Watched: true},
	}
}

func newTestModel(t *testing.T, svc *tu.MockWatchlist) (*Model, *[]string) {
	t.Helper()
	copied := &[]string{}
	m := NewModel(t.Context(), Params{
		Watchlist:   svc,
		Logger:      shared.NewLogger(&strings.Builder{}),
		NotifyDelay: time.Hour,
		Copy: func(s string) error {
			*copied = append(*copied, s)
			return nil
		},
	})
	m.logger.SetLevel(log.FatalLevel)
	return m, copied
}

// exec runs cmd and flattens batches. Commands that do not finish promptly (timers, cursor blink) are dropped.
func exec(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	select {
	case msg := <-done:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, exec(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

// drain feeds the results of cmd back into m until nothing is left.
func drain(m *Model, cmd tea.Cmd) {
	queue := exec(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		_, next := m.Update(msg)
		queue = append(queue, exec(next)...)
	}
}

func press(m *Model, msg tea.KeyMsg) {
	_, cmd := m.Update(msg)
	drain(m, cmd)
}

func typeText(m *Model, s string) {
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func loadedModel(t *testing.T, svc *tu.MockWatchlist) *Model {
	t.Helper()
	if svc.ListFn == nil {
		svc.ListFn = func() ([]models.MovieRecord, error) { return seedMovies(), nil }
	}
	m, _ := newTestModel(t, svc)
	drain(m, m.Init())
	return m
}

func TestModel_Init(t *testing.T) {
	t.Run("Loads List And Metrics", func(t *testing.T) {
		svc := &tu.MockWatchlist{
			MetricsFn: func() (*models.Metrics, error) {
				return &models.Metrics{TotalMovies: 3, Watched: 2, Unwatched: 7}, nil
			},
		}
		m := loadedModel(t, svc)

		assert.Equal(t, len(m.Page().Cards), 3)
		assert.Assert(t, !m.Page().Empty)
		assert.DeepEqual(t, m.Metrics(), models.Metrics{TotalMovies: 3, Watched: 2, Unwatched: 7})
		assert.Assert(t, is.Contains(svc.Calls(), "GET /movies"))
		assert.Assert(t, is.Contains(svc.Calls(), "GET /app-metrics"))
		assert.Equal(t, m.Mode(), AddMode())
	})

	t.Run("Empty List Shows Placeholder", func(t *testing.T) {
		svc := &tu.MockWatchlist{ListFn: func() ([]models.MovieRecord, error) { return []models.MovieRecord{}, nil }}
		m := loadedModel(t, svc)

		assert.Assert(t, m.Page().Empty)
		assert.Assert(t, is.Contains(m.View(), "No movies in your watchlist yet"))
	})

	t.Run("List Failure Notifies", func(t *testing.T) {
		svc := &tu.MockWatchlist{ListFn: func() ([]models.MovieRecord, error) {
			return nil, &services.TransportError{Op: "request failed", Err: errors.New("refused")}
		}}
		m := loadedModel(t, svc)

		assert.Assert(t, m.Notifier().Visible())
		assert.Equal(t, m.Notifier().Current(), Notification{Text: LoadErrorText, Severity: SeverityError})
	})

	t.Run("Metrics Failure Is Silent", func(t *testing.T) {
		svc := &tu.MockWatchlist{MetricsFn: func() (*models.Metrics, error) {
			return nil, errors.New("boom")
		}}
		m := loadedModel(t, svc)

		assert.Assert(t, !m.Notifier().Visible())
		assert.DeepEqual(t, m.Metrics(), models.Metrics{})
	})
}

func TestModel_Create(t *testing.T) {
	fillForm := func(m *Model) {
		press(m, keyTab)
		assert.Equal(t, m.Pane(), FormPane)
		typeText(m, " m9 ")
		press(m, keyTab)
		typeText(m, "  Heat ")
		press(m, keyTab)
		typeText(m, "Crime")
		press(m, keyTab)
		typeText(m, "1995")
		press(m, keyTab)
		typeText(m, "")
		press(m, keyTab)
		typeText(m, "diner")
		press(m, keyTab)
		assert.Equal(t, m.Form().Focused(), FieldWatched)
		press(m, keySpace)
	}

	t.Run("Success Resets Form And Refreshes", func(t *testing.T) {
		var gotID string
		var gotFields models.MovieFields
		svc := &tu.MockWatchlist{CreateFn: func(id string, f models.MovieFields) (*models.MovieRecord, error) {
			gotID, gotFields = id, f
			r := f.Record(id)
			return &r, nil
		}}
		m := loadedModel(t, svc)
		fillForm(m)
		press(m, keyEnter)

		assert.Equal(t, gotID, "m9")
		assert.DeepEqual(t, gotFields, models.MovieFields{
			Title: "Heat", Genre: "Crime", Year: null.IntFrom(1995), Watched: true, Notes: "diner",
		})
		assert.Equal(t, m.Notifier().Current(), Notification{Text: "Movie added successfully!", Severity: SeveritySuccess})
		assert.DeepEqual(t, m.Form().Values(), FormValues{})
		assert.Equal(t, m.Mode(), AddMode())

		calls := svc.Calls()
		assert.Equal(t, calls[len(calls)-3], "POST /movie/m9")
		assert.Assert(t, is.Contains(calls[len(calls)-2:], "GET /movies"))
		assert.Assert(t, is.Contains(calls[len(calls)-2:], "GET /app-metrics"))
	})

	t.Run("Server Message Is Shown And Form Kept", func(t *testing.T) {
		svc := &tu.MockWatchlist{CreateFn: func(id string, f models.MovieFields) (*models.MovieRecord, error) {
			return nil, &services.ApplicationError{StatusCode: http.StatusConflict, Message: "Movie with this ID already exists"}
		}}
		m := loadedModel(t, svc)
		fillForm(m)
		press(m, keyEnter)

		assert.Equal(t, m.Notifier().Current(), Notification{Text: "Movie with this ID already exists", Severity: SeverityError})
		assert.Equal(t, m.Form().Value(FieldTitle), "  Heat ")
		assert.Assert(t, m.Form().Watched())
		assert.Equal(t, m.Mode(), AddMode())
	})

	t.Run("Generic Failure Text Without Message", func(t *testing.T) {
		svc := &tu.MockWatchlist{CreateFn: func(id string, f models.MovieFields) (*models.MovieRecord, error) {
			return nil, &services.ApplicationError{StatusCode: http.StatusInternalServerError}
		}}
		m := loadedModel(t, svc)
		fillForm(m)
		press(m, keyEnter)

		assert.Equal(t, m.Notifier().Current().Text, "Failed to add movie")
	})

	t.Run("Transport Failure", func(t *testing.T) {
		svc := &tu.MockWatchlist{CreateFn: func(id string, f models.MovieFields) (*models.MovieRecord, error) {
			return nil, &services.TransportError{Op: "request failed", Err: errors.New("refused")}
		}}
		m := loadedModel(t, svc)
		fillForm(m)
		press(m, keyEnter)

		assert.Equal(t, m.Notifier().Current(), Notification{Text: "Error adding movie", Severity: SeverityError})
	})
}

func TestModel_Edit(t *testing.T) {
	getSeed := func(id string) (*models.MovieRecord, error) {
		for _, r := range seedMovies() {
			if r.ID == id {
				return &r, nil
			}
		}
		return nil, &services.ApplicationError{StatusCode: http.StatusNotFound, Message: "Movie not found"}
	}

	t.Run("Load Fills Form And Enters Edit", func(t *testing.T) {
		svc := &tu.MockWatchlist{GetFn: getSeed}
		m := loadedModel(t, svc)

		press(m, runeKey('e'))

		assert.Equal(t, m.Mode(), EditMode("m1"))
		assert.Equal(t, m.Pane(), FormPane)
		assert.DeepEqual(t, m.Form().Values(), FormValues{
			ID: "m1", Title: "Alien", Genre: "Horror", Year: "1979", Rating: "8.5", Notes: "in space", Watched: true,
		})
		assert.Equal(t, m.Notifier().Current(), Notification{Text: EditLoadedText, Severity: SeveritySuccess})
		assert.Assert(t, is.Contains(svc.Calls(), "GET /movie/m1"))
	})

	t.Run("Load Failure Stays In Add", func(t *testing.T) {
		svc := &tu.MockWatchlist{GetFn: func(string) (*models.MovieRecord, error) {
			return nil, &services.TransportError{Op: "request failed", Err: errors.New("refused")}
		}}
		m := loadedModel(t, svc)

		press(m, runeKey('e'))

		assert.Equal(t, m.Mode(), AddMode())
		assert.Equal(t, m.Pane(), ListPane)
		assert.Equal(t, m.Notifier().Current(), Notification{Text: EditLoadErrorText, Severity: SeverityError})
	})

	t.Run("Submit Updates Captured ID", func(t *testing.T) {
		var putID string
		svc := &tu.MockWatchlist{
			GetFn: getSeed,
			UpdateFn: func(id string, f models.MovieFields) (*models.MovieRecord, error) {
				putID = id
				r := f.Record(id)
				return &r, nil
			},
		}
		m := loadedModel(t, svc)
		press(m, runeKey('j'))
		press(m, runeKey('e'))
		assert.Equal(t, m.Mode(), EditMode("m2"))

		m.Form().SetValue(FieldID, "renamed")
		press(m, keyEnter)

		assert.Equal(t, putID, "m2")
		assert.Equal(t, m.Mode(), AddMode())
		assert.DeepEqual(t, m.Form().Values(), FormValues{})
		assert.Equal(t, m.Notifier().Current().Text, "Movie updated successfully!")
		for _, c := range svc.Calls() {
			assert.Assert(t, !strings.HasPrefix(c, "POST"), c)
		}
	})

	t.Run("Failed Submit Stays In Edit", func(t *testing.T) {
		svc := &tu.MockWatchlist{
			GetFn: getSeed,
			UpdateFn: func(id string, f models.MovieFields) (*models.MovieRecord, error) {
				return nil, &services.ApplicationError{StatusCode: http.StatusBadRequest}
			},
		}
		m := loadedModel(t, svc)
		press(m, runeKey('e'))
		m.Form().SetValue(FieldTitle, "Aliens")
		press(m, keyEnter)

		assert.Equal(t, m.Mode(), EditMode("m1"))
		assert.Equal(t, m.Form().Value(FieldTitle), "Aliens")
		assert.Equal(t, m.Notifier().Current(), Notification{Text: "Failed to update movie", Severity: SeverityError})
	})

	t.Run("Second Edit Rebinds", func(t *testing.T) {
		svc := &tu.MockWatchlist{GetFn: getSeed}
		m := loadedModel(t, svc)
		press(m, runeKey('e'))
		press(m, keyEsc)
		press(m, runeKey('j'))
		press(m, runeKey('e'))

		assert.Equal(t, m.Mode(), EditMode("m2"))
		assert.Equal(t, m.Form().Value(FieldGenre), "")
		assert.Assert(t, !m.Form().Watched())
	})
}

func TestModel_Delete(t *testing.T) {
	t.Run("Declining Issues No Call", func(t *testing.T) {
		svc := &tu.MockWatchlist{}
		m := loadedModel(t, svc)

		press(m, runeKey('d'))
		assert.Equal(t, m.Pane(), ConfirmPane)
		assert.Equal(t, m.PendingDelete(), "m1")
		assert.Assert(t, is.Contains(m.View(), ConfirmDeletePrompt))

		press(m, runeKey('n'))
		assert.Equal(t, m.Pane(), ListPane)
		for _, c := range svc.Calls() {
			assert.Assert(t, !strings.HasPrefix(c, "DELETE"), c)
		}
	})

	t.Run("Confirming Deletes And Refreshes", func(t *testing.T) {
		svc := &tu.MockWatchlist{}
		m := loadedModel(t, svc)
		before := len(svc.Calls())

		press(m, runeKey('d'))
		press(m, runeKey('y'))

		calls := svc.Calls()[before:]
		assert.Equal(t, calls[0], "DELETE /movie/m1")
		assert.Assert(t, is.Len(calls, 3))
		assert.Equal(t, m.Notifier().Current(), Notification{Text: "Movie deleted successfully!", Severity: SeveritySuccess})
	})

	t.Run("Failure Ignores Server Message", func(t *testing.T) {
		svc := &tu.MockWatchlist{DeleteFn: func(string) error {
			return &services.ApplicationError{StatusCode: http.StatusNotFound, Message: "Movie not found"}
		}}
		m := loadedModel(t, svc)
		before := len(svc.Calls())

		press(m, runeKey('d'))
		press(m, runeKey('y'))

		assert.Equal(t, m.Notifier().Current(), Notification{Text: "Failed to delete movie", Severity: SeverityError})
		assert.Assert(t, is.Len(svc.Calls()[before:], 1))
	})

	t.Run("Transport Failure", func(t *testing.T) {
		svc := &tu.MockWatchlist{DeleteFn: func(string) error {
			return &services.TransportError{Op: "request failed", Err: errors.New("refused")}
		}}
		m := loadedModel(t, svc)

		press(m, runeKey('d'))
		press(m, runeKey('y'))

		assert.Equal(t, m.Notifier().Current().Text, "Error deleting movie")
	})
}

func TestModel_Filter(t *testing.T) {
	visibleIDs := func(m *Model) []string {
		var ids []string
		for _, c := range m.Page().Visible() {
			ids = append(ids, c.ID)
		}
		return ids
	}

	svc := &tu.MockWatchlist{}
	m := loadedModel(t, svc)
	before := len(svc.Calls())

	press(m, runeKey('2'))
	assert.Equal(t, m.Filter(), render.FilterWatched)
	assert.DeepEqual(t, visibleIDs(m), []string{"m1", "m3"})

	press(m, runeKey('3'))
	assert.Equal(t, m.Filter(), render.FilterUnwatched)
	assert.DeepEqual(t, visibleIDs(m), []string{"m2"})
	assert.Equal(t, len(svc.Calls()), before, "filtering must not fetch")

	press(m, runeKey('1'))
	assert.DeepEqual(t, visibleIDs(m), []string{"m1", "m2", "m3"})

	t.Run("Reload Does Not Reapply", func(t *testing.T) {
		press(m, runeKey('2'))
		press(m, runeKey('r'))

		assert.Equal(t, m.Filter(), render.FilterWatched)
		assert.DeepEqual(t, visibleIDs(m), []string{"m1", "m2", "m3"})
	})
}

func TestModel_CopyID(t *testing.T) {
	m, copied := newTestModel(t, &tu.MockWatchlist{ListFn: func() ([]models.MovieRecord, error) { return seedMovies(), nil }})
	drain(m, m.Init())

	press(m, runeKey('j'))
	press(m, runeKey('y'))

	assert.DeepEqual(t, *copied, []string{"m2"})
	assert.Equal(t, m.Notifier().Current().Text, "Copied m2")
}

func TestModel_NotificationTimer(t *testing.T) {
	m, _ := newTestModel(t, &tu.MockWatchlist{})

	m.notifier.Show("first", SeveritySuccess)
	first := m.notifier.Generation()
	m.notifier.Show("second", SeverityError)

	m.Update(hideNotificationMsg(first))
	assert.Assert(t, m.Notifier().Visible(), "stale timer must not hide a newer message")
	assert.Equal(t, m.Notifier().Current().Text, "second")

	m.Update(hideNotificationMsg(m.notifier.Generation()))
	assert.Assert(t, !m.Notifier().Visible())
	assert.Assert(t, !strings.Contains(m.View(), "second"))
}
