package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/mwl/internal/models"
	"github.com/desertthunder/mwl/internal/render"
	"github.com/desertthunder/mwl/internal/services"
	"github.com/desertthunder/mwl/internal/shared"
)

// Pane is the part of the screen receiving keys.
type Pane int

const (
	ListPane Pane = iota
	FormPane
	ConfirmPane
)

// operation names a mutation for notification text.
type operation int

const (
	opCreate operation = iota
	opUpdate
	opDelete
)

const (
	ConfirmDeletePrompt = "Are you sure you want to delete this movie?"
	EditLoadedText      = "Edit the movie and submit"
	EditLoadErrorText   = "Error loading movie"
	LoadErrorText       = "Error loading movies"
)

var (
	successText = map[operation]string{
		opCreate: "Movie added successfully!",
		opUpdate: "Movie updated successfully!",
		opDelete: "Movie deleted successfully!",
	}
	failureText = map[operation]string{
		opCreate: "Failed to add movie",
		opUpdate: "Failed to update movie",
		opDelete: "Failed to delete movie",
	}
	transportText = map[operation]string{
		opCreate: "Error adding movie",
		opUpdate: "Error updating movie",
		opDelete: "Error deleting movie",
	}
)

// Params configures [NewModel]. Only Watchlist is required.
type Params struct {
	Watchlist   services.Watchlist
	Logger      *log.Logger
	NotifyDelay time.Duration
	// Copy writes to the system clipboard; defaults to [clipboard.WriteAll].
	Copy func(string) error
}

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	svc      services.Watchlist
	logger   *log.Logger
	copy     func(string) error
	renderer *render.Renderer

	page    render.Page
	filter  render.Filter
	cursor  int
	metrics models.Metrics

	form     *Form
	pane     Pane
	deleteID string
	notifier *Notifier

	width  int
	height int
	help   help.Model
	keys   keyMap
}

// NewModel creates a new TUI model in Add mode with the list focused.
func NewModel(ctx context.Context, p Params) *Model {
	logger := p.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	cp := p.Copy
	if cp == nil {
		cp = clipboard.WriteAll
	}

	form := NewForm()
	form.Blur()

	return &Model{
		ctx:      ctx,
		svc:      p.Watchlist,
		logger:   logger,
		copy:     cp,
		renderer: render.NewRenderer(),
		page:     render.Page{Cards: []render.Card{}, Empty: true},
		form:     form,
		pane:     ListPane,
		notifier: NewNotifier(p.NotifyDelay),
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

func (m *Model) Page() render.Page       { return m.page }
func (m *Model) Filter() render.Filter   { return m.filter }
func (m *Model) Metrics() models.Metrics { return m.metrics }
func (m *Model) Form() *Form             { return m.form }
func (m *Model) Mode() FormMode          { return m.form.Mode() }
func (m *Model) Pane() Pane              { return m.pane }
func (m *Model) Notifier() *Notifier     { return m.notifier }
func (m *Model) PendingDelete() string   { return m.deleteID }
func (m *Model) Cursor() int             { return m.cursor }

// Selected returns the visible card under the cursor.
func (m *Model) Selected() (render.Card, bool) {
	visible := m.page.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return render.Card{}, false
	}
	return visible[m.cursor], true
}

// Init loads the list and the metrics.
func (m *Model) Init() tea.Cmd {
	return m.refresh()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.forceQuit) {
			return m, tea.Quit
		}
		switch m.pane {
		case FormPane:
			return m.handleFormKeys(msg)
		case ConfirmPane:
			return m.handleConfirmKeys(msg)
		default:
			return m.handleListKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	if m.pane == FormPane {
		return m, m.form.Update(msg)
	}
	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgMoviesLoaded:
		data := msg.data.(moviesPayload)
		if data.err != nil {
			m.logger.Error("failed to load movies", "error", data.err)
			return m, m.notifier.Error(LoadErrorText)
		}
		m.page = m.renderer.Render(data.movies)
		m.clampCursor()
		return m, nil

	case MsgMetricsLoaded:
		data := msg.data.(metricsPayload)
		if data.err != nil {
			m.logger.Error("failed to load metrics", "error", data.err)
			return m, nil
		}
		m.metrics = *data.metrics
		return m, nil

	case MsgMovieLoaded:
		data := msg.data.(moviePayload)
		if data.err != nil {
			m.logger.Error("failed to load movie", "id", data.id, "error", data.err)
			return m, m.notifier.Error(EditLoadErrorText)
		}
		m.form.Fill(*data.movie)
		m.form.SetMode(EditMode(data.id))
		m.pane = FormPane
		return m, tea.Batch(m.form.Focus(FieldTitle), m.notifier.Success(EditLoadedText))

	case MsgMovieSaved:
		data := msg.data.(savedPayload)
		if data.err != nil {
			m.logger.Warn("save failed", "id", data.id, "error", data.err)
			return m, m.notifier.Error(failureMessage(data.op, data.err))
		}
		m.logger.Info("movie saved", "id", data.id)
		reset := m.form.Reset()
		if m.pane != FormPane {
			m.form.Blur()
			reset = nil
		}
		return m, tea.Batch(reset, m.notifier.Success(successText[data.op]), m.refresh())

	case MsgMovieDeleted:
		data := msg.data.(deletedPayload)
		if data.err != nil {
			m.logger.Warn("delete failed", "id", data.id, "error", data.err)
			return m, m.notifier.Error(failureMessage(opDelete, data.err))
		}
		m.logger.Info("movie deleted", "id", data.id)
		return m, tea.Batch(m.notifier.Success(successText[opDelete]), m.refresh())

	case MsgHideNotification:
		m.notifier.Hide(msg.data.(uint64))
		return m, nil
	}
	return m, nil
}

// failureMessage picks the notification text for a failed mutation.
//
// Non-2xx replies show the server's message when there is one (except for delete); anything else is
// reported as a transport failure.
func failureMessage(op operation, err error) string {
	var appErr *services.ApplicationError
	if errors.As(err, &appErr) {
		if op != opDelete && appErr.Message != "" {
			return appErr.Message
		}
		return failureText[op]
	}
	return transportText[op]
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.down):
		if m.cursor < len(m.page.Visible())-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.all):
		m.applyFilter(render.FilterAll)
	case key.Matches(msg, m.keys.watched):
		m.applyFilter(render.FilterWatched)
	case key.Matches(msg, m.keys.unwatched):
		m.applyFilter(render.FilterUnwatched)
	case key.Matches(msg, m.keys.reload):
		return m, m.refresh()
	case key.Matches(msg, m.keys.form):
		m.pane = FormPane
		return m, m.form.Focus(m.form.Focused())
	case key.Matches(msg, m.keys.edit):
		if card, ok := m.Selected(); ok {
			return m, m.loadMovie(card.ID)
		}
	case key.Matches(msg, m.keys.remove):
		if card, ok := m.Selected(); ok {
			m.deleteID = card.ID
			m.pane = ConfirmPane
		}
	case key.Matches(msg, m.keys.copyID):
		if card, ok := m.Selected(); ok {
			return m, m.copyID(card.ID)
		}
	}
	return m, nil
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.form.Blur()
		m.pane = ListPane
		return m, nil
	case key.Matches(msg, m.keys.submit):
		return m, m.submit()
	case key.Matches(msg, m.keys.nextField):
		return m, m.form.Next()
	case key.Matches(msg, m.keys.prevField):
		return m, m.form.Prev()
	case m.form.Focused() == FieldWatched && key.Matches(msg, m.keys.toggle):
		m.form.ToggleWatched()
		return m, nil
	}
	return m, m.form.Update(msg)
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		id := m.deleteID
		m.deleteID = ""
		m.pane = ListPane
		return m, m.deleteMovie(id)
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.quit):
		m.deleteID = ""
		m.pane = ListPane
	}
	return m, nil
}

// applyFilter marks f active and toggles card visibility without re-rendering.
func (m *Model) applyFilter(f render.Filter) {
	m.filter = f
	render.Apply(m.page.Cards, f)
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.page.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// submit creates in Add mode and updates the captured id in Edit mode.
func (m *Model) submit() tea.Cmd {
	id, fields := m.form.Submission()
	if mode := m.form.Mode(); mode.IsEdit() {
		return m.updateMovie(mode.ActiveID, fields)
	}
	return m.createMovie(id, fields)
}

func (m *Model) refresh() tea.Cmd {
	return tea.Batch(m.loadMovies(), m.loadMetrics())
}

func (m *Model) loadMovies() tea.Cmd {
	return func() tea.Msg {
		movies, err := m.svc.FetchAllMovies(m.ctx)
		return moviesLoadedMsg(movies, err)
	}
}

func (m *Model) loadMetrics() tea.Cmd {
	return func() tea.Msg {
		metrics, err := m.svc.FetchMetrics(m.ctx)
		return metricsLoadedMsg(metrics, err)
	}
}

func (m *Model) loadMovie(id string) tea.Cmd {
	return func() tea.Msg {
		movie, err := m.svc.FetchMovie(m.ctx, id)
		return movieLoadedMsg(id, movie, err)
	}
}

func (m *Model) createMovie(id string, fields models.MovieFields) tea.Cmd {
	return func() tea.Msg {
		movie, err := m.svc.CreateMovie(m.ctx, id, fields)
		return movieSavedMsg(opCreate, id, movie, err)
	}
}

func (m *Model) updateMovie(id string, fields models.MovieFields) tea.Cmd {
	return func() tea.Msg {
		movie, err := m.svc.UpdateMovie(m.ctx, id, fields)
		return movieSavedMsg(opUpdate, id, movie, err)
	}
}

func (m *Model) deleteMovie(id string) tea.Cmd {
	return func() tea.Msg {
		return movieDeletedMsg(id, m.svc.DeleteMovie(m.ctx, id))
	}
}

func (m *Model) copyID(id string) tea.Cmd {
	if err := m.copy(id); err != nil {
		m.logger.Warn("clipboard write failed", "error", err)
		return m.notifier.Error("Could not copy id")
	}
	return m.notifier.Success("Copied " + id)
}

// View renders the header, form, cards, notification and help line.
func (m *Model) View() string {
	sections := []string{
		styles.title.Render("🎬 Movie Watchlist"),
		m.renderMetrics(),
		m.renderFilters(),
		"",
		m.form.View(m.pane == FormPane),
		"",
		m.renderCards(),
	}

	if m.pane == ConfirmPane {
		sections = append(sections, "", m.renderConfirm())
	}

	if n := m.notifier.View(); n != "" {
		sections = append(sections, "", n)
	}

	var helpKeys []key.Binding
	switch m.pane {
	case FormPane:
		helpKeys = m.keys.formHelp()
	case ConfirmPane:
		helpKeys = m.keys.confirmHelp()
	default:
		helpKeys = m.keys.listHelp()
	}
	sections = append(sections, "", m.help.ShortHelpView(helpKeys))

	return strings.Join(sections, "\n")
}

func (m *Model) renderMetrics() string {
	return fmt.Sprintf("%s %d   %s %d   %s %d",
		styles.dim.Render("Total"), m.metrics.TotalMovies,
		styles.dim.Render("Watched"), m.metrics.Watched,
		styles.dim.Render("To Watch"), m.metrics.Unwatched,
	)
}

func (m *Model) renderFilters() string {
	parts := make([]string, 0, len(render.Filters))
	for i, f := range render.Filters {
		label := fmt.Sprintf("%d %s", i+1, f.Label())
		if f == m.filter {
			parts = append(parts, styles.active.Render("["+label+"]"))
		} else {
			parts = append(parts, styles.dim.Render(" "+label+" "))
		}
	}
	return strings.Join(parts, " ")
}

func (m *Model) renderCards() string {
	if m.page.Empty {
		return styles.help.Render(render.EmptyText + " Press tab to add one.")
	}

	visible := m.page.Visible()
	out := make([]string, 0, len(visible))
	for i, c := range visible {
		out = append(out, renderCard(c, m.pane == ListPane && i == m.cursor))
	}
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

func renderCard(c render.Card, selected bool) string {
	badge := styles.warn.Render(c.Badge)
	if c.Watched() {
		badge = styles.ok.Render(c.Badge)
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(c.Title) + "  " + badge,
		styles.dim.Render(c.ID),
	}

	if len(c.Info) > 0 {
		items := make([]string, 0, len(c.Info))
		for _, item := range c.Info {
			items = append(items, item.Label+": "+item.Value)
		}
		lines = append(lines, strings.Join(items, " • "))
	}
	if c.Notes != "" {
		lines = append(lines, styles.notes.Render(`"`+c.Notes+`"`))
	}

	box := styles.card
	if selected {
		box = styles.selected
	}
	return box.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderConfirm() string {
	return styles.warn.Render(ConfirmDeletePrompt) + " " + styles.dim.Render(m.deleteID)
}
