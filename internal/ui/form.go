package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mwl/internal/models"
)

// ModeKind distinguishes the two form modes.
type ModeKind int

const (
	ModeAdd ModeKind = iota
	ModeEdit
)

// FormMode is either Add, or Edit bound to the id whose edit action was invoked.
type FormMode struct {
	Kind     ModeKind
	ActiveID string
}

func AddMode() FormMode           { return FormMode{Kind: ModeAdd} }
func EditMode(id string) FormMode { return FormMode{Kind: ModeEdit, ActiveID: id} }

func (m FormMode) IsEdit() bool { return m.Kind == ModeEdit }

func (m FormMode) String() string {
	if m.IsEdit() {
		return fmt.Sprintf("Edit(%s)", m.ActiveID)
	}
	return "Add"
}

// Field indexes the form's inputs in focus order.
type Field int

const (
	FieldID Field = iota
	FieldTitle
	FieldGenre
	FieldYear
	FieldRating
	FieldNotes
	FieldWatched
	fieldCount
)

var fieldLabels = [...]string{"ID", "Title", "Genre", "Year", "Rating", "Notes", "Watched"}

func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return "unknown"
	}
	return fieldLabels[f]
}

// FormValues are the raw contents of the form, untrimmed.
type FormValues struct {
	ID      string
	Title   string
	Genre   string
	Year    string
	Rating  string
	Notes   string
	Watched bool
}

// Form holds the movie inputs and the current [FormMode].
type Form struct {
	inputs  []textinput.Model // one per Field before FieldWatched
	watched bool
	focus   Field
	mode    FormMode
}

// NewForm creates an empty form in Add mode, focused on the id input.
func NewForm() *Form {
	placeholders := [...]string{"movie-1", "Title (required)", "Genre", "1999", "0-10", "Notes"}

	f := &Form{inputs: make([]textinput.Model, FieldWatched), mode: AddMode()}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholders[i]
		in.CharLimit = 256
		in.Width = 40
		f.inputs[i] = in
	}
	f.inputs[FieldYear].CharLimit = 8
	f.inputs[FieldRating].CharLimit = 8
	f.Focus(FieldID)
	return f
}

func (f *Form) Mode() FormMode     { return f.mode }
func (f *Form) Focused() Field     { return f.focus }
func (f *Form) Watched() bool      { return f.watched }
func (f *Form) ToggleWatched()     { f.watched = !f.watched }
func (f *Form) SetMode(m FormMode) { f.mode = m }

// Focus moves input focus to field and returns the cursor blink command.
func (f *Form) Focus(field Field) tea.Cmd {
	if field < 0 || field >= fieldCount {
		return nil
	}
	f.focus = field
	var cmd tea.Cmd
	for i := range f.inputs {
		if Field(i) == field {
			cmd = f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return cmd
}

// Next moves focus forward, wrapping.
func (f *Form) Next() tea.Cmd {
	return f.Focus((f.focus + 1) % fieldCount)
}

// Prev moves focus backward, wrapping.
func (f *Form) Prev() tea.Cmd {
	return f.Focus((f.focus + fieldCount - 1) % fieldCount)
}

// Blur removes focus from every input.
func (f *Form) Blur() {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// SetValue replaces the text of a text field.
func (f *Form) SetValue(field Field, v string) {
	if field < 0 || field >= FieldWatched {
		return
	}
	f.inputs[field].SetValue(v)
}

// Value returns the text of a text field.
func (f *Form) Value(field Field) string {
	if field < 0 || field >= FieldWatched {
		return ""
	}
	return f.inputs[field].Value()
}

func (f *Form) SetWatched(w bool) { f.watched = w }

// Values returns the raw form contents.
func (f *Form) Values() FormValues {
	return FormValues{
		ID:      f.Value(FieldID),
		Title:   f.Value(FieldTitle),
		Genre:   f.Value(FieldGenre),
		Year:    f.Value(FieldYear),
		Rating:  f.Value(FieldRating),
		Notes:   f.Value(FieldNotes),
		Watched: f.watched,
	}
}

// Submission returns the trimmed id field and the coerced request body.
func (f *Form) Submission() (string, models.MovieFields) {
	v := f.Values()
	return strings.TrimSpace(v.ID), CoerceFields(v)
}

// Reset clears every field and returns to Add mode.
func (f *Form) Reset() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.watched = false
	f.mode = AddMode()
	return f.Focus(FieldID)
}

// Fill replaces every field with the values of m. Unset or zero year and rating leave their fields empty.
func (f *Form) Fill(m models.MovieRecord) {
	f.SetValue(FieldID, m.ID)
	f.SetValue(FieldTitle, m.Title)
	f.SetValue(FieldGenre, m.Genre)
	f.SetValue(FieldYear, "")
	if m.Year.Valid && m.Year.Int64 != 0 {
		f.SetValue(FieldYear, strconv.FormatInt(m.Year.Int64, 10))
	}
	f.SetValue(FieldRating, "")
	if m.Rating.Valid && m.Rating.Float64 != 0 {
		f.SetValue(FieldRating, strconv.FormatFloat(m.Rating.Float64, 'f', -1, 64))
	}
	f.SetValue(FieldNotes, m.Notes)
	f.watched = m.Watched
}

// Update forwards msg to the focused text input.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if f.focus >= FieldWatched {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// View renders the form with a heading for the current mode.
func (f *Form) View(active bool) string {
	var b strings.Builder

	heading := "Add Movie"
	if f.mode.IsEdit() {
		heading = "Edit Movie " + styles.dim.Render(f.mode.ActiveID)
	}
	b.WriteString(styles.title.Render(heading))
	b.WriteString("\n")

	for i := range f.inputs {
		b.WriteString(f.labelFor(Field(i), active))
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}

	box := "[ ]"
	if f.watched {
		box = "[x]"
	}
	b.WriteString(f.labelFor(FieldWatched, active))
	b.WriteString(box)
	return b.String()
}

func (f *Form) labelFor(field Field, active bool) string {
	label := styles.label.Render(field.String())
	if active && f.focus == field {
		return "> " + label
	}
	return "  " + label
}

// CoerceFields builds a request body from raw form values.
//
// Title, genre and notes are trimmed. Year and rating are null when empty; otherwise their leading
// integer or decimal number is used, and input with no leading number is null. No range checks happen.
func CoerceFields(v FormValues) models.MovieFields {
	return models.MovieFields{
		Title:   strings.TrimSpace(v.Title),
		Genre:   strings.TrimSpace(v.Genre),
		Year:    models.ParseYear(v.Year),
		Rating:  models.ParseRating(v.Rating),
		Watched: v.Watched,
		Notes:   strings.TrimSpace(v.Notes),
	}
}
