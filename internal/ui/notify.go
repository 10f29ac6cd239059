package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Severity tags a notification.
type Severity int

const (
	SeveritySuccess Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "success"
}

// Notification is the content of the notification surface.
type Notification struct {
	Text     string
	Severity Severity
}

// DefaultNotifyDelay is how long a notification stays up when no delay is configured.
const DefaultNotifyDelay = 3000 * time.Millisecond

// Notifier is the single notification surface.
//
// Each [Notifier.Show] replaces the current message and starts a hide timer tagged with a new generation.
// A timer from an older generation is ignored, so only the newest message's timer can hide the surface.
type Notifier struct {
	current    Notification
	visible    bool
	generation uint64
	delay      time.Duration
}

// NewNotifier creates a hidden notifier. A non-positive delay falls back to [DefaultNotifyDelay].
func NewNotifier(delay time.Duration) *Notifier {
	if delay <= 0 {
		delay = DefaultNotifyDelay
	}
	return &Notifier{delay: delay}
}

// Show displays text with severity and returns the command that will hide it after the delay.
func (n *Notifier) Show(text string, severity Severity) tea.Cmd {
	n.generation++
	n.current = Notification{Text: text, Severity: severity}
	n.visible = true

	gen := n.generation
	return tea.Tick(n.delay, func(time.Time) tea.Msg {
		return hideNotificationMsg(gen)
	})
}

func (n *Notifier) Success(text string) tea.Cmd { return n.Show(text, SeveritySuccess) }
func (n *Notifier) Error(text string) tea.Cmd   { return n.Show(text, SeverityError) }

// Hide hides the surface if generation is the current one and reports whether it did.
func (n *Notifier) Hide(generation uint64) bool {
	if generation != n.generation || !n.visible {
		return false
	}
	n.visible = false
	return true
}

func (n *Notifier) Visible() bool         { return n.visible }
func (n *Notifier) Current() Notification { return n.current }
func (n *Notifier) Generation() uint64    { return n.generation }
func (n *Notifier) Delay() time.Duration  { return n.delay }

// View renders the surface, or "" when hidden.
func (n *Notifier) View() string {
	if !n.visible {
		return ""
	}
	if n.current.Severity == SeverityError {
		return styles.err.Render("✗ " + n.current.Text)
	}
	return styles.ok.Render("✓ " + n.current.Text)
}
