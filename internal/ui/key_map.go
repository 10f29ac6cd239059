package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up        key.Binding
	down      key.Binding
	nextField key.Binding
	prevField key.Binding
	submit    key.Binding
	toggle    key.Binding
	back      key.Binding
	form      key.Binding
	edit      key.Binding
	remove    key.Binding
	copyID    key.Binding
	reload    key.Binding
	all       key.Binding
	watched   key.Binding
	unwatched key.Binding
	yes       key.Binding
	no        key.Binding
	quit      key.Binding
	forceQuit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		nextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		prevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		toggle:    key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle watched")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "list")),
		form:      key.NewBinding(key.WithKeys("tab", "a"), key.WithHelp("tab", "form")),
		edit:      key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		remove:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		copyID:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy id")),
		reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		all:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		watched:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "watched")),
		unwatched: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "to watch")),
		yes:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:        key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		forceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.edit, k.remove, k.copyID},
		{k.all, k.watched, k.unwatched, k.reload},
		{k.form, k.submit, k.toggle, k.back, k.quit},
	}
}

func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.up, k.down, k.edit, k.remove, k.copyID, k.all, k.watched, k.unwatched, k.reload, k.form, k.quit}
}

func (k keyMap) formHelp() []key.Binding {
	return []key.Binding{k.nextField, k.prevField, k.toggle, k.submit, k.back}
}

func (k keyMap) confirmHelp() []key.Binding {
	return []key.Binding{k.yes, k.no}
}
