package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mwl/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgMoviesLoaded MsgKind = iota
	MsgMetricsLoaded
	MsgMovieLoaded
	MsgMovieSaved
	MsgMovieDeleted
	MsgHideNotification
)

// Kind reports which variant the message carries.
func (m Msg) Kind() MsgKind {
	return m.kind
}

type moviesPayload struct {
	movies []models.MovieRecord
	err    error
}

type metricsPayload struct {
	metrics *models.Metrics
	err     error
}

type moviePayload struct {
	id    string
	movie *models.MovieRecord
	err   error
}

type savedPayload struct {
	op    operation
	id    string
	movie *models.MovieRecord
	err   error
}

type deletedPayload struct {
	id  string
	err error
}

// moviesLoadedMsg is the constructor for [MsgMoviesLoaded]
func moviesLoadedMsg(movies []models.MovieRecord, err error) Msg {
	return Msg{kind: MsgMoviesLoaded, data: moviesPayload{movies, err}}
}

// metricsLoadedMsg is the constructor for [MsgMetricsLoaded]
func metricsLoadedMsg(metrics *models.Metrics, err error) Msg {
	return Msg{kind: MsgMetricsLoaded, data: metricsPayload{metrics, err}}
}

// movieLoadedMsg is the constructor for [MsgMovieLoaded]
func movieLoadedMsg(id string, movie *models.MovieRecord, err error) Msg {
	return Msg{kind: MsgMovieLoaded, data: moviePayload{id, movie, err}}
}

// movieSavedMsg is the constructor for [MsgMovieSaved]
func movieSavedMsg(op operation, id string, movie *models.MovieRecord, err error) Msg {
	return Msg{kind: MsgMovieSaved, data: savedPayload{op, id, movie, err}}
}

// movieDeletedMsg is the constructor for [MsgMovieDeleted]
func movieDeletedMsg(id string, err error) Msg {
	return Msg{kind: MsgMovieDeleted, data: deletedPayload{id, err}}
}

// hideNotificationMsg is the constructor for [MsgHideNotification]
func hideNotificationMsg(generation uint64) Msg {
	return Msg{kind: MsgHideNotification, data: generation}
}
