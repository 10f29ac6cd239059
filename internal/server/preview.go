package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mwl/internal/render"
	"github.com/desertthunder/mwl/internal/services"
)

const (
	PreviewTitle   = "Movie Watchlist"
	LoadErrorText  = "Error loading movies"
	FilterErrorMsg = "Unknown filter; use all, watched or unwatched"
)

// PreviewHandler serves a read-only HTML view of the watchlist.
type PreviewHandler struct {
	svc      services.Watchlist
	renderer *render.Renderer
	logger   *log.Logger
}

// NewPreviewHandler creates a [PreviewHandler] reading from svc.
func NewPreviewHandler(svc services.Watchlist, logger *log.Logger) *PreviewHandler {
	return &PreviewHandler{svc: svc, renderer: render.NewRenderer(), logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *PreviewHandler) Routes() []string {
	return []string{"GET /{$}", "GET /cards", "GET /healthz"}
}

// ServeHTTP dispatches on path: / is the full document, /cards the card fragment and /healthz the backend status.
func (h *PreviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/healthz":
		h.health(w, r)
	case "/cards":
		h.page(w, r, false)
	default:
		h.page(w, r, true)
	}
}

func (h *PreviewHandler) page(w http.ResponseWriter, r *http.Request, document bool) {
	filter := render.FilterAll
	if name := r.URL.Query().Get("filter"); name != "" {
		f, err := render.ParseFilter(name)
		if err != nil {
			http.Error(w, FilterErrorMsg, http.StatusBadRequest)
			return
		}
		filter = f
	}

	movies, err := h.svc.FetchAllMovies(r.Context())
	if err != nil {
		h.logger.Error("failed to load movies", "error", err)
		http.Error(w, LoadErrorText, http.StatusBadGateway)
		return
	}

	page := h.renderer.Render(movies)
	render.Apply(page.Cards, filter)

	var buf bytes.Buffer
	if document {
		err = render.WriteDocument(&buf, PreviewTitle, page, filter)
	} else {
		err = render.WriteHTML(&buf, page)
	}
	if err != nil {
		h.logger.Error("failed to render page", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (h *PreviewHandler) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	health, err := h.svc.Health(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"status": "unreachable", "error": err.Error()})
		return
	}

	if !health.Healthy() {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(health)
}
