// Package ui serves a server-rendered HTML table over the dataset: sortable
// column headers, a filter form and a five-button page window.
package ui

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"maragu.dev/gomponents"

	"datalist/internal/dataset"
	"datalist/internal/domain"
	"datalist/internal/engine"
)

// DefaultPageSize is used when the request has no limit.
const DefaultPageSize = 10

// Handler serves the HTML table view of a dataset.
type Handler struct {
	dataset domain.Dataset
	columns []domain.ColumnDef
	engine  *engine.Engine
	logger  *slog.Logger
}

// NewHandler creates a Handler for ds. A nil engine or logger falls back to
// the defaults.
func NewHandler(ds domain.Dataset, eng *engine.Engine, logger *slog.Logger) *Handler {
	if eng == nil {
		eng = engine.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		dataset: ds,
		columns: dataset.Columns(ds),
		engine:  eng,
		logger:  logger,
	}
}

// RegisterRoutes mounts the table page at /ui.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ui", h.Table)
}

// Table renders one page of the dataset. Unlike the JSON endpoint, page and
// limit are optional here.
func (h *Handler) Table(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	if values.Get(domain.ParamPage) == "" {
		values.Set(domain.ParamPage, "0")
	}
	if values.Get(domain.ParamLimit) == "" {
		values.Set(domain.ParamLimit, strconv.Itoa(DefaultPageSize))
	}

	q, err := domain.ParseQuery(values)
	if err != nil {
		h.render(w, r, http.StatusBadRequest, errorPage("Invalid query", err.Error()))
		return
	}

	res, err := h.engine.Evaluate(h.dataset, q)
	if err != nil {
		status := http.StatusInternalServerError
		var invalid *domain.InvalidQueryError
		if errors.As(err, &invalid) {
			status = http.StatusBadRequest
		}
		h.render(w, r, status, errorPage("Query failed", err.Error()))
		return
	}

	h.render(w, r, http.StatusOK, tablePage(h.columns, q, res))
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	if err := node.Render(w); err != nil {
		h.logger.ErrorContext(r.Context(), "render page", "error", err)
	}
}
