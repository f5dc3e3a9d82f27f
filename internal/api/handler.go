// Package api provides the HTTP handlers for the listing endpoint.
package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"datalist/internal/dataset"
	"datalist/internal/domain"
	"datalist/internal/engine"
	"datalist/internal/metrics"
	"datalist/internal/middleware"
)

// Handler serves one immutable dataset.
type Handler struct {
	dataset domain.Dataset
	columns []domain.ColumnDef
	engine  *engine.Engine
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewHandler creates a Handler over ds. eng and m may be nil, in which case
// the default engine is used and no metrics are recorded.
func NewHandler(ds domain.Dataset, eng *engine.Engine, m *metrics.Metrics, logger *slog.Logger) *Handler {
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
		metrics: m,
		logger:  logger,
	}
}

// RegisterRoutes mounts the listing routes on r. Health is mounted
// separately so it can sit outside rate limiting.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.ListRecords)
	r.Get("/columns", h.ListColumns)
}

// ListRecords evaluates the query described by the request parameters and
// writes the page of records as a JSON array. The number of records matching
// the filter is sent in the Total-Count header.
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	noCache(w)

	q, err := domain.ParseQuery(r.URL.Query())
	if err != nil {
		h.fail(w, r, start, err)
		return
	}

	res, err := h.engine.Evaluate(h.dataset, q)
	if err != nil {
		h.fail(w, r, start, err)
		return
	}

	rows := res.Rows
	if rows == nil {
		rows = []domain.Record{}
	}
	w.Header().Set(middleware.TotalCountHeader, strconv.Itoa(res.TotalCount))
	writeJSON(w, http.StatusOK, rows)
	h.metrics.ObserveQuery(http.StatusOK, time.Since(start), res.TotalCount)
}

// ListColumns writes the column definitions of the dataset.
func (h *Handler) ListColumns(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.columns)
}

// Health reports liveness and the dataset size.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"records": h.dataset.Len(),
	})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, start time.Time, err error) {
	status := writeError(w, err)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "listing query failed",
			"error", err,
			"request_id", middleware.RequestIDFromContext(r.Context()))
	} else {
		h.logger.DebugContext(r.Context(), "rejected listing query",
			"error", err,
			"query", r.URL.RawQuery)
	}
	h.metrics.ObserveQuery(status, time.Since(start), 0)
}

// noCache marks a listing response as uncacheable; the same URL yields
// different pages only if the dataset changes, which happens on restart.
func noCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-cache")
}
