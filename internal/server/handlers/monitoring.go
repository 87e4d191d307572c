package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"git.home.luguber.info/inful/blogcontent/internal/foundation/errors"
	"git.home.luguber.info/inful/blogcontent/internal/posts"
	"git.home.luguber.info/inful/blogcontent/internal/server/responses"
	"git.home.luguber.info/inful/blogcontent/internal/version"
)

// MonitoringHandlers serves health checks.
type MonitoringHandlers struct {
	source       posts.Source
	errorAdapter *errors.HTTPErrorAdapter
}

// NewMonitoringHandlers creates monitoring handlers for source.
func NewMonitoringHandlers(source posts.Source, logger *slog.Logger) *MonitoringHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &MonitoringHandlers{source: source, errorAdapter: errors.NewHTTPErrorAdapter(logger)}
}

// HandleHealthCheck reports ok when the content directory can be loaded.
func (h *MonitoringHandlers) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r, h.errorAdapter) {
		return
	}
	all, err := h.source.LoadAll(r.Context())
	if err != nil {
		unavailable := errors.WrapError(err, errors.CategoryRuntime, "content unavailable").Build()
		h.errorAdapter.WriteErrorResponse(w, r, unavailable)
		return
	}
	resp := responses.HealthResponse{
		Status:    "ok",
		Version:   version.Version,
		Posts:     len(all),
		Timestamp: time.Now().UTC(),
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, errors.WrapError(err, errors.CategoryInternal, "failed to write health response").Build())
	}
}
