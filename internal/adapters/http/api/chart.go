package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/okian/kpastro/pkg/logger"
)

// ChartHandler handles chart requests.
type ChartHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewChartHandler creates a new chart handler.
func NewChartHandler(deps Dependencies, l logger.Logger) *ChartHandler {
	return &ChartHandler{deps: deps, logger: l}
}

// HandlePostChart handles POST /chart requests.
func (h *ChartHandler) HandlePostChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var body chartRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	req, err := body.toService()
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	report, err := h.deps.Chart(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
