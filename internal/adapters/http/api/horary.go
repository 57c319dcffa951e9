package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	service "github.com/okian/kpastro/internal/app"
	"github.com/okian/kpastro/pkg/logger"
)

// HoraryHandler handles horary searches and the division table.
type HoraryHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewHoraryHandler creates a new horary handler.
func NewHoraryHandler(deps Dependencies, l logger.Logger) *HoraryHandler {
	return &HoraryHandler{deps: deps, logger: l}
}

// HandlePostHorary handles POST /horary requests.
func (h *HoraryHandler) HandlePostHorary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var body horaryRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	req, err := body.toService()
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	report, err := h.deps.Horary(r.Context(), service.HoraryRequest{Number: body.Number, ChartRequest: req})
	if err != nil {
		if service.ErrorKind(err) == service.KindNoMatch {
			writeJSON(w, http.StatusNotFound, noMatchResponse{
				errorResponse: errorResponse{Code: service.KindNoMatch, Message: err.Error(), RequestID: RequestID(r.Context())},
				Report:        report,
			})
			return
		}
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// noMatchResponse carries the exhausted search alongside the error.
type noMatchResponse struct {
	errorResponse
	Report service.HoraryReport `json:"report"`
}

// HandleListDivisions handles GET /horary/divisions requests.
func (h *HoraryHandler) HandleListDivisions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Divisions())
}

// HandleGetDivision handles GET /horary/divisions/{number} requests.
func (h *HoraryHandler) HandleGetDivision(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/horary/divisions/")
	if path == "" || strings.Contains(path, "/") {
		writeError(w, r, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	n, err := strconv.Atoi(path)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: horary number %q", ErrBadRequest, path))
		return
	}
	d, err := h.deps.Division(n)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
