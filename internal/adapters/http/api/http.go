// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/kpastro/internal/adapters/http/swagger"
	service "github.com/okian/kpastro/internal/app"
	"github.com/okian/kpastro/internal/domain/horary"
	"github.com/okian/kpastro/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Chart(ctx context.Context, r service.ChartRequest) (service.ChartReport, error)
	Horary(ctx context.Context, r service.HoraryRequest) (service.HoraryReport, error)
	Divisions() []horary.Division
	Division(number int) (horary.Division, error)
}

// Server wires HTTP routes for the chart API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	chartHandler  *ChartHandler
	horaryHandler *HoraryHandler
}

// Option configures a Server.
type Option func(*options)

type options struct {
	logger logger.Logger
}

// WithLogger sets the logger used for server-side failures.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	o := options{logger: logger.OrNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		chartHandler:  NewChartHandler(deps, o.logger),
		horaryHandler: NewHoraryHandler(deps, o.logger),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	route := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, RequestIDMiddleware(MetricsMiddleware(h, endpoint)))
	}

	// Specific paths first (most specific to least specific)
	route("/healthz", "healthz", s.healthHandler.HandleHealth)
	route("/stats", "stats", s.statsHandler.HandleStats)
	route("/openapi.yaml", "openapi", swagger.HandleOpenAPI)
	route("/chart", "chart", s.chartHandler.HandlePostChart)
	route("/horary", "horary", s.horaryHandler.HandlePostHorary)
	route("/horary/divisions", "divisions", s.horaryHandler.HandleListDivisions)
	route("/horary/divisions/", "division", s.horaryHandler.HandleGetDivision)
}

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg, RequestID: RequestID(r.Context())})
}

// writeServiceError maps an engine error onto its HTTP status.
func writeServiceError(w http.ResponseWriter, r *http.Request, l logger.Logger, err error) {
	kind := service.ErrorKind(err)
	switch kind {
	case service.KindInvalidInput:
		writeError(w, r, http.StatusBadRequest, kind, err)
	case service.KindNoMatch:
		writeError(w, r, http.StatusNotFound, kind, err)
	case service.KindTimeout:
		writeError(w, r, http.StatusGatewayTimeout, kind, err)
	case service.KindUnavailable:
		writeError(w, r, http.StatusServiceUnavailable, kind, err)
	default:
		l.Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.String("requestID", RequestID(r.Context())),
			logger.Error(err),
		)
		writeError(w, r, http.StatusInternalServerError, "internal_error", err)
	}
}
