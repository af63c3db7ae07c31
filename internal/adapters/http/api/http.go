// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/okian/podium/internal/adapters/repository"
	service "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/domain/domainindex"
	"github.com/okian/podium/internal/domain/filter"
	"github.com/okian/podium/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Domains(ctx context.Context) (domainindex.Index, error)
	Records(ctx context.Context, q service.Query, rows int) (service.Page, error)
	Export(ctx context.Context, w io.Writer, q service.Query) (int, error)
	View(ctx context.Context, name string, q service.Query) (service.ViewResult, error)
	Summary(ctx context.Context, q service.Query) (service.SummaryResult, error)
	Athlete(ctx context.Context, name string) ([]model.Record, error)
	Reload(ctx context.Context) (*repository.Snapshot, error)
}

// Server wires HTTP routes for the dashboard API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	domainsHandler *DomainsHandler
	recordsHandler *RecordsHandler
	viewsHandler   *ViewsHandler
	adminHandler   *AdminHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		domainsHandler: NewDomainsHandler(deps),
		recordsHandler: NewRecordsHandler(deps),
		viewsHandler:   NewViewsHandler(deps),
		adminHandler:   NewAdminHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/domains", MetricsMiddleware(s.domainsHandler.HandleDomains, "domains"))
	mux.HandleFunc("/summary", MetricsMiddleware(s.domainsHandler.HandleSummary, "summary"))
	mux.HandleFunc("/athletes", MetricsMiddleware(s.domainsHandler.HandleAthletes, "athletes"))
	mux.HandleFunc("/records", MetricsMiddleware(s.recordsHandler.HandleRecords, "records"))
	mux.HandleFunc("/records.csv", MetricsMiddleware(s.recordsHandler.HandleExport, "records_csv"))
	mux.HandleFunc("/views/", MetricsMiddleware(s.viewsHandler.HandleView, "views"))
	mux.HandleFunc("/admin/reload", MetricsMiddleware(s.adminHandler.HandleReload, "admin_reload"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps err onto the error envelope.
func writeFailure(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, filter.ErrInvalidAgeRange),
		errors.Is(err, service.ErrInvalidRows),
		errors.Is(err, service.ErrMissingName):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrNotFound), errors.Is(err, service.ErrUnknownView):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, ErrUnavailable), errors.Is(err, repository.ErrNoSnapshot):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
