package api

import (
	"context"
	"net/http"

	"github.com/dustin/go-humanize"
	service "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/domain/domainindex"
	"github.com/okian/podium/internal/domain/model"
)

// DomainsDependencies defines the lookups behind the overview endpoints.
type DomainsDependencies interface {
	Domains(ctx context.Context) (domainindex.Index, error)
	Summary(ctx context.Context, q service.Query) (service.SummaryResult, error)
	Athlete(ctx context.Context, name string) ([]model.Record, error)
}

// DomainsHandler serves the domain index, the summary and athlete lookups.
type DomainsHandler struct {
	deps DomainsDependencies
}

// NewDomainsHandler creates a new domains handler.
func NewDomainsHandler(deps DomainsDependencies) *DomainsHandler {
	return &DomainsHandler{deps: deps}
}

type domainsResponse struct {
	domainindex.Index
	CountryChoices []domainindex.Choice `json:"country_choices"`
}

// HandleDomains handles GET /domains requests.
func (h *DomainsHandler) HandleDomains(w http.ResponseWriter, r *http.Request) {
	const op = "api.domains"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	idx, err := h.deps.Domains(r.Context())
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, domainsResponse{Index: idx, CountryChoices: idx.CountryChoices()})
}

type summaryResponse struct {
	service.SummaryResult
	Labels map[string]string `json:"labels"`
}

// HandleSummary handles GET /summary requests.
func (h *DomainsHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	const op = "api.summary"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	sum, err := h.deps.Summary(r.Context(), q)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{SummaryResult: sum, Labels: summaryLabels(sum)})
}

// summaryLabels renders the headline figures with thousands separators.
func summaryLabels(s service.SummaryResult) map[string]string {
	label := func(n int) string { return humanize.Comma(int64(n)) }
	return map[string]string{
		"editions":    label(s.Editions),
		"host_cities": label(s.HostCities),
		"medals":      label(s.Medals),
		"athletes":    label(s.Athletes),
		"nations":     label(s.Nations),
		"sports":      label(s.Sports),
		"showing":     label(s.Showing),
	}
}

type athleteResponse struct {
	Name    string         `json:"name"`
	Records []model.Record `json:"records"`
}

// HandleAthletes handles GET /athletes?name= requests.
func (h *DomainsHandler) HandleAthletes(w http.ResponseWriter, r *http.Request) {
	const op = "api.athletes"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		writeFailure(w, WrapKind(op, ErrBadRequest, service.ErrMissingName))
		return
	}
	records, err := h.deps.Athlete(r.Context(), name)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, athleteResponse{Name: name, Records: records})
}
