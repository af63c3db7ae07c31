package api

import (
	"context"
	"net/http"
	"strings"

	service "github.com/okian/podium/internal/app"
)

// ViewsDependencies defines the interface for view computation.
type ViewsDependencies interface {
	View(ctx context.Context, name string, q service.Query) (service.ViewResult, error)
}

// ViewsHandler serves the named dashboard views.
type ViewsHandler struct {
	deps ViewsDependencies
}

// NewViewsHandler creates a new views handler.
func NewViewsHandler(deps ViewsDependencies) *ViewsHandler {
	return &ViewsHandler{deps: deps}
}

// HandleView handles GET /views/{name} requests.
func (h *ViewsHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	const op = "api.view"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/views/")
	if name == "" || strings.Contains(name, "/") {
		writeFailure(w, NewKind(op, ErrNotFound))
		return
	}
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	res, err := h.deps.View(r.Context(), name, q)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}
