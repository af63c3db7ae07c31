package api

import (
	"context"
	"net/http"
	"time"

	"github.com/okian/podium/internal/adapters/repository"
)

// ReloadDependencies defines the interface for dataset reloads.
type ReloadDependencies interface {
	Reload(ctx context.Context) (*repository.Snapshot, error)
}

// AdminHandler handles operator requests.
type AdminHandler struct {
	deps ReloadDependencies
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(deps ReloadDependencies) *AdminHandler {
	return &AdminHandler{deps: deps}
}

type reloadResponse struct {
	Version  uint64 `json:"version"`
	Records  int    `json:"records"`
	Source   string `json:"source"`
	LoadedAt string `json:"loaded_at"`
}

// HandleReload handles POST /admin/reload requests.
func (h *AdminHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	const op = "api.reload"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	snap, err := h.deps.Reload(r.Context())
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, reloadResponse{
		Version:  snap.Version(),
		Records:  snap.Len(),
		Source:   snap.Source(),
		LoadedAt: snap.LoadedAt().UTC().Format(time.RFC3339),
	})
}
