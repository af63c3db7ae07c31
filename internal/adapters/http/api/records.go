package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	service "github.com/okian/podium/internal/app"
)

// ExportFilename is the attachment name of the CSV download.
const ExportFilename = "filtered_data.csv"

// RecordsDependencies defines the interface for table and export operations.
type RecordsDependencies interface {
	Records(ctx context.Context, q service.Query, rows int) (service.Page, error)
	Export(ctx context.Context, w io.Writer, q service.Query) (int, error)
}

// RecordsHandler serves the filtered table and its CSV export.
type RecordsHandler struct {
	deps RecordsDependencies
}

// NewRecordsHandler creates a new records handler.
func NewRecordsHandler(deps RecordsDependencies) *RecordsHandler {
	return &RecordsHandler{deps: deps}
}

// HandleRecords handles GET /records?rows= requests.
func (h *RecordsHandler) HandleRecords(w http.ResponseWriter, r *http.Request) {
	const op = "api.records"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	values := r.URL.Query()
	q, err := parseQuery(values)
	if err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	rows := 0
	if raw := strings.TrimSpace(values.Get("rows")); raw != "" {
		if rows, err = strconv.Atoi(raw); err != nil {
			writeFailure(w, WrapKind(op, ErrBadRequest, fmt.Errorf("rows %q is not a number", raw)))
			return
		}
		if rows == 0 {
			writeFailure(w, WrapKind(op, ErrBadRequest, service.ErrInvalidRows))
			return
		}
	}

	page, err := h.deps.Records(r.Context(), q, rows)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// HandleExport handles GET /records.csv requests. The document is built in
// memory first so a failure can still be reported as JSON.
func (h *RecordsHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	const op = "api.export"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	var buf bytes.Buffer
	if _, err := h.deps.Export(r.Context(), &buf, q); err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ExportFilename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
