package service

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/okian/podium/internal/adapters/repository"
	"github.com/okian/podium/internal/dataset"
	"github.com/okian/podium/internal/domain/aggregate"
	"github.com/okian/podium/internal/domain/domainindex"
	"github.com/okian/podium/internal/domain/filter"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/types"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

// Query carries the raw filter selection of one request. A nil age bound
// defaults to the observed bound of the snapshot being queried.
type Query struct {
	Country string
	Years   []int
	Sports  []string
	AgeMin  *int
	AgeMax  *int
}

// Page is one page of the filtered table.
type Page struct {
	Total   int            `json:"total"`
	Rows    int            `json:"rows"`
	Records []model.Record `json:"records"`
}

// SummaryResult is the overview of the whole dataset plus the size of the
// current selection.
type SummaryResult struct {
	types.Summary
	Showing int `json:"showing"`
}

// Domains returns the domain index of the current snapshot.
func (s *Service) Domains(ctx context.Context) (domainindex.Index, error) {
	snap, err := s.store.Current(ctx)
	if err != nil {
		return domainindex.Index{}, fmt.Errorf("service.domains: %w", err)
	}
	return snap.Index(), nil
}

func specFor(snap *repository.Snapshot, q Query) (filter.Spec, error) {
	lo, hi := snap.Index().AgeBounds(0, 0)
	if q.AgeMin != nil {
		lo = *q.AgeMin
	}
	if q.AgeMax != nil {
		hi = *q.AgeMax
	}
	opts := []filter.Option{filter.WithYears(q.Years...), filter.WithSports(q.Sports...)}
	// An empty country means no restriction.
	if q.Country != "" {
		opts = append(opts, filter.WithCountry(q.Country))
	}
	return filter.New(lo, hi, opts...)
}

// selection is one filter evaluation bound to the snapshot it ran against.
type selection struct {
	snap    *repository.Snapshot
	records []model.Record
}

func (s *Service) evaluate(ctx context.Context, q Query) (selection, error) {
	snap, err := s.store.Current(ctx)
	if err != nil {
		return selection{}, err
	}
	spec, err := specFor(snap, q)
	if err != nil {
		return selection{}, err
	}

	start := time.Now()
	records := filter.Apply(snap.Records(), spec)
	metrics.RecordFilter(msSince(start), len(records))

	s.logger.Debug(ctx, "filter evaluated",
		logger.Int("matched", len(records)),
		logger.Int("of", snap.Len()),
		logger.Bool("country", q.Country != ""),
		logger.Int("years", len(q.Years)),
		logger.Int("sports", len(q.Sports)),
	)
	return selection{snap: snap, records: records}, nil
}

// Records returns the first rows filtered records. rows of 0 selects the
// default page size; any size outside TableRows is ErrInvalidRows.
func (s *Service) Records(ctx context.Context, q Query, rows int) (Page, error) {
	if rows == 0 {
		rows = s.tableRows[0]
	}
	if !slices.Contains(s.tableRows, rows) {
		return Page{}, fmt.Errorf("service.records: %w: %d not in %v", ErrInvalidRows, rows, s.tableRows)
	}
	sel, err := s.evaluate(ctx, q)
	if err != nil {
		return Page{}, fmt.Errorf("service.records: %w", err)
	}
	head := sel.records[:min(rows, len(sel.records))]
	return Page{Total: len(sel.records), Rows: rows, Records: head}, nil
}

// Export writes the whole filtered set as CSV and returns the number of
// data rows written.
func (s *Service) Export(ctx context.Context, w io.Writer, q Query) (int, error) {
	sel, err := s.evaluate(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("service.export: %w", err)
	}
	if err := dataset.Write(w, sel.records); err != nil {
		return 0, fmt.Errorf("service.export: %w", err)
	}
	metrics.RecordCSVExport(len(sel.records))
	return len(sel.records), nil
}

// Summary returns the overview metrics of the full snapshot and how many
// records q selects.
func (s *Service) Summary(ctx context.Context, q Query) (SummaryResult, error) {
	sel, err := s.evaluate(ctx, q)
	if err != nil {
		return SummaryResult{}, fmt.Errorf("service.summary: %w", err)
	}
	return SummaryResult{
		Summary: aggregate.Summarize(sel.snap.Records()),
		Showing: len(sel.records),
	}, nil
}

// Athlete returns every record of the named athlete. It ignores filters.
func (s *Service) Athlete(ctx context.Context, name string) ([]model.Record, error) {
	if name == "" {
		return nil, fmt.Errorf("service.athlete: %w", ErrMissingName)
	}
	snap, err := s.store.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.athlete: %w", err)
	}
	return aggregate.AthleteRecords(snap.Records(), name), nil
}
