// Package service composes the dataset, the snapshot store and the query
// engine into the operations served by the HTTP API and the CLI.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/podium/internal/adapters/repository"
	"github.com/okian/podium/internal/dataset"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

// Defaults mirror the dashboard's layout.
const (
	defaultDataPath          = "athlete_events.csv"
	defaultHistogramBuckets  = 50
	defaultDonutTopN         = 15
	defaultTableRows         = 20
	defaultTableRowsExpanded = 50
)

// Service answers dashboard queries against the current snapshot.
type Service struct {
	// reloadMu serialises reloads; queries never take it.
	reloadMu sync.Mutex

	store repository.Store

	dataPath         string
	histogramBuckets int
	donutTopN        int
	tableRows        []int

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore sets the snapshot store. The default is an empty MemoryStore.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDataPath sets the CSV file read by Reload.
func WithDataPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dataPath = path
		}
	}
}

// WithHistogramBuckets sets the age histogram bucket count.
func WithHistogramBuckets(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.histogramBuckets = n
		}
	}
}

// WithDonutTopN sets how many teams the medal donut keeps.
func WithDonutTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.donutTopN = n
		}
	}
}

// WithTableRows sets the accepted page sizes of Records; the first is the
// default.
func WithTableRows(sizes ...int) Option {
	return func(s *Service) {
		valid := make([]int, 0, len(sizes))
		for _, n := range sizes {
			if n > 0 {
				valid = append(valid, n)
			}
		}
		if len(valid) > 0 {
			s.tableRows = valid
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataPath:         defaultDataPath,
		histogramBuckets: defaultHistogramBuckets,
		donutTopN:        defaultDonutTopN,
		tableRows:        []int{defaultTableRows, defaultTableRowsExpanded},
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	return s
}

// Reload reads the configured dataset and publishes it as the new snapshot.
// On failure the previous snapshot stays current.
func (s *Service) Reload(ctx context.Context) (*repository.Snapshot, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	start := time.Now()
	records, err := dataset.Open(ctx, s.dataPath)
	if err != nil {
		metrics.RecordReload(false, msSince(start))
		s.logger.Error(ctx, "dataset load failed",
			logger.String("path", s.dataPath),
			logger.Error(err),
		)
		return nil, fmt.Errorf("service.reload: %w", err)
	}

	snap, err := s.store.Replace(ctx, records, s.dataPath)
	if err != nil {
		metrics.RecordReload(false, msSince(start))
		return nil, fmt.Errorf("service.reload: %w", err)
	}
	metrics.RecordReload(true, msSince(start))

	s.logger.Info(ctx, "dataset loaded",
		logger.String("path", s.dataPath),
		logger.Int("records", snap.Len()),
		logger.Int("version", int(snap.Version())), //nolint:gosec // versions stay far below MaxInt
		logger.Duration("took", time.Since(start)),
	)
	return snap, nil
}

// TableRows returns the accepted page sizes, default first.
func (s *Service) TableRows() []int {
	return append([]int(nil), s.tableRows...)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	stats := map[string]any{
		"dataPath":         s.dataPath,
		"histogramBuckets": s.histogramBuckets,
		"donutTopN":        s.donutTopN,
		"tableRows":        s.TableRows(),
		"loaded":           false,
	}

	snap, err := s.store.Current(context.Background())
	if err != nil {
		return stats
	}
	stats["loaded"] = true
	stats["records"] = snap.Len()
	stats["version"] = snap.Version()
	stats["source"] = snap.Source()
	stats["loadedAt"] = snap.LoadedAt().UTC().Format(time.RFC3339)
	return stats
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}
