package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/podium/internal/domain/domainindex"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/pkg/metrics"
)

type pending struct {
	records []model.Record
	source  string
}

// MemoryStore is an in-memory Store. Reads are lock-free through an atomic
// pointer; writers are serialised so versions stay strictly increasing.
type MemoryStore struct {
	mu      sync.Mutex
	current atomic.Pointer[Snapshot]
	version uint64
	now     func() time.Time
	initial *pending
}

// NewMemoryStore constructs an empty store, or one holding WithInitial records.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.initial != nil {
		s.publish(s.initial.records, s.initial.source)
		s.initial = nil
	}
	return s
}

// Current returns the latest snapshot.
func (s *MemoryStore) Current(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("repository.current: %w", err)
	}
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	return snap, nil
}

// Replace copies records, derives their index and publishes the result.
func (s *MemoryStore) Replace(ctx context.Context, records []model.Record, source string) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("repository.replace: %w", err)
	}
	return s.publish(records, source), nil
}

func (s *MemoryStore) publish(records []model.Record, source string) *Snapshot {
	owned := slices.Clip(slices.Clone(records))
	if owned == nil {
		owned = []model.Record{}
	}
	index := domainindex.Build(owned)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.version++
	snap := &Snapshot{
		records:  owned,
		index:    index,
		version:  s.version,
		source:   source,
		loadedAt: s.now(),
	}
	s.current.Store(snap)

	metrics.UpdateDatasetRecords(len(owned))
	metrics.UpdateSnapshotVersion(s.version)
	return snap
}
