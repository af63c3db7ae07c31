package repository

import (
	"time"

	"github.com/okian/podium/internal/domain/model"
)

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithClock overrides the time source used to stamp snapshots.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithInitial publishes records as the first snapshot at construction.
func WithInitial(records []model.Record, source string) Option {
	return func(s *MemoryStore) {
		s.initial = &pending{records: records, source: source}
	}
}
