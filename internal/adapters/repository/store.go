// Package repository holds the loaded dataset as immutable snapshots.
package repository

import (
	"context"
	"time"

	"github.com/okian/podium/internal/domain/domainindex"
	"github.com/okian/podium/internal/domain/model"
)

// Snapshot is one loaded dataset together with its domain index. A
// snapshot is never modified after it is published; callers must treat
// Records as read-only.
type Snapshot struct {
	records  []model.Record
	index    domainindex.Index
	version  uint64
	source   string
	loadedAt time.Time
}

// Records returns the immutable record set.
func (s *Snapshot) Records() []model.Record { return s.records }

// Index returns the domain index derived from Records.
func (s *Snapshot) Index() domainindex.Index { return s.index }

// Version increases by one with every published snapshot, starting at 1.
func (s *Snapshot) Version() uint64 { return s.version }

// Source names where the records came from, usually a file path.
func (s *Snapshot) Source() string { return s.source }

// LoadedAt is the publication time.
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }

// Len returns the number of records.
func (s *Snapshot) Len() int { return len(s.records) }

// Store provides access to the current dataset snapshot.
type Store interface {
	// Current returns the latest snapshot, or ErrNoSnapshot before the
	// first Replace.
	Current(ctx context.Context) (*Snapshot, error)

	// Replace publishes a new snapshot built from records. Readers holding
	// the previous snapshot keep using it undisturbed.
	Replace(ctx context.Context, records []model.Record, source string) (*Snapshot, error)
}
