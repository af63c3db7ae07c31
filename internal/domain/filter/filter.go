// Package filter applies the dashboard's composable filter pipeline.
//
// A Spec is an immutable conjunction of optional predicates (country, years,
// sports) and a required inclusive age range. Unset predicates impose no
// restriction; values that do not occur in the data simply match nothing.
package filter

import (
	"fmt"
	"slices"

	"github.com/okian/podium/internal/domain/model"
)

// Spec is the set of active filter criteria. Build it with New.
type Spec struct {
	country    string
	hasCountry bool
	years      map[int]struct{}
	sports     map[string]struct{}
	ageLo      int
	ageHi      int
}

// Option applies a predicate to a Spec under construction.
type Option func(*Spec)

// WithCountry restricts records to one NOC code.
func WithCountry(code string) Option {
	return func(s *Spec) {
		s.country = code
		s.hasCountry = true
	}
}

// WithYears restricts records to the given edition years. Calling it with
// no years leaves the year predicate unset.
func WithYears(years ...int) Option {
	return func(s *Spec) {
		for _, y := range years {
			if s.years == nil {
				s.years = make(map[int]struct{}, len(years))
			}
			s.years[y] = struct{}{}
		}
	}
}

// WithSports restricts records to the given sports. Calling it with no
// sports leaves the sport predicate unset.
func WithSports(sports ...string) Option {
	return func(s *Spec) {
		for _, sp := range sports {
			if s.sports == nil {
				s.sports = make(map[string]struct{}, len(sports))
			}
			s.sports[sp] = struct{}{}
		}
	}
}

// New builds a Spec over the inclusive age range [ageLo, ageHi].
func New(ageLo, ageHi int, opts ...Option) (Spec, error) {
	if ageLo > ageHi {
		return Spec{}, fmt.Errorf("filter.new: %w: %d > %d", ErrInvalidAgeRange, ageLo, ageHi)
	}
	s := Spec{ageLo: ageLo, ageHi: ageHi}
	for _, opt := range opts {
		opt(&s)
	}
	return s, nil
}

// Country returns the country restriction, if any.
func (s Spec) Country() (string, bool) { return s.country, s.hasCountry }

// Years returns the year restriction in ascending order; empty means none.
func (s Spec) Years() []int {
	out := make([]int, 0, len(s.years))
	for y := range s.years {
		out = append(out, y)
	}
	slices.Sort(out)
	return out
}

// Sports returns the sport restriction in ascending order; empty means none.
func (s Spec) Sports() []string {
	out := make([]string, 0, len(s.sports))
	for sp := range s.sports {
		out = append(out, sp)
	}
	slices.Sort(out)
	return out
}

// AgeRange returns the inclusive age bounds.
func (s Spec) AgeRange() (int, int) { return s.ageLo, s.ageHi }

// Match reports whether r passes every predicate of the spec. A record
// with a missing age never matches.
func (s Spec) Match(r model.Record) bool {
	if s.hasCountry && r.NOC != s.country {
		return false
	}
	if len(s.years) > 0 {
		if _, ok := s.years[r.Year]; !ok {
			return false
		}
	}
	if len(s.sports) > 0 {
		if _, ok := s.sports[r.Sport]; !ok {
			return false
		}
	}
	age, ok := r.Age.Get()
	if !ok {
		return false
	}
	return age >= s.ageLo && age <= s.ageHi
}

// Apply returns the records matching spec in their input order. The input
// slice is never modified and the result never aliases it.
func Apply(records []model.Record, spec Spec) []model.Record {
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if spec.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
