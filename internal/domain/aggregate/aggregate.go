// Package aggregate computes grouped counts, histograms and summaries over
// a filtered record set. Every function is pure: inputs are never modified
// and empty inputs yield empty, non-nil results.
package aggregate

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/types"
)

// Dimension names a grouping key.
type Dimension string

// Supported dimensions.
const (
	// ByCountry counts medal records per NOC, ascending by code.
	ByCountry Dimension = "country"
	// ByYear counts all records per edition year, ascending.
	ByYear Dimension = "year"
	// ByMedal counts medal records per medal type, most frequent first.
	ByMedal Dimension = "medal"
	// ByMedalYear counts medal records per edition year, ascending.
	ByMedalYear Dimension = "medal_year"
	// ByMedalAge counts medal records with a known age per age, ascending.
	ByMedalAge Dimension = "medal_age"
)

// OthersKey labels the synthetic remainder row of TopNPlusOthers.
const OthersKey = "Others"

// ParseDimension validates a dimension name.
func ParseDimension(s string) (Dimension, error) {
	switch d := Dimension(s); d {
	case ByCountry, ByYear, ByMedal, ByMedalYear, ByMedalAge:
		return d, nil
	default:
		return "", fmt.Errorf("aggregate.parse_dimension: %w: %q", ErrUnknownDimension, s)
	}
}

// By groups records along dim and counts each group.
func By(records []model.Record, dim Dimension) ([]types.Count, error) {
	switch dim {
	case ByCountry:
		return countStrings(records, func(r model.Record) (string, bool) {
			return r.NOC, r.HasMedal()
		}), nil
	case ByYear:
		return countInts(records, func(r model.Record) (int, bool) {
			return r.Year, true
		}), nil
	case ByMedalYear:
		return countInts(records, func(r model.Record) (int, bool) {
			return r.Year, r.HasMedal()
		}), nil
	case ByMedalAge:
		return countInts(records, func(r model.Record) (int, bool) {
			age, ok := r.Age.Get()
			return age, ok && r.HasMedal()
		}), nil
	case ByMedal:
		return countMedals(records), nil
	default:
		return nil, fmt.Errorf("aggregate.by: %w: %q", ErrUnknownDimension, string(dim))
	}
}

// countStrings groups by a string key, skipping records where keep is false.
func countStrings(records []model.Record, key func(model.Record) (string, bool)) []types.Count {
	counts := make(map[string]int)
	for _, r := range records {
		if k, keep := key(r); keep {
			counts[k]++
		}
	}
	out := make([]types.Count, 0, len(counts))
	for k, n := range counts {
		out = append(out, types.Count{Key: k, Count: n})
	}
	slices.SortFunc(out, func(a, b types.Count) int { return strings.Compare(a.Key, b.Key) })
	return out
}

// countInts groups by an integer key and orders numerically, so that 900
// sorts before 1896.
func countInts(records []model.Record, key func(model.Record) (int, bool)) []types.Count {
	counts := make(map[int]int)
	for _, r := range records {
		if k, keep := key(r); keep {
			counts[k]++
		}
	}
	keys := make([]int, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]types.Count, 0, len(keys))
	for _, k := range keys {
		out = append(out, types.Count{Key: strconv.Itoa(k), Count: counts[k]})
	}
	return out
}

// countMedals follows value_counts semantics: present values only, most
// frequent first, ties in medal rank order.
func countMedals(records []model.Record) []types.Count {
	counts := make(map[model.Medal]int, len(model.Medals))
	for _, r := range records {
		if r.HasMedal() {
			counts[r.Medal]++
		}
	}
	ordered := make([]model.Medal, 0, len(counts))
	for _, m := range model.Medals {
		if counts[m] > 0 {
			ordered = append(ordered, m)
		}
	}
	slices.SortStableFunc(ordered, func(a, b model.Medal) int { return counts[b] - counts[a] })

	out := make([]types.Count, 0, len(ordered))
	for _, m := range ordered {
		out = append(out, types.Count{Key: m.String(), Count: counts[m]})
	}
	return out
}

// SortByCountDesc returns a copy of counts ordered by count descending,
// ties by key ascending.
func SortByCountDesc(counts []types.Count) []types.Count {
	out := slices.Clone(counts)
	if out == nil {
		out = []types.Count{}
	}
	slices.SortFunc(out, func(a, b types.Count) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Key, b.Key)
	})
	return out
}

// TopNPlusOthers keeps the first n entries of a count-descending list and
// folds the remainder into one OthersKey row. No row is added when the
// remainder is empty. Negative n is treated as zero.
func TopNPlusOthers(counts []types.Count, n int) []types.Count {
	if n < 0 {
		n = 0
	}
	if len(counts) <= n {
		out := make([]types.Count, len(counts))
		copy(out, counts)
		return out
	}
	out := make([]types.Count, 0, n+1)
	out = append(out, counts[:n]...)
	rest := 0
	for _, c := range counts[n:] {
		rest += c.Count
	}
	return append(out, types.Count{Key: OthersKey, Count: rest})
}

// Summarize computes the overview figures of the landing page.
func Summarize(records []model.Record) types.Summary {
	editions := make(map[int]struct{})
	cities := make(map[string]struct{})
	athletes := make(map[int]struct{})
	nations := make(map[string]struct{})
	sports := make(map[string]struct{})

	var s types.Summary
	for _, r := range records {
		editions[r.Year] = struct{}{}
		cities[r.City] = struct{}{}
		athletes[r.ID] = struct{}{}
		nations[r.NOC] = struct{}{}
		sports[r.Sport] = struct{}{}
		if r.HasMedal() {
			s.Medals++
		}
	}
	s.Editions = len(editions)
	s.HostCities = len(cities)
	s.Athletes = len(athletes)
	s.Nations = len(nations)
	s.Sports = len(sports)
	return s
}

// AthleteRecords returns the records of the athlete with exactly this name.
func AthleteRecords(records []model.Record, name string) []model.Record {
	out := make([]model.Record, 0)
	for _, r := range records {
		if r.Name == name {
			out = append(out, r)
		}
	}
	return out
}
