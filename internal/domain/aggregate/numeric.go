package aggregate

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/types"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Ages returns the present ages of records in input order. Missing ages
// are dropped, never defaulted.
func Ages(records []model.Record) []float64 {
	out := make([]float64, 0, len(records))
	for _, r := range records {
		if age, ok := r.Age.Get(); ok {
			out = append(out, float64(age))
		}
	}
	return out
}

// Histogram partitions the min-to-max span of values into bucketCount
// equal-width buckets. Every bucket is half-open except the last, whose
// upper edge is inclusive. When all values are equal there is a single
// bucket holding all of them. NaN and infinite values are ignored.
func Histogram(values []float64, bucketCount int) ([]types.Bucket, error) {
	if bucketCount < 1 {
		return nil, fmt.Errorf("aggregate.histogram: %w: %d", ErrInvalidBucketCount, bucketCount)
	}

	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return []types.Bucket{}, nil
	}

	lo, hi := slices.Min(clean), slices.Max(clean)
	if lo == hi {
		return []types.Bucket{{Lower: lo, Upper: hi, Closed: true, Count: len(clean)}}, nil
	}

	edges := make([]float64, bucketCount+1)
	floats.Span(edges, lo, hi)
	buckets := make([]types.Bucket, bucketCount)
	for i := range buckets {
		buckets[i].Lower = edges[i]
		buckets[i].Upper = edges[i+1]
	}
	last := bucketCount - 1
	buckets[last].Closed = true

	// stat.Histogram bins into [edges[i], edges[i+1]) and rejects values at
	// the top edge; those belong to the closed last bucket.
	slices.Sort(clean)
	top := len(clean)
	for top > 0 && clean[top-1] >= hi {
		top--
	}
	counts := stat.Histogram(nil, edges, clean[:top], nil)
	for i, c := range counts {
		buckets[i].Count = int(c)
	}
	buckets[last].Count += len(clean) - top
	return buckets, nil
}

type boxKey struct {
	sport string
	sex   model.Sex
}

// HeightBySport returns the five-number summary of present heights for
// every (sport, sex) group, ordered by sport and then sex. Groups without
// any height are omitted.
func HeightBySport(records []model.Record) []types.BoxStats {
	groups := make(map[boxKey][]float64)
	for _, r := range records {
		if h, ok := r.Height.Get(); ok {
			k := boxKey{sport: r.Sport, sex: r.Sex}
			groups[k] = append(groups[k], h)
		}
	}

	keys := make([]boxKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b boxKey) int {
		if c := strings.Compare(a.sport, b.sport); c != 0 {
			return c
		}
		return int(a.sex) - int(b.sex)
	})

	out := make([]types.BoxStats, 0, len(keys))
	for _, k := range keys {
		vals := slices.Clone(groups[k])
		slices.Sort(vals)
		out = append(out, types.BoxStats{
			Sport:  k.sport,
			Sex:    k.sex.String(),
			N:      len(vals),
			Min:    vals[0],
			Q1:     quantile(vals, 0.25),
			Median: quantile(vals, 0.5),
			Q3:     quantile(vals, 0.75),
			Max:    vals[len(vals)-1],
		})
	}
	return out
}

// quantile uses linear interpolation between closest ranks (numpy's default
// method); sorted must be ascending and non-empty.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	below := int(math.Floor(pos))
	above := int(math.Ceil(pos))
	if below == above {
		return sorted[below]
	}
	frac := pos - float64(below)
	return sorted[below] + (sorted[above]-sorted[below])*frac
}
