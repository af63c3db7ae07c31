// Package domainindex derives the selectable values for each filterable
// dimension of the dataset.
package domainindex

import (
	"slices"

	"github.com/okian/podium/internal/domain/model"
)

// Index holds sorted, de-duplicated selectable values. Uniqueness is exact
// value equality; no case folding or trimming is applied.
type Index struct {
	// Countries are the NOC codes that appear on at least one medal record.
	Countries []string `json:"countries"`
	// Years are all edition years, ascending.
	Years []int `json:"years"`
	// Sports are all sports, ascending.
	Sports []string `json:"sports"`
	// Names are all athlete names, ascending.
	Names []string `json:"names"`

	// AgeMin and AgeMax bound the observed ages; only meaningful when HasAge.
	AgeMin int  `json:"age_min"`
	AgeMax int  `json:"age_max"`
	HasAge bool `json:"has_age"`
}

// Choice is one entry of a selector. Any marks the "no restriction" entry,
// which carries no data value.
type Choice struct {
	Any   bool   `json:"any"`
	Value string `json:"value,omitempty"`
}

// Build computes the index. It is a pure function of records.
func Build(records []model.Record) Index {
	countries := make(map[string]struct{})
	years := make(map[int]struct{})
	sports := make(map[string]struct{})
	names := make(map[string]struct{})

	idx := Index{}
	for _, r := range records {
		if r.HasMedal() {
			countries[r.NOC] = struct{}{}
		}
		years[r.Year] = struct{}{}
		sports[r.Sport] = struct{}{}
		names[r.Name] = struct{}{}

		if age, ok := r.Age.Get(); ok {
			if !idx.HasAge || age < idx.AgeMin {
				idx.AgeMin = age
			}
			if !idx.HasAge || age > idx.AgeMax {
				idx.AgeMax = age
			}
			idx.HasAge = true
		}
	}

	idx.Countries = sortedKeys(countries)
	idx.Years = sortedKeys(years)
	idx.Sports = sortedKeys(sports)
	idx.Names = sortedKeys(names)
	return idx
}

// CountryChoices returns the country selector: the "any" entry followed by
// every country in index order.
func (i Index) CountryChoices() []Choice {
	out := make([]Choice, 0, len(i.Countries)+1)
	out = append(out, Choice{Any: true})
	for _, c := range i.Countries {
		out = append(out, Choice{Value: c})
	}
	return out
}

// AgeBounds returns the default age range. fallbackLo and fallbackHi are
// used when no record carries an age.
func (i Index) AgeBounds(fallbackLo, fallbackHi int) (int, int) {
	if !i.HasAge {
		return fallbackLo, fallbackHi
	}
	return i.AgeMin, i.AgeMax
}

func sortedKeys[K int | string](set map[K]struct{}) []K {
	out := make([]K, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
