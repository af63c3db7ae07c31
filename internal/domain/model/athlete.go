// Package model contains domain models passed between layers.
package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Record is one row of the athlete-events dataset: a single athlete
// participating in a single event at a single edition of the Games.
// Records are loaded once and never mutated. ID is not unique across
// editions; NOC is the ISO-3 style country code; Height is in centimetres
// and Weight in kilograms.
type Record struct {
	ID     int               `json:"id"`
	Name   string            `json:"name"`
	Sex    Sex               `json:"sex"`
	Age    Optional[int]     `json:"age"`
	Height Optional[float64] `json:"height"`
	Weight Optional[float64] `json:"weight"`
	Team   string            `json:"team"`
	NOC    string            `json:"noc"`
	Games  string            `json:"games"`
	Year   int               `json:"year"`
	Season string            `json:"season"`
	City   string            `json:"city"`
	Sport  string            `json:"sport"`
	Event  string            `json:"event"`
	Medal  Medal             `json:"medal"`
}

// HasMedal reports whether the record is a medal record.
func (r Record) HasMedal() bool { return r.Medal.Present() }

// Sex of the athlete as recorded in the dataset.
type Sex uint8

// Sex values. SexUnspecified covers anything other than M or F.
const (
	SexUnspecified Sex = iota
	Male
	Female
)

// ParseSex maps the dataset's M/F codes; any other value is unspecified.
func ParseSex(s string) Sex {
	switch s {
	case "M":
		return Male
	case "F":
		return Female
	default:
		return SexUnspecified
	}
}

func (s Sex) String() string {
	switch s {
	case Male:
		return "M"
	case Female:
		return "F"
	default:
		return ""
	}
}

// MarshalJSON encodes an unspecified sex as null.
func (s Sex) MarshalJSON() ([]byte, error) {
	if s == SexUnspecified {
		return []byte("null"), nil
	}
	return json.Marshal(s.String())
}

// Medal won by a record. NoMedal is an explicit absent state and is
// never represented by an empty medal name.
type Medal uint8

// Medal values, ordered from the most to the least valuable after NoMedal.
const (
	NoMedal Medal = iota
	Gold
	Silver
	Bronze
)

// Medals lists the present medal types in rank order.
var Medals = []Medal{Gold, Silver, Bronze}

// ParseMedal parses a dataset medal cell. Empty and "NA" cells are NoMedal.
func ParseMedal(s string) (Medal, error) {
	switch strings.TrimSpace(s) {
	case "", "NA":
		return NoMedal, nil
	case "Gold":
		return Gold, nil
	case "Silver":
		return Silver, nil
	case "Bronze":
		return Bronze, nil
	default:
		return NoMedal, fmt.Errorf("%w: %q", ErrUnknownMedal, s)
	}
}

// Present reports whether a medal was won.
func (m Medal) Present() bool { return m >= Gold && m <= Bronze }

func (m Medal) String() string {
	switch m {
	case Gold:
		return "Gold"
	case Silver:
		return "Silver"
	case Bronze:
		return "Bronze"
	default:
		return ""
	}
}

// MarshalJSON encodes NoMedal as null.
func (m Medal) MarshalJSON() ([]byte, error) {
	if !m.Present() {
		return []byte("null"), nil
	}
	return json.Marshal(m.String())
}
