package model

import (
	"encoding/json"
	"strconv"
)

// Number is the set of numeric types an Optional can carry.
type Number interface {
	~int | ~float64
}

// Optional holds a numeric field that may be missing from the dataset.
// The zero value is missing; a missing value is never read as zero.
type Optional[T Number] struct {
	value T
	valid bool
}

// Some returns a present value.
func Some[T Number](v T) Optional[T] { return Optional[T]{value: v, valid: true} }

// None returns a missing value.
func None[T Number]() Optional[T] { return Optional[T]{} }

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.value, o.valid }

// Valid reports whether the value is present.
func (o Optional[T]) Valid() bool { return o.valid }

// Format renders the value for CSV output; missing values render empty.
func (o Optional[T]) Format() string {
	if !o.valid {
		return ""
	}
	switch v := any(o.value).(type) {
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return strconv.FormatFloat(float64(o.value), 'f', -1, 64)
	}
}

// MarshalJSON encodes a missing value as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
