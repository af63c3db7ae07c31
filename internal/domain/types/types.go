// Package types contains common result types shared by the aggregate
// engine, the service and the HTTP layer.
package types

import "fmt"

// Count is one (key, count) row of a grouped aggregate.
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Bucket is one equal-width histogram bucket. Upper is exclusive unless
// Closed is set, which only happens for the last bucket.
type Bucket struct {
	Lower  float64 `json:"lower"`
	Upper  float64 `json:"upper"`
	Closed bool    `json:"closed"`
	Count  int     `json:"count"`
}

// Label renders the bucket range in interval notation, e.g. "[10, 25)".
func (b Bucket) Label() string {
	closing := ")"
	if b.Closed {
		closing = "]"
	}
	return fmt.Sprintf("[%g, %g%s", b.Lower, b.Upper, closing)
}

// Contains reports whether v falls into the bucket.
func (b Bucket) Contains(v float64) bool {
	if v < b.Lower {
		return false
	}
	if b.Closed {
		return v <= b.Upper
	}
	return v < b.Upper
}

// BoxStats is the five-number summary of a numeric field for one group.
type BoxStats struct {
	Sport  string  `json:"sport"`
	Sex    string  `json:"sex"`
	N      int     `json:"n"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// Summary holds the headline figures of the dashboard landing page.
type Summary struct {
	Editions   int `json:"editions"`
	HostCities int `json:"host_cities"`
	Medals     int `json:"medals"`
	Athletes   int `json:"athletes"`
	Nations    int `json:"nations"`
	Sports     int `json:"sports"`
}
