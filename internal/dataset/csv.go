// Package dataset reads the athlete-events CSV into records and writes
// filtered record sets back out in the same column layout.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/okian/podium/internal/domain/model"
)

// Columns is the dataset column layout, used for both parsing and export.
var Columns = []string{
	"ID", "Name", "Sex", "Age", "Height", "Weight", "Team", "NOC",
	"Games", "Year", "Season", "City", "Sport", "Event", "Medal",
}

// Column positions within Columns.
const (
	colID = iota
	colName
	colSex
	colAge
	colHeight
	colWeight
	colTeam
	colNOC
	colGames
	colYear
	colSeason
	colCity
	colSport
	colEvent
	colMedal
)

// missing cell markers used by the published dataset.
const naValue = "NA"

// Open reads the dataset at path.
func Open(ctx context.Context, path string) ([]model.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("dataset.open: %w", err)
	}
	f, err := os.Open(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("dataset.open: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("dataset.open %s: %w", path, err)
	}
	return records, nil
}

// Read parses a CSV stream with a header row. Columns are located by name
// and may appear in any order; extra columns are ignored.
func Read(r io.Reader) ([]model.Record, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("dataset.read: %w: empty input", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("dataset.read header: %w", err)
	}

	positions, err := locate(header)
	if err != nil {
		return nil, err
	}

	records := make([]model.Record, 0, 1024)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset.read: %w: %w", ErrMalformedRow, err)
		}
		line, _ := reader.FieldPos(0)
		rec, err := parseRow(row, positions)
		if err != nil {
			return nil, fmt.Errorf("dataset.read line %d: %w: %w", line, ErrMalformedRow, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// locate maps each known column to its index in header.
func locate(header []string) ([]int, error) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		byName[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	positions := make([]int, len(Columns))
	var missing []string
	for i, name := range Columns {
		idx, ok := byName[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		positions[i] = idx
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("dataset.read header: %w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return positions, nil
}

func parseRow(row []string, pos []int) (model.Record, error) {
	cell := func(col int) string { return row[pos[col]] }

	id, err := strconv.Atoi(strings.TrimSpace(cell(colID)))
	if err != nil {
		return model.Record{}, fmt.Errorf("ID %q: %w", cell(colID), err)
	}
	year, err := strconv.Atoi(strings.TrimSpace(cell(colYear)))
	if err != nil {
		return model.Record{}, fmt.Errorf("Year %q: %w", cell(colYear), err)
	}
	age, err := optionalInt(cell(colAge))
	if err != nil {
		return model.Record{}, fmt.Errorf("Age: %w", err)
	}
	height, err := optionalFloat(cell(colHeight))
	if err != nil {
		return model.Record{}, fmt.Errorf("Height: %w", err)
	}
	weight, err := optionalFloat(cell(colWeight))
	if err != nil {
		return model.Record{}, fmt.Errorf("Weight: %w", err)
	}
	medal, err := model.ParseMedal(cell(colMedal))
	if err != nil {
		return model.Record{}, err
	}

	// Strings are kept verbatim so the domain index matches source data exactly.
	return model.Record{
		ID:     id,
		Name:   cell(colName),
		Sex:    model.ParseSex(cell(colSex)),
		Age:    age,
		Height: height,
		Weight: weight,
		Team:   cell(colTeam),
		NOC:    cell(colNOC),
		Games:  cell(colGames),
		Year:   year,
		Season: cell(colSeason),
		City:   cell(colCity),
		Sport:  cell(colSport),
		Event:  cell(colEvent),
		Medal:  medal,
	}, nil
}

func isMissing(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == naValue
}

// optionalInt accepts integral floats such as "24.0", which pandas emits
// for integer columns holding missing values.
func optionalInt(s string) (model.Optional[int], error) {
	if isMissing(s) {
		return model.None[int](), nil
	}
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return model.Some(v), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return model.None[int](), fmt.Errorf("%w: %q", ErrNotInteger, s)
	}
	return model.Some(int(f)), nil
}

func optionalFloat(s string) (model.Optional[float64], error) {
	if isMissing(s) {
		return model.None[float64](), nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return model.None[float64](), fmt.Errorf("%q: %w", s, err)
	}
	// NaN and infinities read as absent, like NA.
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return model.None[float64](), nil
	}
	return model.Some(f), nil
}
