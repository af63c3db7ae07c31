package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/okian/podium/internal/domain/model"
)

// Write serialises records as CSV: a header row of Columns followed by one
// row per record, no index column. Missing values are written as empty
// fields. An empty record set yields a header-only document.
func Write(w io.Writer, records []model.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("dataset.write header: %w", err)
	}
	row := make([]string, len(Columns))
	for _, r := range records {
		row[colID] = strconv.Itoa(r.ID)
		row[colName] = r.Name
		row[colSex] = r.Sex.String()
		row[colAge] = r.Age.Format()
		row[colHeight] = r.Height.Format()
		row[colWeight] = r.Weight.Format()
		row[colTeam] = r.Team
		row[colNOC] = r.NOC
		row[colGames] = r.Games
		row[colYear] = strconv.Itoa(r.Year)
		row[colSeason] = r.Season
		row[colCity] = r.City
		row[colSport] = r.Sport
		row[colEvent] = r.Event
		row[colMedal] = r.Medal.String()
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("dataset.write: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("dataset.write flush: %w", err)
	}
	return nil
}
