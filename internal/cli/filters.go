package cli

import (
	service "github.com/okian/podium/internal/app"
	"github.com/spf13/cobra"
)

// filterFlags are the dataset and filter flags shared by the query commands.
type filterFlags struct {
	data    string
	country string
	years   []int
	sports  []string
	ageMin  int
	ageMax  int
}

func (f *filterFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.data, "data", defaultDataPath(), "athlete-events CSV file")
	flags.StringVar(&f.country, "country", "", "NOC code; empty means any country")
	flags.IntSliceVar(&f.years, "year", nil, "edition year (repeatable)")
	flags.StringArrayVar(&f.sports, "sport", nil, "sport, matched exactly (repeatable)")
	flags.IntVar(&f.ageMin, "age-min", 0, "inclusive lower age bound (default: youngest observed)")
	flags.IntVar(&f.ageMax, "age-max", 0, "inclusive upper age bound (default: oldest observed)")
}

// query converts the flags. Unset age bounds stay nil so the service
// applies the observed bounds.
func (f *filterFlags) query(cmd *cobra.Command) service.Query {
	q := service.Query{
		Country: f.country,
		Years:   f.years,
		Sports:  f.sports,
	}
	if cmd.Flags().Changed("age-min") {
		lo := f.ageMin
		q.AgeMin = &lo
	}
	if cmd.Flags().Changed("age-max") {
		hi := f.ageMax
		q.AgeMax = &hi
	}
	return q
}
