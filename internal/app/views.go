package service

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/podium/internal/domain/aggregate"
	"github.com/okian/podium/internal/domain/types"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

// View names one dashboard chart.
type View string

// Named views.
const (
	ViewMedalMap       View = "medal_map"
	ViewParticipation  View = "participation"
	ViewMedalBreakdown View = "medal_breakdown"
	ViewAgeHistogram   View = "age_histogram"
	ViewMedalAge       View = "medal_age"
	ViewMedalYear      View = "medal_year"
	ViewHeightBySport  View = "height_by_sport"
)

// Views lists every named view in dashboard order.
var Views = []View{ //nolint:gochecknoglobals // read-only catalogue
	ViewMedalMap,
	ViewParticipation,
	ViewMedalBreakdown,
	ViewAgeHistogram,
	ViewMedalAge,
	ViewMedalYear,
	ViewHeightBySport,
}

// ParseView validates a view name.
func ParseView(name string) (View, error) {
	for _, v := range Views {
		if string(v) == name {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownView, name)
}

// MedalBreakdown backs the medal bar chart and the team donut.
type MedalBreakdown struct {
	Medals []types.Count `json:"medals"`
	Donut  []types.Count `json:"donut"`
}

// ViewResult is one computed view. Data holds []types.Count,
// MedalBreakdown, []types.Bucket or []types.BoxStats depending on the view.
type ViewResult struct {
	View    View `json:"view"`
	Showing int  `json:"showing"`
	Data    any  `json:"data"`
}

// View recomputes the named view over the records q selects.
func (s *Service) View(ctx context.Context, name string, q Query) (ViewResult, error) {
	view, err := ParseView(name)
	if err != nil {
		return ViewResult{}, fmt.Errorf("service.view: %w", err)
	}

	start := time.Now()
	sel, err := s.evaluate(ctx, q)
	if err != nil {
		return ViewResult{}, fmt.Errorf("service.view %s: %w", view, err)
	}

	log := s.logger.With(logger.String("view", string(view)))
	data, err := s.compute(view, sel)
	if err != nil {
		log.Error(ctx, "view computation failed", logger.Error(err))
		return ViewResult{}, fmt.Errorf("service.view %s: %w", view, err)
	}
	metrics.RecordView(string(view), msSince(start))
	log.Debug(ctx, "view computed", logger.Int("showing", len(sel.records)), logger.Duration("took", time.Since(start)))

	return ViewResult{View: view, Showing: len(sel.records), Data: data}, nil
}

func (s *Service) compute(view View, sel selection) (any, error) {
	records := sel.records
	switch view {
	case ViewMedalMap:
		return aggregate.By(records, aggregate.ByCountry)
	case ViewParticipation:
		return aggregate.By(records, aggregate.ByYear)
	case ViewMedalAge:
		return aggregate.By(records, aggregate.ByMedalAge)
	case ViewMedalYear:
		return aggregate.By(records, aggregate.ByMedalYear)
	case ViewAgeHistogram:
		return aggregate.Histogram(aggregate.Ages(records), s.histogramBuckets)
	case ViewHeightBySport:
		return aggregate.HeightBySport(records), nil
	case ViewMedalBreakdown:
		medals, err := aggregate.By(records, aggregate.ByMedal)
		if err != nil {
			return nil, err
		}
		countries, err := aggregate.By(records, aggregate.ByCountry)
		if err != nil {
			return nil, err
		}
		donut := aggregate.TopNPlusOthers(aggregate.SortByCountDesc(countries), s.donutTopN)
		return MedalBreakdown{Medals: medals, Donut: donut}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, view)
	}
}
