// Package probe runs black-box consistency checks against a running
// dashboard server.
package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"time"

	"github.com/okian/podium/internal/domain/types"
	"github.com/okian/podium/pkg/logger"
)

// unknownCountry is a NOC code that no dataset carries.
const unknownCountry = "ZZZ"

type domainsPayload struct {
	Countries []string `json:"countries"`
	Years     []int    `json:"years"`
	Sports    []string `json:"sports"`
	AgeMin    int      `json:"age_min"`
	AgeMax    int      `json:"age_max"`
	HasAge    bool     `json:"has_age"`
}

type pagePayload struct {
	Total   int               `json:"total"`
	Rows    int               `json:"rows"`
	Records []json.RawMessage `json:"records"`
}

type recordPayload struct {
	NOC   string `json:"noc"`
	Year  int    `json:"year"`
	Sport string `json:"sport"`
	Age   *int   `json:"age"`
}

type countsView struct {
	Showing int           `json:"showing"`
	Data    []types.Count `json:"data"`
}

type breakdownView struct {
	Showing int `json:"showing"`
	Data    struct {
		Medals []types.Count `json:"medals"`
	} `json:"data"`
}

// runner carries the state of one probe run.
type runner struct {
	client *client
	log    logger.Logger
	rng    *rand.Rand
	report Report
}

// Run executes the probe and returns its report. A run whose checks fail
// returns the report together with ErrCheckFailed.
func Run(ctx context.Context, cfg Config, log logger.Logger) (Report, error) {
	cfg = cfg.withDefaults()
	if log == nil {
		log = logger.Nop()
	}
	log = log.Named("probe")
	start := time.Now()
	r := &runner{
		client: newClient(cfg.BaseURL, cfg.Timeout, log),
		log:    log,
		rng:    rand.New(rand.NewPCG(cfg.Seed, cfg.Seed)), //nolint:gosec // value picking only
		report: Report{Rounds: cfg.Rounds, Seed: cfg.Seed},
	}

	log.Info(ctx, "starting probe",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("rounds", cfg.Rounds),
		logger.String("seed", strconv.FormatUint(cfg.Seed, 10)),
		logger.Duration("timeout", cfg.Timeout),
	)

	if err := r.checkHealth(ctx); err != nil {
		return r.finish(start), err
	}

	var dom domainsPayload
	if err := r.client.getJSON(ctx, "/domains", nil, &dom); err != nil {
		return r.finish(start), err
	}

	if err := r.checkIdentity(ctx, dom); err != nil {
		return r.finish(start), err
	}
	if err := r.checkUnknown(ctx, dom); err != nil {
		return r.finish(start), err
	}
	for round := range cfg.Rounds {
		q := r.pick(dom)
		log.Debug(ctx, "probe round", logger.Int("round", round), logger.String("query", q.Encode()))
		if err := r.checkSubset(ctx, q); err != nil {
			return r.finish(start), err
		}
		if err := r.checkIdempotent(ctx, q); err != nil {
			return r.finish(start), err
		}
		if err := r.checkMedalSum(ctx, q); err != nil {
			return r.finish(start), err
		}
	}

	report := r.finish(start)
	log.Info(ctx, "probe finished",
		logger.Int("checks", report.Checks),
		logger.Int("failures", len(report.Failures)),
		logger.Duration("took", report.Duration),
	)
	if !report.OK() {
		return report, fmt.Errorf("%w: %d of %d checks", ErrCheckFailed, len(report.Failures), report.Checks)
	}
	return report, nil
}

func (r *runner) finish(start time.Time) Report {
	r.report.Duration = time.Since(start)
	return r.report
}

// expect counts one check and records msg when ok is false.
func (r *runner) expect(ok bool, format string, args ...any) {
	r.report.Checks++
	if !ok {
		r.report.Failures = append(r.report.Failures, fmt.Sprintf(format, args...))
	}
}

func (r *runner) checkHealth(ctx context.Context) error {
	resp, err := r.client.get(ctx, "/healthz", nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}

// pick draws one year and one sport from the index. Empty dimensions are
// left unrestricted.
func (r *runner) pick(dom domainsPayload) url.Values {
	q := url.Values{}
	if len(dom.Years) > 0 {
		q.Set("year", strconv.Itoa(dom.Years[r.rng.IntN(len(dom.Years))]))
	}
	if len(dom.Sports) > 0 {
		q.Set("sport", dom.Sports[r.rng.IntN(len(dom.Sports))])
	}
	return q
}

func (r *runner) page(ctx context.Context, q url.Values) (pagePayload, []recordPayload, error) {
	var p pagePayload
	if err := r.client.getJSON(ctx, "/records", q, &p); err != nil {
		return pagePayload{}, nil, err
	}
	records := make([]recordPayload, len(p.Records))
	for i, raw := range p.Records {
		if err := json.Unmarshal(raw, &records[i]); err != nil {
			return pagePayload{}, nil, fmt.Errorf("probe.records: decode record %d: %w", i, err)
		}
	}
	return p, records, nil
}

// checkIdentity compares the implicit default filter with the same filter
// spelled out, and checks that no selected record lacks an age.
func (r *runner) checkIdentity(ctx context.Context, dom domainsPayload) error {
	implicit, records, err := r.page(ctx, nil)
	if err != nil {
		return err
	}
	for _, rec := range records {
		r.expect(rec.Age != nil, "default filter selected a record without age")
	}
	if !dom.HasAge {
		r.expect(implicit.Total == 0, "default filter selected %d records without any ages", implicit.Total)
		return nil
	}

	explicit, _, err := r.page(ctx, url.Values{
		"age_min": {strconv.Itoa(dom.AgeMin)},
		"age_max": {strconv.Itoa(dom.AgeMax)},
	})
	if err != nil {
		return err
	}
	r.expect(implicit.Total == explicit.Total,
		"identity: default total %d, explicit bounds total %d", implicit.Total, explicit.Total)
	return nil
}

// checkUnknown verifies that values absent from the index select nothing.
func (r *runner) checkUnknown(ctx context.Context, dom domainsPayload) error {
	country := unknownCountry
	for slices.Contains(dom.Countries, country) {
		country += "Z"
	}
	q := url.Values{"country": {country}}
	p, _, err := r.page(ctx, q)
	if err != nil {
		return err
	}
	r.expect(p.Total == 0 && len(p.Records) == 0, "unknown country %q selected %d records", country, p.Total)

	var medals countsView
	if err := r.client.getJSON(ctx, "/views/medal_map", q, &medals); err != nil {
		return err
	}
	r.expect(len(medals.Data) == 0, "unknown country %q produced %d medal rows", country, len(medals.Data))

	year := -1
	if len(dom.Years) > 0 {
		year = dom.Years[0] - 1
	}
	p, _, err = r.page(ctx, url.Values{"year": {strconv.Itoa(year)}})
	if err != nil {
		return err
	}
	r.expect(p.Total == 0, "unknown year %d selected %d records", year, p.Total)
	return nil
}

// checkSubset verifies that narrowing the filter never widens the result
// and that every returned record satisfies the narrowed filter.
func (r *runner) checkSubset(ctx context.Context, q url.Values) error {
	all, _, err := r.page(ctx, nil)
	if err != nil {
		return err
	}

	byYear := url.Values{}
	if y := q.Get("year"); y != "" {
		byYear.Set("year", y)
	}
	yearPage, yearRecords, err := r.page(ctx, byYear)
	if err != nil {
		return err
	}
	r.expect(yearPage.Total <= all.Total, "subset: year total %d exceeds default %d", yearPage.Total, all.Total)
	for _, rec := range yearRecords {
		r.expect(byYear.Get("year") == "" || strconv.Itoa(rec.Year) == byYear.Get("year"),
			"subset: year %s returned a %d record", byYear.Get("year"), rec.Year)
	}

	bothPage, bothRecords, err := r.page(ctx, q)
	if err != nil {
		return err
	}
	r.expect(bothPage.Total <= yearPage.Total, "subset: %s total %d exceeds year total %d", q.Encode(), bothPage.Total, yearPage.Total)
	for _, rec := range bothRecords {
		r.expect(q.Get("sport") == "" || rec.Sport == q.Get("sport"),
			"subset: sport %s returned a %s record", q.Get("sport"), rec.Sport)
	}
	return nil
}

// checkIdempotent verifies that the same query answers the same page.
func (r *runner) checkIdempotent(ctx context.Context, q url.Values) error {
	first, _, err := r.page(ctx, q)
	if err != nil {
		return err
	}
	second, _, err := r.page(ctx, q)
	if err != nil {
		return err
	}
	same := first.Total == second.Total && len(first.Records) == len(second.Records)
	for i := 0; same && i < len(first.Records); i++ {
		same = bytes.Equal(first.Records[i], second.Records[i])
	}
	r.expect(same, "idempotence: %s answered different pages", q.Encode())
	return nil
}

// checkMedalSum verifies that the medal map counts add up to the number of
// medal records in the selection.
func (r *runner) checkMedalSum(ctx context.Context, q url.Values) error {
	var medalMap countsView
	if err := r.client.getJSON(ctx, "/views/medal_map", q, &medalMap); err != nil {
		return err
	}
	var breakdown breakdownView
	if err := r.client.getJSON(ctx, "/views/medal_breakdown", q, &breakdown); err != nil {
		return err
	}
	mapSum, medalSum := sum(medalMap.Data), sum(breakdown.Data.Medals)
	r.expect(mapSum == medalSum, "medal sum: %s medal_map %d, medals %d", q.Encode(), mapSum, medalSum)
	r.expect(medalSum <= medalMap.Showing, "medal sum: %d medals in %d records", medalSum, medalMap.Showing)
	return nil
}

func sum(counts []types.Count) int {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	return total
}
