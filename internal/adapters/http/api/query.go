package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	service "github.com/okian/podium/internal/app"
)

// parseQuery reads the shared filter parameters: country, repeatable
// sport, year (repeatable or comma separated) and the age_min/age_max
// bounds. Country and sport values are matched exactly as sent.
func parseQuery(values url.Values) (service.Query, error) {
	q := service.Query{
		Country: values.Get("country"),
		Sports:  nonEmpty(values["sport"]),
	}

	for _, raw := range splitValues(values["year"]) {
		y, err := strconv.Atoi(raw)
		if err != nil {
			return service.Query{}, fmt.Errorf("year %q is not a number", raw)
		}
		q.Years = append(q.Years, y)
	}

	var err error
	if q.AgeMin, err = optionalInt(values, "age_min"); err != nil {
		return service.Query{}, err
	}
	if q.AgeMax, err = optionalInt(values, "age_max"); err != nil {
		return service.Query{}, err
	}
	return q, nil
}

// nonEmpty drops empty parameters and keeps the rest untouched.
func nonEmpty(raw []string) []string {
	var out []string
	for _, v := range raw {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// splitValues flattens repeated and comma separated values, dropping blanks.
func splitValues(raw []string) []string {
	var out []string
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func optionalInt(values url.Values, key string) (*int, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil //nolint:nilnil // absent parameter
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s %q is not a number", key, raw)
	}
	return &v, nil
}
