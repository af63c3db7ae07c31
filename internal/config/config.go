// Package config defines service configuration and its layered loader.
package config

import (
	"fmt"
	"strings"

	"github.com/okian/podium/pkg/logger"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the slog handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataPath locates the athlete-events CSV.
	DataPath string `koanf:"data_path"`

	// TableRowsDefault and TableRowsExpanded are the two page sizes
	// /records accepts.
	TableRowsDefault  int `koanf:"table_rows_default"`
	TableRowsExpanded int `koanf:"table_rows_expanded"`

	// HistogramBuckets is the age histogram bucket count.
	HistogramBuckets int `koanf:"histogram_buckets"`

	// DonutTopN is how many teams the medal donut keeps before "Others".
	DonutTopN int `koanf:"donut_top_n"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		DataPath:          "athlete_events.csv",
		TableRowsDefault:  20,
		TableRowsExpanded: 50,
		HistogramBuckets:  50,
		DonutTopN:         15,
	}
}

// Validate reports the first invalid setting, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.DataPath) == "":
		return fmt.Errorf("%w: data_path must not be empty", ErrInvalidConfig)
	case c.HistogramBuckets < 1:
		return fmt.Errorf("%w: histogram_buckets must be at least 1, got %d", ErrInvalidConfig, c.HistogramBuckets)
	case c.DonutTopN < 1:
		return fmt.Errorf("%w: donut_top_n must be at least 1, got %d", ErrInvalidConfig, c.DonutTopN)
	case c.TableRowsDefault < 1 || c.TableRowsExpanded < 1:
		return fmt.Errorf("%w: table row counts must be at least 1", ErrInvalidConfig)
	case c.TableRowsDefault == c.TableRowsExpanded:
		return fmt.Errorf("%w: table_rows_default and table_rows_expanded must differ", ErrInvalidConfig)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if f := strings.ToLower(c.LogFormat); f != "text" && f != "json" {
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

// TableRows lists the allowed /records page sizes, default first.
func (c *Config) TableRows() []int {
	return []int{c.TableRowsDefault, c.TableRowsExpanded}
}
