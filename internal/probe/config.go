package probe

import "time"

// Defaults for the probe run.
const (
	DefaultBaseURL = "http://localhost:9080"
	DefaultRounds  = 5
	DefaultTimeout = 30 * time.Second
)

// Config holds configuration for a probe run.
type Config struct {
	BaseURL string        // Base URL of the service
	Rounds  int           // Number of randomized filter rounds
	Timeout time.Duration // HTTP request timeout
	Seed    uint64        // Seed for picking filter values; 0 picks one from the clock
}

// withDefaults fills unset fields.
func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Rounds <= 0 {
		c.Rounds = DefaultRounds
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Seed == 0 {
		c.Seed = uint64(time.Now().UnixNano()) //nolint:gosec // clock is positive
	}
	return c
}

// Report summarises a probe run.
type Report struct {
	Rounds   int
	Seed     uint64 // replays the same filter picks via Config.Seed
	Checks   int
	Failures []string
	Duration time.Duration
}

// OK reports whether every check passed.
func (r Report) OK() bool { return len(r.Failures) == 0 }
