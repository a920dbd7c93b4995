package parser

import "time"

// Option represents a parser configuration option
type Option func(*config)

type config struct {
	notices   NoticeHandler
	telemetry *Telemetry
}

func newConfig(opts []Option) *config {
	c := &config{notices: ConsoleNotices{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithNoticeHandler routes non-fatal diagnostics to the given handler
// instead of the default console backend.
func WithNoticeHandler(h NoticeHandler) Option {
	return func(c *config) {
		c.notices = h
	}
}

// WithTelemetry fills the given struct with parse metrics (production-safe,
// zero overhead when unset).
func WithTelemetry(t *Telemetry) Option {
	return func(c *config) {
		c.telemetry = t
	}
}

// Telemetry holds parse metrics for one directive parse
type Telemetry struct {
	LexTime    time.Duration // Time spent lexing
	ParseTime  time.Duration // Time spent parsing
	TokenCount int           // Number of tokens (including EOF)
	ErrorCount int           // 0 or 1: the first error aborts the parse
}
