package lexer

import (
	"log/slog"
	"time"

	"github.com/aledsdavies/toto/core/invariant"
)

// Option configures a Tokenizer
type Option func(*config)

// TelemetryMode controls telemetry collection
type TelemetryMode int

const (
	TelemetryOff    TelemetryMode = iota // Zero overhead (default)
	TelemetryBasic                       // Token counts only
	TelemetryTiming                      // Token counts + timing per kind
)

// Observer receives every token and diagnostic as it is produced.
// Implementations must be cheap; they run inside Next.
type Observer interface {
	ObserveToken(kind TokenKind, elapsed time.Duration)
	ObserveDiagnostic(kind ErrorKind)
}

type config struct {
	logger    *slog.Logger
	telemetry TelemetryMode
	observer  Observer
}

// WithLogger traces classification and emitted tokens at debug level
func WithLogger(logger *slog.Logger) Option {
	invariant.NotNil(logger, "logger")
	return func(c *config) {
		c.logger = logger
	}
}

// WithTelemetryBasic enables basic telemetry (token counts only)
func WithTelemetryBasic() Option {
	return func(c *config) {
		c.telemetry = TelemetryBasic
	}
}

// WithTelemetryTiming enables timing telemetry (counts + timing per kind)
func WithTelemetryTiming() Option {
	return func(c *config) {
		c.telemetry = TelemetryTiming
	}
}

// WithObserver reports tokens and diagnostics to o
func WithObserver(o Observer) Option {
	invariant.NotNil(o, "observer")
	return func(c *config) {
		c.observer = o
	}
}
