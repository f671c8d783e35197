package sessionkit

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/tracknest/sessionkit/pushid"
)

// Defaults applied by New when no option overrides them.
const (
	// DefaultSessionTimeout is the inactivity window after which a session
	// expires.
	DefaultSessionTimeout = 30 * time.Minute

	// DefaultClientTTL is how long the client identifier persists.
	DefaultClientTTL = 2 * 365 * 24 * time.Hour

	// DefaultRandomnessLength is the identifier suffix length.
	DefaultRandomnessLength = pushid.MinRandomLength
)

// Option configures a Tracker.
type Option func(*trackerConfig)

// trackerConfig holds configuration for a Tracker instance.
type trackerConfig struct {
	sessionTimeout   time.Duration
	clientTTL        time.Duration
	randomnessLength int
	useStubs         bool
	logger           *slog.Logger
	tracer           trace.Tracer
	generator        *pushid.Generator
	now              func() time.Time
}

// WithSessionTimeout sets the inactivity window after which the session
// identifier regenerates. Default is 30 minutes.
func WithSessionTimeout(d time.Duration) Option {
	return func(c *trackerConfig) {
		c.sessionTimeout = d
	}
}

// WithClientTTL sets the persistence horizon for the client identifier.
// Default is two years.
func WithClientTTL(d time.Duration) Option {
	return func(c *trackerConfig) {
		c.clientTTL = d
	}
}

// WithRandomnessLength sets the identifier suffix length, clamped to a
// minimum of 12 characters. Default is 12.
func WithRandomnessLength(n int) Option {
	return func(c *trackerConfig) {
		c.randomnessLength = n
	}
}

// WithStubs controls identifier tagging. When enabled, minted identifiers
// carry their role ("cID", "sID", "eID") in tagged format. When disabled
// (the default) identifiers use the legacy untagged format, and a client or
// session identifier minted in the same call as the event identifier shares
// its string value.
func WithStubs(enabled bool) Option {
	return func(c *trackerConfig) {
		c.useStubs = enabled
	}
}

// WithLogger sets a custom logger. If not provided, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *trackerConfig) {
		c.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer for distributed tracing. If not
// provided, a no-op tracer is used.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *trackerConfig) {
		c.tracer = tracer
	}
}

// WithGenerator sets the identifier generator. If not provided, the tracker
// creates its own, isolating its random sequence from other trackers.
func WithGenerator(gen *pushid.Generator) Option {
	return func(c *trackerConfig) {
		c.generator = gen
	}
}

// WithClock replaces the tracker's time source. Useful in tests.
func WithClock(now func() time.Time) Option {
	return func(c *trackerConfig) {
		c.now = now
	}
}
