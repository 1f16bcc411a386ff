package rcforest

import (
	"log/slog"

	"github.com/rcforest/go-rcforest/internal/loopdrv"
	"github.com/rcforest/go-rcforest/internal/oracle"
)

// Option configures a forest at construction time. The zero-value
// configuration uses a Sequential driver, a DummyChecker (no cycle
// detection), rclog.Default(), no metrics, a random seed, and debug
// contraction tracing disabled.
type Option func(*config)

type config struct {
	driver     loopdrv.Driver
	checker    oracle.Checker
	logger     *slog.Logger
	metrics    *Metrics
	seed       uint64
	haveSeed   bool
	debugTrace bool
}

// WithLoopingDriver selects the execution model scheduled_apply uses to
// walk each contraction level. Pass loopdrv.ForkJoin{} for a
// parallel engine; the default is loopdrv.Sequential{}.
func WithLoopingDriver(d loopdrv.Driver) Option {
	return func(c *config) { c.driver = d }
}

// WithConnectivity installs a loop-prevention oracle consulted before
// every ScheduledAttach. Pass an *oracle.LinkCutTree to reject attaches
// that would create a cycle; the default, oracle.DummyChecker, performs
// no check at all and trusts the caller.
func WithConnectivity(c oracle.Checker) Option {
	return func(cfg *config) { cfg.checker = c }
}

// WithLogger overrides the structured logger used for batch-apply
// summaries. Only debug-level records are ever emitted; query methods
// never log.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithMetrics attaches a Prometheus collector set built with
// NewMetrics. The default is nil, under which every metrics call is a
// no-op.
func WithMetrics(m *Metrics) Option {
	return func(c *config) { c.metrics = m }
}

// WithSeed pins the deterministic hash seed used to derive contraction
// coin flips and treap priorities, making contraction outcomes (and
// therefore level counts and debug traces) reproducible across runs.
// The default is a seed drawn from crypto/rand once per process and
// shared by every forest constructed without WithSeed.
func WithSeed(seed uint64) Option {
	return func(c *config) { c.seed = seed; c.haveSeed = true }
}

// WithDebugContraction records a per-level verdict trace for every
// vertex during ScheduledApply, retrievable with DebugTrace. This is
// pure overhead kept for test and diagnostic use; production callers
// should leave it off.
func WithDebugContraction() Option {
	return func(c *config) { c.debugTrace = true }
}
