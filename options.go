package twiddle

import (
	"runtime"
	"time"
)

const (
	// DefaultSeed seeds the double-hashing derivation of Bloom filters and MinHash
	// signatures when no WithSeed option is given.
	DefaultSeed uint32 = 0x8e3c9a47

	// DefaultParallelism bounds the fan-out of bulk merges (0 = GOMAXPROCS).
	DefaultParallelism = 0
)

// Options is the resolved configuration shared by every structure constructor.
type Options struct {
	Logger      *Logger
	Metrics     MetricsCollector
	Seed        uint32
	Parallelism int
}

// Option configures a structure at construction time.
type Option func(*Options)

// WithLogger sets the logger used for rotation and rejection events.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = NoopLogger()
		}
		o.Logger = l
	}
}

// WithMetrics sets the metrics collector.
//
// If nil is passed, NoopMetricsCollector is used.
func WithMetrics(m MetricsCollector) Option {
	return func(o *Options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.Metrics = m
	}
}

// WithSeed sets the hash seed. Structures built with different seeds cannot be
// compared or combined.
func WithSeed(seed uint32) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}

// WithParallelism bounds the number of concurrent merges in bulk unions.
// Values <= 0 fall back to GOMAXPROCS.
func WithParallelism(n int) Option {
	return func(o *Options) {
		o.Parallelism = n
	}
}

// ApplyOptions resolves opts on top of the defaults.
func ApplyOptions(opts ...Option) Options {
	o := Options{
		Seed:        DefaultSeed,
		Parallelism: DefaultParallelism,
	}
	for _, fn := range opts {
		fn(&o)
	}
	if o.Logger == nil {
		o.Logger = NoopLogger()
	}
	if o.Metrics == nil {
		o.Metrics = NoopMetricsCollector{}
	}
	if o.Parallelism <= 0 {
		o.Parallelism = runtime.GOMAXPROCS(0)
	}
	return o
}

// ObserveMerge reports the outcome of a binary combine started at start and
// returns err unchanged.
func (o Options) ObserveMerge(kind Kind, op string, start time.Time, err error) error {
	o.Metrics.RecordMerge(kind, time.Since(start), err)
	if err != nil {
		o.Logger.WithKind(kind).LogRejected(op, err)
	}
	return err
}

// ObserveReject reports a refused mutation and returns err unchanged.
func (o Options) ObserveReject(kind Kind, op string, err error) error {
	o.Metrics.RecordReject(kind, err)
	o.Logger.WithKind(kind).LogRejected(op, err)
	return err
}
