package locator

import "log/slog"

type options struct {
	searchRadius float64
	capacity     int
	logger       *slog.Logger
}

type Option interface {
	apply(*options)
}

type searchRadius float64

func (r searchRadius) apply(o *options) {
	o.searchRadius = float64(r)
}

// Default: 0.01
func WithSearchRadius(radius float64) Option {
	return searchRadius(radius)
}

type capacity int

func (c capacity) apply(o *options) {
	o.capacity = int(c)
}

// WithCapacity sets how many points a tree node holds before it splits.
// Default: 64
func WithCapacity(n int) Option {
	return capacity(n)
}

type loggerOption struct {
	logger *slog.Logger
}

func (l loggerOption) apply(o *options) {
	o.logger = l.logger
}

func WithLogger(logger *slog.Logger) Option {
	return loggerOption{logger: logger}
}

func loadOptions(opts ...Option) options {
	options := options{
		searchRadius: defaultSearchRadius,
		capacity:     defaultCapacity,
		logger:       slog.Default(),
	}
	for _, o := range opts {
		o.apply(&options)
	}
	return options
}
