package orthtree

import "log/slog"

type options struct {
	logger *slog.Logger
}

type Option interface {
	apply(*options)
}

type loggerOption struct {
	logger *slog.Logger
}

func (l loggerOption) apply(o *options) {
	o.logger = l.logger
}

// Default: slog.Default()
func WithLogger(logger *slog.Logger) Option {
	return loggerOption{logger: logger}
}

func loadOptions(opts ...Option) options {
	options := options{
		logger: slog.Default(),
	}
	for _, o := range opts {
		o.apply(&options)
	}
	return options
}
