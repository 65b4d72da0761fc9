package broadcastlog

import "log/slog"

type options struct {
	logger *slog.Logger
}

// Option configures a Log.
type Option func(*options)

// WithLogger sets the logger used for diagnostics.
// Nothing is logged on the push or get fast paths.
// A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) options {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
