package geniter

import "go.uber.org/zap"

// Option configures an Iterator.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger the iterator reports producer completion,
// failure and stopping to, at debug level. The default discards
// everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
