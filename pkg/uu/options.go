package uu

import "log/slog"

const (
	// Default maximum input line length (1MB)
	defaultMaxLineLength = 1024 * 1024
)

// config holds decoder configuration.
type config struct {
	logger        *slog.Logger
	maxLineLength int
}

// Option configures a Decoder.
type Option func(*config)

// WithLogger sets the logger used for debug output about decoder progress.
//
// Default: output is discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// MaxLineLength sets the maximum length in bytes of a single input line,
// not counting its "\n" or "\r\n" terminator.
// A longer line fails the decode with a *ReadError.
//
// This bounds the memory used for hostile inputs without newlines.
//
// Default: 1MB (1048576 bytes)
func MaxLineLength(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxLineLength = n
		}
	}
}

func newConfig(opts []Option) *config {
	cfg := &config{
		logger:        slog.New(slog.DiscardHandler),
		maxLineLength: defaultMaxLineLength,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
