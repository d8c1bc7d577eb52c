package worker

import (
	"github.com/okian/cadenas/pkg/logger"
)

// Option applies a configuration option to the RefreshWorker.
type Option func(*RefreshWorker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *RefreshWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(l logger.Logger) Option {
	return func(w *RefreshWorker) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithCache persists every successful delivery and allows Restore.
func WithCache(c RowCache) Option {
	return func(w *RefreshWorker) { w.cache = c }
}
