package extension

import (
	"log/slog"

	"github.com/xraph/grove/kv"

	"github.com/xraph/syllabus"
	"github.com/xraph/syllabus/store"
)

// ExtOption configures the Syllabus extension.
type ExtOption func(*Extension)

// WithStore sets the persistence backend.
func WithStore(s store.Store) ExtOption {
	return func(e *Extension) {
		e.store = s
	}
}

// WithGroveKV caches reporting views in the given kv store for
// Config.ReportCacheTTL.
func WithGroveKV(kvs *kv.Store) ExtOption {
	return func(e *Extension) {
		e.kv = kvs
	}
}

// WithPrefix sets the URL prefix for all catalog routes.
func WithPrefix(prefix string) ExtOption {
	return func(e *Extension) {
		e.config.BasePath = prefix
	}
}

// WithConfig sets the extension configuration directly.
func WithConfig(cfg Config) ExtOption {
	return func(e *Extension) {
		e.config = cfg
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) ExtOption {
	return func(e *Extension) {
		e.logger = logger
	}
}

// WithSyllabusOption appends a raw syllabus.Option to the extension.
func WithSyllabusOption(opt syllabus.Option) ExtOption {
	return func(e *Extension) {
		e.opts = append(e.opts, opt)
	}
}

// WithDisableRoutes disables automatic route registration.
func WithDisableRoutes() ExtOption {
	return func(e *Extension) {
		e.config.DisableRoutes = true
	}
}

// WithDisableMigrate disables automatic store migration on Init.
func WithDisableMigrate() ExtOption {
	return func(e *Extension) {
		e.config.DisableMigrate = true
	}
}
