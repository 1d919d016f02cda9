package extension

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/xraph/forge"
	"github.com/xraph/grove/kv"

	"github.com/xraph/syllabus"
	"github.com/xraph/syllabus/api"
	"github.com/xraph/syllabus/store"
	"github.com/xraph/syllabus/store/redis"
)

// ErrNotInitialized is returned when the extension is used before Init.
var ErrNotInitialized = errors.New("syllabus/extension: not initialized")

// Extension mounts a Syllabus instance and its API.
type Extension struct {
	config Config
	opts   []syllabus.Option
	store  store.Store
	kv     *kv.Store
	logger *slog.Logger

	sy *syllabus.Syllabus
}

// New creates a new Syllabus extension.
func New(opts ...ExtOption) *Extension {
	e := &Extension{config: DefaultConfig()}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Init builds the Syllabus engine and migrates its store.
func (e *Extension) Init(ctx context.Context) error {
	if e.store == nil {
		return syllabus.ErrNoStore
	}

	s := e.store
	if e.kv != nil && e.config.ReportCacheTTL > 0 {
		s = redis.NewReportCache(s, e.kv, e.config.ReportCacheTTL, e.logger)
	}

	if !e.config.DisableMigrate {
		if err := s.Migrate(ctx); err != nil {
			return err
		}
	}

	opts := make([]syllabus.Option, 0, len(e.opts)+3)
	opts = append(opts, syllabus.WithStore(s), syllabus.WithLogger(e.logger))
	opts = append(opts, e.config.ToOptions()...)
	opts = append(opts, e.opts...)

	sy, err := syllabus.New(opts...)
	if err != nil {
		return fmt.Errorf("syllabus/extension: %w", err)
	}
	e.sy = sy

	e.logger.Info("syllabus initialized",
		"base_path", e.config.BasePath,
		"report_cache", e.kv != nil && e.config.ReportCacheTTL > 0,
	)
	return nil
}

// Syllabus returns the engine, or nil before Init.
func (e *Extension) Syllabus() *syllabus.Syllabus { return e.sy }

// Handler returns the catalog API mounted under the configured prefix.
// It panics if called before Init.
func (e *Extension) Handler() http.Handler {
	if e.sy == nil {
		panic(ErrNotInitialized)
	}
	h := api.NewHandler(
		e.sy.Categories(),
		e.sy.SubCategories(),
		e.sy.Courses(),
		e.sy.Reports(),
		e.logger,
		api.WithRateLimit(e.config.RateLimit),
	)
	return http.StripPrefix(e.Prefix(), h)
}

// RegisterRoutes registers the catalog API on a Forge router under the
// configured prefix. It is a no-op when routes are disabled.
func (e *Extension) RegisterRoutes(router forge.Router, log forge.Logger) error {
	if e.sy == nil {
		return ErrNotInitialized
	}
	if e.config.DisableRoutes {
		return nil
	}
	a := api.NewForgeAPI(
		e.sy.Categories(),
		e.sy.SubCategories(),
		e.sy.Courses(),
		e.sy.Reports(),
		log,
	)
	a.RegisterRoutes(router.Group(e.Prefix()))
	return nil
}

// Health checks store connectivity.
func (e *Extension) Health(ctx context.Context) error {
	if e.sy == nil {
		return ErrNotInitialized
	}
	return e.sy.Store().Ping(ctx)
}

// Stop closes the store.
func (e *Extension) Stop(_ context.Context) error {
	if e.sy == nil {
		return nil
	}
	return e.sy.Store().Close()
}

// Prefix returns the configured URL prefix without a trailing slash.
func (e *Extension) Prefix() string { return strings.TrimSuffix(e.config.BasePath, "/") }

// Config returns the extension configuration.
func (e *Extension) Config() Config { return e.config }
