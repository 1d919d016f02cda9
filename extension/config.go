package extension

import (
	"time"

	"github.com/xraph/syllabus"
)

// Config holds configuration for the Syllabus extension.
// Fields can be set programmatically via ExtOption functions or loaded from
// YAML/env configuration (under a "syllabus" key).
type Config struct {
	// Config embeds the core syllabus configuration.
	syllabus.Config `json:",inline" yaml:",inline" mapstructure:",squash"`

	// BasePath is the URL prefix for all catalog routes (default: "/api").
	BasePath string `json:"base_path" yaml:"base_path" mapstructure:"base_path"`

	// DisableRoutes disables automatic route registration with the Forge router.
	DisableRoutes bool `json:"disable_routes" yaml:"disable_routes" mapstructure:"disable_routes"`

	// DisableMigrate disables automatic store migration on Init.
	DisableMigrate bool `json:"disable_migrate" yaml:"disable_migrate" mapstructure:"disable_migrate"`

	// RateLimit caps requests per second per client address on the
	// http.Handler. Zero disables throttling.
	RateLimit int `json:"rate_limit" yaml:"rate_limit" mapstructure:"rate_limit"`

	// ReportCacheTTL is how long reporting views stay cached in Redis when a
	// kv store is configured. Zero disables the cache.
	ReportCacheTTL time.Duration `json:"report_cache_ttl" yaml:"report_cache_ttl" mapstructure:"report_cache_ttl"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Config:         syllabus.DefaultConfig(),
		BasePath:       "/api",
		ReportCacheTTL: time.Minute,
	}
}

// ToOptions converts the embedded Config into syllabus.Option values.
func (c Config) ToOptions() []syllabus.Option {
	var opts []syllabus.Option

	if c.DefaultLimit > 0 {
		opts = append(opts, syllabus.WithDefaultLimit(c.DefaultLimit))
	}

	return opts
}
