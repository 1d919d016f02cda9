package syllabus

import "github.com/xraph/syllabus/query"

// Config holds the configuration for a Syllabus instance.
type Config struct {
	// DefaultLimit is the page size applied when a list request omits limit.
	DefaultLimit int `json:"default_limit" yaml:"default_limit" mapstructure:"default_limit"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DefaultLimit: query.DefaultLimit,
	}
}
