package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/xraph/syllabus/extension"
)

// config holds the daemon configuration.
type config struct {
	Server   serverConfig     `mapstructure:"server"`
	Log      logConfig        `mapstructure:"log"`
	Syllabus extension.Config `mapstructure:"syllabus"`
}

type serverConfig struct {
	Addr            string `mapstructure:"addr"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // seconds
}

type logConfig struct {
	Level string `mapstructure:"level"`
}

// loadConfig reads an optional syllabus.yaml from the working directory (or
// the file named by path) with SYLLABUS_* environment overrides, e.g.
// SYLLABUS_SERVER_ADDR or SYLLABUS_SYLLABUS_DEFAULT_LIMIT.
func loadConfig(path string) (*config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("syllabus")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.SetEnvPrefix("SYLLABUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := extension.DefaultConfig()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10)

	v.SetDefault("log.level", "info")

	v.SetDefault("syllabus.default_limit", def.DefaultLimit)
	v.SetDefault("syllabus.base_path", def.BasePath)
	v.SetDefault("syllabus.disable_routes", def.DisableRoutes)
	v.SetDefault("syllabus.disable_migrate", def.DisableMigrate)
	v.SetDefault("syllabus.rate_limit", def.RateLimit)
	v.SetDefault("syllabus.report_cache_ttl", def.ReportCacheTTL)
}
