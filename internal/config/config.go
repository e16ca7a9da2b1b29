package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	AppName      string `mapstructure:"app_name"`
	AppEnv       string `mapstructure:"app_env"`
	Port         string `mapstructure:"app_port"`
	LogLevel     string `mapstructure:"app_log_level"`
	DBPath       string `mapstructure:"db_path"`
	ArtifactPath string `mapstructure:"artifact_path"`

	HistoryEnabled bool `mapstructure:"history_enabled"`

	AuthEnabled   bool   `mapstructure:"auth_enabled"`
	JWTSecret     string `mapstructure:"jwt_secret"`
	JWTTTLMinutes int    `mapstructure:"jwt_ttl_minutes"`

	RateLimitRequests  int    `mapstructure:"rate_limit_requests"`
	RateLimitWindowSec int    `mapstructure:"rate_limit_window_sec"`
	CORSAllowOrigins   string `mapstructure:"cors_allow_origins"`
}

var defaults = map[string]interface{}{
	"app_name":              "heart-risk-backend",
	"app_env":               "development",
	"app_port":              ":8080",
	"app_log_level":         "INFO",
	"db_path":               "./data/predictions.db",
	"artifact_path":         "./artifacts/heart_model.yaml",
	"history_enabled":       true,
	"auth_enabled":          false,
	"jwt_secret":            "",
	"jwt_ttl_minutes":       60,
	"rate_limit_requests":   120,
	"rate_limit_window_sec": 60,
	"cors_allow_origins":    "*",
}

// Load 加载配置
//
// Every key can be overridden by its upper-case environment variable,
// e.g. app_port by APP_PORT.
func Load() (*Config, error) {
	return LoadFrom(viper.New())
}

// LoadFrom loads the configuration through v
func LoadFrom(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Port != "" && !strings.Contains(cfg.Port, ":") {
		cfg.Port = ":" + cfg.Port
	}
	if cfg.AuthEnabled && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("auth is enabled but jwt_secret is empty")
	}
	return cfg, nil
}

// RateLimitWindow returns the rate limiter window
func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSec) * time.Second
}

// JWTTTL returns the lifetime of issued tokens
func (c *Config) JWTTTL() time.Duration {
	return time.Duration(c.JWTTTLMinutes) * time.Minute
}

// AllowOrigins splits the comma-separated CORS origin list
func (c *Config) AllowOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production"
}
