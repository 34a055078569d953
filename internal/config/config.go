package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Tracing    TracingConfig    `mapstructure:"tracing"`
	CORS       CORSConfig       `mapstructure:"cors"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Assessment AssessmentConfig `mapstructure:"assessment"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

// AssessmentConfig holds the runtime knobs of the assessment engine.
type AssessmentConfig struct {
	AdvanceDelayMs int `mapstructure:"advance_delay_ms"` // pause between answer and auto-advance
	RunTTLMinutes  int `mapstructure:"run_ttl_minutes"`  // idle runs are discarded after this
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("COMPASS")
	viper.AutomaticEnv()

	// Server
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	// Assessment
	viper.BindEnv("assessment.advance_delay_ms", "ASSESSMENT_ADVANCE_DELAY_MS")
	viper.BindEnv("assessment.run_ttl_minutes", "ASSESSMENT_RUN_TTL_MINUTES")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Assessment.AdvanceDelayMs < 0 {
		return nil, fmt.Errorf("assessment.advance_delay_ms must not be negative, got %d", cfg.Assessment.AdvanceDelayMs)
	}
	if cfg.Assessment.AdvanceDelayMs == 0 {
		cfg.Assessment.AdvanceDelayMs = 400
	}
	if cfg.Assessment.RunTTLMinutes <= 0 {
		cfg.Assessment.RunTTLMinutes = 60
	}
	if cfg.RateLimit.MaxRequests <= 0 {
		cfg.RateLimit.MaxRequests = 600
	}
	if cfg.RateLimit.WindowMinutes <= 0 {
		cfg.RateLimit.WindowMinutes = 1
	}

	return &cfg, nil
}
