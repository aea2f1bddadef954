package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the blog agent service.
type Config struct {
	General   GeneralConfig          `mapstructure:"general"`
	Providers ProvidersConfig        `mapstructure:"providers"`
	Pipeline  PipelineConfig         `mapstructure:"pipeline"`
	Defaults  map[string]interface{} `mapstructure:"defaults"`
	Storage   StorageConfig          `mapstructure:"storage"`
	Telemetry TelemetryConfig        `mapstructure:"telemetry"`
}

// GeneralConfig contains general application settings.
type GeneralConfig struct {
	Listen   string `mapstructure:"listen"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// ProvidersConfig contains LLM provider configurations.
type ProvidersConfig struct {
	OpenAI OpenAIConfig `mapstructure:"openai"`
}

// OpenAIConfig represents the OpenAI provider configuration.
type OpenAIConfig struct {
	APIKey          string        `mapstructure:"api_key"`
	BaseURL         string        `mapstructure:"base_url"`
	CompletionModel string        `mapstructure:"completion_model"`
	Temperature     float64       `mapstructure:"temperature"`
	MaxTokens       int           `mapstructure:"max_tokens"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// PipelineConfig contains stage execution and retry settings.
type PipelineConfig struct {
	MaxRetries     int           `mapstructure:"max_retries"`      // attempts for rate-limited calls
	RetryBaseDelay time.Duration `mapstructure:"retry_base_delay"` // doubled per attempt
	RetryJitter    time.Duration `mapstructure:"retry_jitter"`     // random add-on per backoff
	StageCooldown  time.Duration `mapstructure:"stage_cooldown"`   // pause between stages
	ToolTurnLimit  int           `mapstructure:"tool_turn_limit"`  // tool round-trips per invocation
}

// StorageConfig contains archive storage settings.
type StorageConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// PostgresConfig contains PostgreSQL connection settings.
type PostgresConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN builds a connection string from the configured fields.
func (c PostgresConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	host := c.Host
	if host == "" {
		host = "localhost"
	}
	port := c.Port
	if port == "" {
		port = "5432"
	}
	ssl := c.SSLMode
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", c.User, c.Password, host, port, c.DBName, ssl)
}

// RedisConfig contains Redis connection settings.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// TelemetryConfig contains metrics settings.
type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoadConfig reads configuration from the given file (or the default search
// paths when empty) with BLOGAGENT_* environment overrides.
func LoadConfig(path string) *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("general.listen", ":5000")
	viper.SetDefault("general.log_level", "info")
	viper.SetDefault("providers.openai.completion_model", "gpt-4o-mini")
	viper.SetDefault("providers.openai.temperature", 0.7)
	viper.SetDefault("providers.openai.max_tokens", 4096)
	viper.SetDefault("providers.openai.timeout", 120*time.Second)
	viper.SetDefault("pipeline.max_retries", 3)
	viper.SetDefault("pipeline.retry_base_delay", 15*time.Second)
	viper.SetDefault("pipeline.retry_jitter", 3*time.Second)
	viper.SetDefault("pipeline.stage_cooldown", 2*time.Second)
	viper.SetDefault("pipeline.tool_turn_limit", 4)
	viper.SetDefault("telemetry.enabled", true)

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("BLOGAGENT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// config file is optional; env + defaults are enough to run
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}
	if config.Providers.OpenAI.APIKey == "" {
		config.Providers.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	return &config
}
