package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	SMTP      SMTPConfig
	Log       LogConfig
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port           int `mapstructure:"port" envconfig:"SERVER_PORT"`
	TimeoutSeconds int `mapstructure:"timeoutSeconds" envconfig:"SERVER_TIMEOUT_SECONDS"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host" envconfig:"DB_HOST"`
	Port     int    `mapstructure:"port" envconfig:"DB_PORT"`
	User     string `mapstructure:"user" envconfig:"DB_USER"`
	Password string `mapstructure:"password" envconfig:"DB_PASSWORD"`
	Name     string `mapstructure:"name" envconfig:"DB_NAME"`
	SSLMode  string `mapstructure:"sslmode" envconfig:"DB_SSLMODE"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret" envconfig:"JWT_SECRET"`
	ExpiryHours int    `mapstructure:"expiry_hours" envconfig:"JWT_EXPIRY_HOURS"`
}

type RedisConfig struct {
	URL     string `mapstructure:"url" envconfig:"REDIS_URL"`
	Enabled bool   `mapstructure:"enabled" envconfig:"REDIS_ENABLED"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host" envconfig:"SMTP_HOST"`
	Port     int    `mapstructure:"port" envconfig:"SMTP_PORT"`
	Username string `mapstructure:"username" envconfig:"SMTP_USERNAME"`
	Password string `mapstructure:"password" envconfig:"SMTP_PASSWORD"`
	From     string `mapstructure:"from" envconfig:"SMTP_FROM"`
	Enabled  bool   `mapstructure:"enabled" envconfig:"SMTP_ENABLED"`
}

type LogConfig struct {
	Level string `mapstructure:"level" envconfig:"LOG_LEVEL"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second" envconfig:"RATE_LIMIT_RPS"`
	Burst             int     `mapstructure:"burst" envconfig:"RATE_LIMIT_BURST"`
}

// LoadConfig reads config.yaml and then applies CLINIC_* environment
// overrides, so deployments can patch single values without shipping a
// file.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("clinic", &config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	return &config, nil
}
