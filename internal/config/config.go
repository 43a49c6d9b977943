// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Carrier    CarrierConfig    `mapstructure:"carrier"`
	Webhook    WebhookConfig    `mapstructure:"webhook"`
	Batch      BatchConfig      `mapstructure:"batch"`
	Reconciler ReconcilerConfig `mapstructure:"reconciler"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Middleware MiddlewareConfig `mapstructure:"middleware"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

type ServerConfig struct {
	Port           string `mapstructure:"port"`
	ReadTimeout    int    `mapstructure:"read_timeout"`
	WriteTimeout   int    `mapstructure:"write_timeout"`
	RequestTimeout int    `mapstructure:"request_timeout"`
}

type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	DBName         string `mapstructure:"dbname"`
	SSLMode        string `mapstructure:"sslmode"`
	AutoMigrate    bool   `mapstructure:"auto_migrate"`
	MigrationsPath string `mapstructure:"migrations_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CarrierConfig describes the SMS carrier REST account.
type CarrierConfig struct {
	BaseURL             string               `mapstructure:"base_url"`
	AccountSID          string               `mapstructure:"account_sid"`
	AuthToken           string               `mapstructure:"auth_token"`
	MessagingServiceSID string               `mapstructure:"messaging_service_sid"`
	FromNumber          string               `mapstructure:"from_number"`
	StatusCallbackURL   string               `mapstructure:"status_callback_url"`
	Timeout             int                  `mapstructure:"timeout"`
	CircuitBreaker      CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

type CircuitBreakerConfig struct {
	MaxRequests      uint32  `mapstructure:"max_requests"`
	Interval         int     `mapstructure:"interval"`
	Timeout          int     `mapstructure:"timeout"`
	FailureRatio     float64 `mapstructure:"failure_ratio"`
	ConsecutiveFails uint32  `mapstructure:"consecutive_fails"`
}

// WebhookConfig controls inbound carrier callbacks.
type WebhookConfig struct {
	ValidateSignature bool   `mapstructure:"validate_signature"`
	PublicURL         string `mapstructure:"public_url"`
	DedupeTTLHours    int    `mapstructure:"dedupe_ttl_hours"`
}

type BatchConfig struct {
	MaxRecipients  int `mapstructure:"max_recipients"`
	SendIntervalMS int `mapstructure:"send_interval_ms"`
}

type ReconcilerConfig struct {
	IntervalSeconds int  `mapstructure:"interval_seconds"`
	BatchSize       int  `mapstructure:"batch_size"`
	MaxAgeHours     int  `mapstructure:"max_age_hours"`
	AutoStart       bool `mapstructure:"auto_start"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

type MiddlewareConfig struct {
	RateLimit      int      `mapstructure:"rate_limit"`
	RateLimitBurst int      `mapstructure:"rate_limit_burst"`
	EnableCORS     bool     `mapstructure:"enable_cors"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 180)
	v.SetDefault("server.request_timeout", 30)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.auto_migrate", false)
	v.SetDefault("database.migrations_path", "./migrations")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("carrier.base_url", "https://api.twilio.com")
	v.SetDefault("carrier.account_sid", "")
	v.SetDefault("carrier.auth_token", "")
	v.SetDefault("carrier.messaging_service_sid", "")
	v.SetDefault("carrier.from_number", "")
	v.SetDefault("carrier.status_callback_url", "")
	v.SetDefault("carrier.timeout", 15)
	v.SetDefault("carrier.circuit_breaker.max_requests", 3)
	v.SetDefault("carrier.circuit_breaker.interval", 60)
	v.SetDefault("carrier.circuit_breaker.timeout", 60)
	v.SetDefault("carrier.circuit_breaker.failure_ratio", 0.6)
	v.SetDefault("carrier.circuit_breaker.consecutive_fails", 5)
	v.SetDefault("webhook.validate_signature", false)
	v.SetDefault("webhook.public_url", "")
	v.SetDefault("webhook.dedupe_ttl_hours", 24)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("batch.max_recipients", 1000)
	v.SetDefault("batch.send_interval_ms", 100)
	v.SetDefault("reconciler.interval_seconds", 120)
	v.SetDefault("reconciler.batch_size", 50)
	v.SetDefault("reconciler.max_age_hours", 72)
	v.SetDefault("reconciler.auto_start", true)
	v.SetDefault("middleware.rate_limit", 100)
	v.SetDefault("middleware.rate_limit_burst", 1000)
	v.SetDefault("middleware.enable_cors", true)
	v.SetDefault("middleware.allowed_origins", []string{"*"})
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size_mb", 100)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age_days", 28)
}

// LoadConfig reads the YAML file at configPath. Environment variables override
// file values using upper-case keys with dots replaced by underscores
// (CARRIER_AUTH_TOKEN overrides carrier.auth_token). Only keys that carry a
// default are bound to the environment.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if c.Carrier.AccountSID == "" || c.Carrier.AuthToken == "" {
		return fmt.Errorf("carrier.account_sid and carrier.auth_token are required")
	}
	if c.Carrier.MessagingServiceSID == "" && c.Carrier.FromNumber == "" {
		return fmt.Errorf("either carrier.messaging_service_sid or carrier.from_number is required")
	}
	if c.Batch.MaxRecipients < 1 {
		return fmt.Errorf("batch.max_recipients must be positive")
	}
	if c.Webhook.ValidateSignature && c.Webhook.PublicURL == "" {
		return fmt.Errorf("webhook.public_url is required when signature validation is enabled")
	}
	return nil
}

// GetDSN returns PostgreSQL connection string.
func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// GetURL returns the postgres:// form used by golang-migrate.
func (d *DatabaseConfig) GetURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.DBName,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	return u.String()
}

func (b *BatchConfig) SendInterval() time.Duration {
	return time.Duration(b.SendIntervalMS) * time.Millisecond
}

func (w *WebhookConfig) DedupeTTL() time.Duration {
	return time.Duration(w.DedupeTTLHours) * time.Hour
}

func (r *ReconcilerConfig) Interval() time.Duration {
	return time.Duration(r.IntervalSeconds) * time.Second
}

func (r *ReconcilerConfig) MaxAge() time.Duration {
	return time.Duration(r.MaxAgeHours) * time.Hour
}
