package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Shopify  ShopifyConfig  `yaml:"shopify"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Meta     MetaConfig     `yaml:"meta"`
	Cache    CacheConfig    `yaml:"cache"`
	Session  SessionConfig  `yaml:"session"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// GetHost returns the server host, with container detection
func (c ServerConfig) GetHost() string {
	// In a container, listen on all interfaces
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// DatabaseConfig holds the hosted Postgres connection settings
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// RedisConfig holds the dashboard memo cache backend settings.
// An empty address disables the memo and every dashboard request recomputes.
type RedisConfig struct {
	Addr string `yaml:"addr"`
}

// ShopifyConfig holds commerce platform API settings
type ShopifyConfig struct {
	APIVersion     string `yaml:"api_version"`
	ClientID       string `yaml:"client_id"`
	ClientSecret   string `yaml:"client_secret"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the configured timeout as a duration
func (c ShopifyConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// GeminiConfig holds the structured inference API settings
type GeminiConfig struct {
	APIKey         string  `yaml:"api_key"`
	Model          string  `yaml:"model"`
	BaseURL        string  `yaml:"base_url"`
	Temperature    float64 `yaml:"temperature"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
}

// Timeout returns the configured timeout as a duration
func (c GeminiConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// MetaConfig holds Meta Graph API credentials for campaign deployment.
// Token and AdAccountID must be both present (live mode) or both absent
// (simulation mode); PageID is required only in live mode.
type MetaConfig struct {
	AccessToken      string `yaml:"access_token"`
	AdAccountID      string `yaml:"ad_account_id"`
	PageID           string `yaml:"page_id"`
	BaseURL          string `yaml:"base_url"`
	DestinationLink  string `yaml:"destination_link"`
	DailyBudgetCents int    `yaml:"daily_budget_cents"`
	TimeoutSeconds   int    `yaml:"timeout_seconds"`
}

// Timeout returns the configured timeout as a duration
func (c MetaConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LiveMode reports whether live deployment credentials are configured.
func (c MetaConfig) LiveMode() bool {
	return c.AccessToken != "" && c.AdAccountID != ""
}

// CacheConfig controls the dashboard memo
type CacheConfig struct {
	TTLSeconds int `yaml:"ttl_seconds"`
}

// TTL returns the memo time-to-live as a duration
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// SessionConfig controls login session lifetime and cookie naming
type SessionConfig struct {
	CookieName string `yaml:"cookie_name"`
	MaxAge     int    `yaml:"max_age"`
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Shopify.APIVersion == "" {
		cfg.Shopify.APIVersion = "2024-01"
	}
	if cfg.Shopify.TimeoutSeconds == 0 {
		cfg.Shopify.TimeoutSeconds = 30
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-2.5-flash"
	}
	if cfg.Gemini.BaseURL == "" {
		cfg.Gemini.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.Gemini.Temperature == 0 {
		cfg.Gemini.Temperature = 0.2
	}
	if cfg.Gemini.TimeoutSeconds == 0 {
		cfg.Gemini.TimeoutSeconds = 90
	}
	if cfg.Meta.BaseURL == "" {
		cfg.Meta.BaseURL = "https://graph.facebook.com/v19.0"
	}
	if cfg.Meta.DestinationLink == "" {
		cfg.Meta.DestinationLink = "https://growifyx.io"
	}
	if cfg.Meta.DailyBudgetCents == 0 {
		cfg.Meta.DailyBudgetCents = 50000
	}
	if cfg.Meta.TimeoutSeconds == 0 {
		cfg.Meta.TimeoutSeconds = 60
	}
	if cfg.Cache.TTLSeconds == 0 {
		cfg.Cache.TTLSeconds = 300
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "growifyx_session"
	}
	if cfg.Session.MaxAge == 0 {
		cfg.Session.MaxAge = 86400
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so secrets can live in .env locally and in real env vars in production.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables if present
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.Gemini.Model = v
	}
	if v := os.Getenv("SHOPIFY_CLIENT_ID"); v != "" {
		cfg.Shopify.ClientID = v
	}
	if v := os.Getenv("SHOPIFY_CLIENT_SECRET"); v != "" {
		cfg.Shopify.ClientSecret = v
	}
	if v := os.Getenv("META_ACCESS_TOKEN"); v != "" {
		cfg.Meta.AccessToken = v
	}
	if v := os.Getenv("META_AD_ACCOUNT_ID"); v != "" {
		cfg.Meta.AdAccountID = v
	}
	if v := os.Getenv("META_PAGE_ID"); v != "" {
		cfg.Meta.PageID = v
	}

	return cfg, nil
}
