package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the service.
// The mapstructure tags are used by Viper to unmarshal the data.
type Config struct {
	HTTPListenAddr string `mapstructure:"http_listen_addr"`
	LogLevel       string `mapstructure:"log_level"`
	CORSAllowAll   bool   `mapstructure:"cors_allow_all"`

	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	GeminiModel  string `mapstructure:"gemini_model"`

	// Empty means listings stay in memory.
	DatabaseDSN string `mapstructure:"database_dsn"`

	GmailCredentialsFile string `mapstructure:"gmail_credentials_file"`
	GmailTokenFile       string `mapstructure:"gmail_token_file"`
	InboxSchedule        string `mapstructure:"inbox_schedule"`
	InboxQuery           string `mapstructure:"inbox_query"`

	SeedDemoAccount bool   `mapstructure:"seed_demo_account"`
	DemoPassword    string `mapstructure:"demo_password"`
}

var keys = []string{
	"http_listen_addr", "log_level", "cors_allow_all",
	"gemini_api_key", "gemini_model", "database_dsn",
	"gmail_credentials_file", "gmail_token_file", "inbox_schedule", "inbox_query",
	"seed_demo_account", "demo_password",
}

// Load reads .env (if any), an optional config.yaml and the environment.
// Environment variables win over the file; the file wins over defaults.
func Load(v *viper.Viper) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v.SetDefault("http_listen_addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("cors_allow_all", true)
	v.SetDefault("gemini_model", "gemini-2.5-flash")
	v.SetDefault("gmail_token_file", "token.json")
	v.SetDefault("inbox_schedule", "@every 15m")
	v.SetDefault("inbox_query", "subject:(\"job alert\" OR hiring OR \"new jobs\") newer_than:7d")
	v.SetDefault("seed_demo_account", true)
	v.SetDefault("demo_password", "uplift123")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	// AutomaticEnv only consults the environment for keys viper already knows about
	// at Unmarshal time, so bind every key explicitly.
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// AIEnabled reports whether a Gemini key is configured.
func (c *Config) AIEnabled() bool {
	return c.GeminiAPIKey != ""
}

// InboxEnabled reports whether Gmail credentials are configured.
func (c *Config) InboxEnabled() bool {
	return c.GmailCredentialsFile != ""
}
