package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the overall configuration for the application.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Provider ProviderConfig `yaml:"provider"`
	Card     CardDefaults   `yaml:"card"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds the server-specific configuration.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// ProviderConfig holds the configuration for the blockchain data provider client.
// The API key can always be overridden by the COVALENT_KEY environment variable.
type ProviderConfig struct {
	BaseURL              string  `yaml:"baseURL"`
	APIKey               string  `yaml:"apiKey"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	RateLimitPerSecond   float64 `yaml:"rateLimitPerSecond"`
	MaxConcurrentChains  int     `yaml:"maxConcurrentChains"`
	TransactionsPageSize int     `yaml:"transactionsPageSize"`
}

// CardDefaults holds the default values applied to missing query parameters.
type CardDefaults struct {
	Address    string `yaml:"address"`
	Chain      string `yaml:"chain"`
	Currency   string `yaml:"currency"`
	FontFamily string `yaml:"fontFamily"`
	FillColor  string `yaml:"fillColor"`
	Style      string `yaml:"style"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
}

// LoadConfig loads configuration from a YAML file and applies defaults for
// any unset field.
func LoadConfig(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	cfg.ApplyDefaults()

	if key := os.Getenv("COVALENT_KEY"); key != "" {
		cfg.Provider.APIKey = key
	}
	if cfg.Provider.APIKey == "" {
		logrus.Warn("Provider API key is empty; set COVALENT_KEY or provider.apiKey in the config file.")
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

// ApplyDefaults fills every zero-valued field with its default.
func (cfg *Config) ApplyDefaults() {
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}

	if cfg.Provider.BaseURL == "" {
		cfg.Provider.BaseURL = "https://api.covalenthq.com"
	}
	if cfg.Provider.RequestTimeoutMillis == 0 {
		cfg.Provider.RequestTimeoutMillis = 10000
	}
	if cfg.Provider.RateLimitPerSecond == 0 {
		cfg.Provider.RateLimitPerSecond = 10
	}
	if cfg.Provider.MaxConcurrentChains == 0 {
		cfg.Provider.MaxConcurrentChains = 5
	}
	if cfg.Provider.TransactionsPageSize == 0 {
		cfg.Provider.TransactionsPageSize = 1000
	}

	if cfg.Card.Address == "" {
		cfg.Card.Address = "demo.eth"
	}
	if cfg.Card.Chain == "" {
		cfg.Card.Chain = "all-chains"
	}
	if cfg.Card.Currency == "" {
		cfg.Card.Currency = "USD"
	}
	if cfg.Card.FontFamily == "" {
		cfg.Card.FontFamily = "monospace"
	}
	if cfg.Card.FillColor == "" {
		cfg.Card.FillColor = "white"
	}
	if cfg.Card.Style == "" {
		cfg.Card.Style = "standard"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
