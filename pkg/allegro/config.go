package allegro

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config mirrors the YAML configuration of an unattended integration.
// Sensitive values can be injected at runtime via ${VAR} / $VAR
// environment references:
//
//	username: shop-account
//	password: ${ALLEGRO_PASSWORD}
//	apiKey: ${ALLEGRO_WEBAPI_KEY}
//	countryCode: 1
//	retryDelay: 5s
//	debug: false
type Config struct {
	Username    string        `yaml:"username"`
	Password    string        `yaml:"password"`
	APIKey      string        `yaml:"apiKey"`
	Endpoint    string        `yaml:"endpoint"`
	CountryCode int           `yaml:"countryCode"`
	RetryDelay  time.Duration `yaml:"retryDelay"`
	Debug       bool          `yaml:"debug"`
}

// LoadConfig reads a YAML configuration file, expanding environment
// variable references before parsing.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.CountryCode == 0 {
		c.CountryCode = defaultCountryCode
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = defaultRetryDelay
	}
}

func (c *Config) validate() error {
	if c.Username == "" {
		return fmt.Errorf("username is required")
	}
	if c.Password == "" {
		return fmt.Errorf("password is required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("apiKey is required")
	}
	return nil
}

// NewFromConfig constructs a client from a loaded configuration. Options
// are applied after the configuration and may override it.
func NewFromConfig(ctx context.Context, cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	base := []Option{
		WithCountryCode(cfg.CountryCode),
		WithRetryDelay(cfg.RetryDelay),
		WithDebug(cfg.Debug),
	}
	if cfg.Endpoint != "" {
		base = append(base, WithEndpoint(cfg.Endpoint))
	}
	return New(ctx, cfg.Username, cfg.Password, cfg.APIKey, append(base, opts...)...)
}
