package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the full server configuration.
type Config struct {
	Addr        string `koanf:"addr" yaml:"addr"`
	PublicURL   string `koanf:"public_url" yaml:"public_url"`
	DatabaseDSN string `koanf:"database_dsn" yaml:"database_dsn"`
	SecretKey   string `koanf:"secret_key" yaml:"secret_key"`
	UploadDir   string `koanf:"upload_dir" yaml:"upload_dir"`
	UploadURL   string `koanf:"upload_url" yaml:"upload_url"`
	OpenAIKey   string `koanf:"openai_key" yaml:"openai_key"`
	OpenAIModel string `koanf:"openai_model" yaml:"openai_model"`
	SeedOnBoot  bool   `koanf:"seed_on_boot" yaml:"seed_on_boot"`
	LogLevel    string `koanf:"log_level" yaml:"log_level"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() *Config {
	return &Config{
		Addr:        ":8000",
		DatabaseDSN: "smartpromo.db",
		UploadDir:   "data/uploads",
		UploadURL:   "/uploads",
		SeedOnBoot:  true,
		LogLevel:    "info",
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (SMARTPROMO_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("SMARTPROMO_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "SMARTPROMO_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("database_dsn is required")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("secret_key is required")
	}
	if c.UploadDir == "" {
		return fmt.Errorf("upload_dir is required")
	}
	return nil
}
