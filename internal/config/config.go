// Package config handles loading and parsing application configuration.
// The config file path comes from (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// A .env file in the working directory, when present, is loaded into the
// environment first, so every env:"..." override below can live there.
//
// Both binaries (the API service and the web client) read the same file;
// each uses the sections it needs.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/aanand-mishra/orgconnect/internal/ui"
)

// Storage backends.
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity: "dev", "staging", "prod".
	Env string `yaml:"env" env:"ENV" env-required:"true"`

	// Storage selects the applicant backend: "memory" or "sqlite".
	Storage string `yaml:"storage" env:"STORAGE" env-default:"memory"`

	// StoragePath is the SQLite file. Only read when Storage is "sqlite".
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH"`

	// Seed preloads the two sample applicants into an empty store.
	Seed bool `yaml:"seed" env:"SEED" env-default:"true"`

	HTTPServer `yaml:"http_server"`

	CORS CORS `yaml:"cors"`

	Web Web `yaml:"web"`
}

// HTTPServer holds settings for the API service listener.
type HTTPServer struct {
	// Addr is the TCP address the API listens on, e.g. "localhost:8082".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-required:"true"`

	// MetricsAddr serves /metrics and /healthz. Empty disables it.
	MetricsAddr string `yaml:"metrics_address" env:"HTTP_METRICS_ADDR"`
}

// CORS configures cross-origin access to the API.
type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
}

// Web holds settings for the web client.
type Web struct {
	Addr string `yaml:"address" env:"WEB_ADDR" env-default:"localhost:8083"`

	// MetricsAddr serves the web client's /metrics and /healthz. Empty
	// disables it.
	MetricsAddr string `yaml:"metrics_address" env:"WEB_METRICS_ADDR"`

	// APIURL is the base URL of the API service, including the /api prefix.
	APIURL string `yaml:"api_url" env:"WEB_API_URL" env-default:"http://localhost:8082/api"`

	// RedirectDelay is how long the confirmation view stays up before the
	// dashboard is shown.
	RedirectDelay time.Duration `yaml:"redirect_delay" env:"WEB_REDIRECT_DELAY" env-default:"3s"`

	// CachePolicy is "once" (fetch the list on the first dashboard visit
	// only) or "always" (fetch on every visit).
	CachePolicy ui.CachePolicy `yaml:"cache_policy" env:"WEB_CACHE_POLICY" env-default:"once"`

	// SessionTTL evicts browser sessions idle for longer than this.
	SessionTTL time.Duration `yaml:"session_ttl" env:"WEB_SESSION_TTL" env-default:"30m"`
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage {
	case StorageMemory:
	case StorageSQLite:
		if c.StoragePath == "" {
			return errors.New("storage_path is required when storage is sqlite")
		}
	default:
		return fmt.Errorf("unknown storage %q: use %q or %q", c.Storage, StorageMemory, StorageSQLite)
	}

	if _, err := ui.ParseCachePolicy(string(c.Web.CachePolicy)); err != nil {
		return fmt.Errorf("web.cache_policy: %w", err)
	}

	if c.Web.RedirectDelay < 0 {
		return errors.New("web.redirect_delay must not be negative")
	}

	return nil
}

// MustLoad reads, validates, and returns the application config.
// Like every Must* function it exits the process instead of returning
// an error: if it returns, the config is valid.
func MustLoad() *Config {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Fatalf("cannot load .env: %s", err.Error())
		}
	}

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err.Error())
	}

	return cfg
}
