package goPress

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config defines the tunable surface of a [Client].
//
// Config instances are intended to be configured during initialization and
// then treated as immutable.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Session SessionConfig `yaml:"session"`
	Events  EventsConfig  `yaml:"events"`
}

/*
====================================
API CONFIG
====================================
*/

// APIConfig describes the remote API and how to reach it.
type APIConfig struct {
	// BaseURL prefixes every request path.
	BaseURL string `yaml:"base_url" env:"API_BASE_URL" env-default:"http://localhost:8000/api"`
	// Timeout bounds each network call, including the refresh exchange.
	Timeout time.Duration `yaml:"timeout" env:"API_TIMEOUT" env-default:"10s"`
	// UserAgent is sent with every request.
	UserAgent string `yaml:"user_agent" env:"API_USER_AGENT" env-default:"goPress/1.0"`
	// LoginPath is the unauthenticated entry point handed to the redirect
	// hook on irrecoverable session failure.
	LoginPath string `yaml:"login_path" env:"API_LOGIN_PATH" env-default:"/login"`
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig controls the persisted mirror.
type SessionConfig struct {
	// VaultPrefix namespaces mirror keys when the vault is shared
	// (the Redis backend). File and memory vaults ignore it.
	VaultPrefix string `yaml:"vault_prefix" env:"SESSION_VAULT_PREFIX" env-default:"gopress"`
	// VaultFile, when set, selects a file-backed vault at this path unless
	// the builder installs an explicit vault.
	VaultFile string `yaml:"vault_file" env:"SESSION_VAULT_FILE"`
}

/*
====================================
EVENTS CONFIG
====================================
*/

// EventsConfig controls the lifecycle event dispatcher.
type EventsConfig struct {
	Enabled    bool `yaml:"enabled" env:"EVENTS_ENABLED" env-default:"true"`
	BufferSize int  `yaml:"buffer_size" env:"EVENTS_BUFFER_SIZE" env-default:"64"`
	// DropIfFull trades event completeness for never blocking a request
	// goroutine on a slow sink. Dropped events are counted.
	DropIfFull bool `yaml:"drop_if_full" env:"EVENTS_DROP_IF_FULL" env-default:"true"`
}

func defaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:   "http://localhost:8000/api",
			Timeout:   10 * time.Second,
			UserAgent: "goPress/1.0",
			LoginPath: "/login",
		},
		Session: SessionConfig{
			VaultPrefix: "gopress",
		},
		Events: EventsConfig{
			Enabled:    true,
			BufferSize: 64,
			DropIfFull: true,
		},
	}
}

func cloneConfig(cfg Config) Config {
	// All fields are value types; a shallow copy is a deep copy.
	return cfg
}

func validateConfig(cfg Config) error {
	parsed, err := url.Parse(cfg.API.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: invalid base URL %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("config: non-positive timeout %v", cfg.API.Timeout)
	}
	if cfg.Events.Enabled && cfg.Events.BufferSize <= 0 {
		return fmt.Errorf("config: non-positive event buffer %d", cfg.Events.BufferSize)
	}
	return nil
}

// LoadConfig resolves a Config by priority: the explicit path argument, the
// CONFIG_PATH environment variable, a ./gopress.yaml in the working
// directory, and finally environment variables alone. When a file is read,
// environment variables still overlay its values.
func LoadConfig(path string) (*Config, error) {
	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("config: empty path")
		}
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config: stat %q: %w", p, err)
		}

		var cfg Config
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %q: %w", p, err)
		}
		return &cfg, nil
	}

	if path != "" {
		return tryRead(path)
	}
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		return tryRead(env)
	}
	if cfg, err := tryRead("gopress.yaml"); err == nil {
		return cfg, nil
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	return &cfg, nil
}

// MustLoadConfig is [LoadConfig] with panic on error.
func MustLoadConfig(path string) *Config {
	cfg, err := LoadConfig(path)
	if err != nil {
		panic(err)
	}
	return cfg
}
