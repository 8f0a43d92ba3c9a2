// Package config loads server and client settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// Dictionary backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config holds every setting read from the environment.
type Config struct {
	Port         string `env:"PORT"          envDefault:"5175"`
	LogLevel     string `env:"LOG_LEVEL"     envDefault:"info"`
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	Production   bool
	NodeEnv      string `env:"NODE_ENV"`

	RootWordsFile  string `env:"WORDS_ROOT_FILE"`
	DictionaryFile string `env:"WORDS_DICTIONARY_FILE"`
	Locale         string `env:"LOCALE" envDefault:"en"`

	DictionaryBackend string `env:"DICTIONARY_BACKEND" envDefault:"memory"`
	DictionaryDSN     string `env:"DICTIONARY_DSN"     envDefault:"./data/dictionary.db"`

	TicketSecret   string        `env:"TICKET_SECRET"    envDefault:"dev_secret_change_me"`
	TicketTTL      time.Duration `env:"TICKET_TTL"       envDefault:"24h"`
	SessionIdleTTL time.Duration `env:"SESSION_IDLE_TTL" envDefault:"2h"`
}

// Load reads an optional .env file and then the process environment.
// A missing .env file is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Production = cfg.NodeEnv == "production"
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that env tags cannot express.
func (c Config) Validate() error {
	switch c.DictionaryBackend {
	case BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("config: unknown DICTIONARY_BACKEND %q", c.DictionaryBackend)
	}
	if c.DictionaryBackend == BackendSQLite && c.DictionaryDSN == "" {
		return errors.New("config: DICTIONARY_DSN is required for the sqlite backend")
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("config: LOCALE %q: %w", c.Locale, err)
	}
	if c.TicketTTL <= 0 {
		return errors.New("config: TICKET_TTL must be positive")
	}
	if c.SessionIdleTTL <= 0 {
		return errors.New("config: SESSION_IDLE_TTL must be positive")
	}
	return nil
}
