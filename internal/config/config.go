package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"cardapio/internal/domain"
)

const (
	EnvPrefix       = "CARDAPIO"
	DefaultListen   = "localhost:8080"
	DefaultLogLevel = "info"
	DefaultTimeout  = 10 * time.Second
	DefaultDebounce = 500 * time.Millisecond
	DefaultRetries  = 3
)

// Config is the application configuration. Values come from, in increasing
// priority: defaults, the config file, CARDAPIO_* environment variables, and
// flags bound by the CLI.
//
// WARNING: APIToken is a secret and should not be logged.
type Config struct {
	APIURL   string        `mapstructure:"api_url"`   // REST backend; empty means use the local catalog
	APIToken string        `mapstructure:"api_token"` // Secret: bearer token for the REST backend
	DBPath   string        `mapstructure:"db_path"`   // Local SQLite catalog
	Listen   string        `mapstructure:"listen"`    // Address for the companion server
	PerPage  int           `mapstructure:"per_page"`
	Debounce time.Duration `mapstructure:"debounce"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Retries  int           `mapstructure:"retries"`
	LogLevel string        `mapstructure:"log_level"`
	LogFile  string        `mapstructure:"log_file"` // Empty logs to stderr
}

// Remote reports whether the REST backend should be used
func (c *Config) Remote() bool {
	return c.APIURL != ""
}

// New returns a viper instance with defaults and environment bindings set.
// The CLI binds its flags on top of it before calling Unmarshal.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("api_url", "")
	v.SetDefault("api_token", "")
	v.SetDefault("db_path", DBPath())
	v.SetDefault("listen", DefaultListen)
	v.SetDefault("per_page", domain.DefaultPerPage)
	v.SetDefault("debounce", DefaultDebounce)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("retries", DefaultRetries)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_file", "")
	return v
}

// Load reads the config file at path, if it exists, and overlays the
// environment. A missing file is not an error.
func Load(path string) (*Config, error) {
	v := New()
	if err := ReadFile(v, path); err != nil {
		return nil, err
	}
	return Unmarshal(v)
}

// ReadFile loads path into v when the file exists
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	v.SetConfigFile(path)
	return v.ReadInConfig()
}

// Unmarshal decodes v into a Config and fills in anything left unset
func Unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if cfg.PerPage <= 0 {
		cfg.PerPage = domain.DefaultPerPage
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	cfg.DBPath = expandHome(cfg.DBPath)
	return cfg, nil
}

// Path returns the config file path from CARDAPIO_CONFIG,
// falling back to $XDG_CONFIG_HOME/cardapio/config.yaml.
func Path() string {
	if env := os.Getenv(EnvPrefix + "_CONFIG"); env != "" {
		return env
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "cardapio", "config.yaml")
}

// DBPath returns the default catalog location under the XDG data directory
func DBPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "cardapio", "catalog.db")
}

func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// LogPath returns the TUI log file under the XDG state directory
func LogPath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, _ := os.UserHomeDir()
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "cardapio", "cardapio.log")
}
