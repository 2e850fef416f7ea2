package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvSecretsFile = "WORKLOG_SECRETS"
	EnvStoreURL    = "WORKLOG_STORE_URL"
	EnvStoreKey    = "WORKLOG_STORE_KEY"
	EnvExportDir   = "WORKLOG_EXPORT_DIR"
	EnvTimeoutMs   = "WORKLOG_STORE_TIMEOUT_MS"
	EnvLogFile     = "WORKLOG_LOG_FILE"
)

// DefaultSecretsFile is read when WORKLOG_SECRETS is unset. A missing
// default file is not an error.
var DefaultSecretsFile = filepath.Join(".worklog", "secrets.yaml")

type Backend string

const (
	BackendREST   Backend = "rest"
	BackendSQLite Backend = "sqlite"
)

// Config holds everything worklog needs at startup.
type Config struct {
	StoreURL  string `yaml:"store_url"`
	StoreKey  string `yaml:"store_key"`
	ExportDir string `yaml:"export_dir"`
	TimeoutMs int    `yaml:"timeout_ms"`
	LogFile   string `yaml:"log_file"`
}

// DefaultConfig returns the settings used when nothing overrides them.
// The store endpoint and key have no defaults.
func DefaultConfig() Config {
	return Config{
		ExportDir: ".",
	}
}

// Load builds a Config from defaults, the secrets file and the environment,
// in increasing precedence, and validates the result.
func Load() (Config, error) {
	cfg := DefaultConfig()

	path, explicit := os.LookupEnv(EnvSecretsFile)
	if !explicit || path == "" {
		path, explicit = DefaultSecretsFile, false
	}
	if err := loadFile(path, &cfg, explicit); err != nil {
		return Config{}, err
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return &ConfigurationError{Field: "secrets file", Reason: fmt.Sprintf("%q could not be read", path), Err: err}
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return &ConfigurationError{Field: "secrets file", Reason: fmt.Sprintf("%q is not valid YAML", path), Err: err}
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvStoreURL); v != "" {
		cfg.StoreURL = v
	}
	if v := os.Getenv(EnvStoreKey); v != "" {
		cfg.StoreKey = v
	}
	if v := os.Getenv(EnvExportDir); v != "" {
		cfg.ExportDir = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv(EnvTimeoutMs); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &ConfigurationError{Field: EnvTimeoutMs, Reason: "must be an integer", Err: err}
		}
		cfg.TimeoutMs = n
	}
	return nil
}

// Validate checks that the store can be reached with the given settings.
func (c Config) Validate() error {
	if strings.TrimSpace(c.StoreURL) == "" {
		return &ConfigurationError{Field: "store_url", Reason: "is required"}
	}
	switch c.Backend() {
	case BackendSQLite:
		if c.SQLitePath() == "" {
			return &ConfigurationError{Field: "store_url", Reason: "sqlite URL has no database path"}
		}
	case BackendREST:
		u, err := url.Parse(c.StoreURL)
		if err != nil {
			return &ConfigurationError{Field: "store_url", Reason: "is not a valid URL", Err: err}
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return &ConfigurationError{Field: "store_url", Reason: fmt.Sprintf("has unsupported scheme %q", u.Scheme)}
		}
		if u.Host == "" {
			return &ConfigurationError{Field: "store_url", Reason: "has no host"}
		}
		if strings.TrimSpace(c.StoreKey) == "" {
			return &ConfigurationError{Field: "store_key", Reason: "is required"}
		}
	}
	if c.TimeoutMs < 0 {
		return &ConfigurationError{Field: "timeout_ms", Reason: "must not be negative"}
	}
	if strings.TrimSpace(c.ExportDir) == "" {
		return &ConfigurationError{Field: "export_dir", Reason: "must not be empty"}
	}
	return nil
}

// Backend selects the store implementation from the endpoint scheme.
func (c Config) Backend() Backend {
	if strings.HasPrefix(c.StoreURL, "sqlite:") {
		return BackendSQLite
	}
	return BackendREST
}

// SQLitePath extracts the database path from a sqlite: endpoint.
// "sqlite:///var/lib/worklog.db", "sqlite:./worklog.db" and "sqlite::memory:" are accepted.
func (c Config) SQLitePath() string {
	p := strings.TrimPrefix(c.StoreURL, "sqlite:")
	p = strings.TrimPrefix(p, "//")
	return p
}

// StoreTimeout is the per-request timeout for the REST store. Zero means none.
func (c Config) StoreTimeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}
