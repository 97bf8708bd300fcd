// Package config resolves runtime configuration from defaults, an optional
// YAML file and UNIGUIDE_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/uniguide/internal/mlmodel"
)

// Config holds all runtime configuration.
type Config struct {
	// DBPath is the SQLite file for the assessment audit log.
	// Empty resolves to store.DefaultDBPath.
	DBPath string `yaml:"db_path"`

	// RecordEvents appends an audit event for every analysis. Default: true.
	RecordEvents bool `yaml:"record_events"`

	Model  ModelConfig  `yaml:"model"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// ModelConfig selects the learned risk model.
type ModelConfig struct {
	// Path to a model artifact on disk. Empty selects the built-in artifact.
	Path string `yaml:"path"`

	// URL of a remote inference service. When set it replaces the local model.
	URL string `yaml:"url"`

	// Timeout bounds one remote inference call. Default: 2s.
	Timeout time.Duration `yaml:"timeout"`

	// ConfidenceScale is how the remote service reports confidence:
	// auto, fraction or percent. Default: auto.
	ConfidenceScale string `yaml:"confidence_scale"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Listen          string        `yaml:"listen"` // Default: ":8080"
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		RecordEvents: true,
		Model: ModelConfig{
			Timeout: 2 * time.Second,
		},
		Server: ServerConfig{
			Listen:          ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("UNIGUIDE_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("UNIGUIDE_RECORD_EVENTS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.RecordEvents = b
		}
	}
	if v := os.Getenv("UNIGUIDE_MODEL"); v != "" {
		cfg.Model.Path = v
	}
	if v := os.Getenv("UNIGUIDE_MODEL_URL"); v != "" {
		cfg.Model.URL = v
	}
	if v := os.Getenv("UNIGUIDE_MODEL_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Model.Timeout = d
		}
	}
	if v := os.Getenv("UNIGUIDE_MODEL_CONFIDENCE_SCALE"); v != "" {
		cfg.Model.ConfidenceScale = v
	}
	if v := os.Getenv("UNIGUIDE_LISTEN"); v != "" {
		cfg.Server.Listen = v
	}
	if v := os.Getenv("UNIGUIDE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("UNIGUIDE_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// Validate reports configuration values that cannot work.
func (c Config) Validate() error {
	var errs []error
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log format must be text or json, got %q", c.Log.Format))
	}
	if c.Model.URL != "" && c.Model.Timeout <= 0 {
		errs = append(errs, errors.New("model timeout must be positive when a model URL is set"))
	}
	if _, err := mlmodel.ParseConfidenceScale(c.Model.ConfidenceScale); err != nil {
		errs = append(errs, err)
	}
	if c.Server.Listen == "" {
		errs = append(errs, errors.New("server listen address is empty"))
	}
	return errors.Join(errs...)
}

// ParseLevel maps a level name onto a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return l, fmt.Errorf("unknown log level %q", s)
	}
	return l, nil
}
