package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds connection parameters for the admin console.
type Config struct {
	// BaseURL is the root URL of the admin API, without a trailing slash.
	BaseURL string `yaml:"base_url" validate:"required,http_url"`
	// Timeout is the duration for a single HTTP call.
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
	// SessionFile is the path to the JSON file storing the access token.
	SessionFile string `yaml:"session_file"`
	// LogLevel is the minimum level of console diagnostics.
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

const (
	// DefaultConfigFilename is the default filename for connection settings.
	DefaultConfigFilename = "boombim-admin-settings.yaml"

	// DefaultSessionFilename is the default filename for the stored session.
	DefaultSessionFilename = "boombim-admin-session.json"

	// DefaultBaseURL is the production admin API.
	DefaultBaseURL = "https://api.boombim.p-e.kr"

	// DefaultTimeout is the default duration for network operations.
	DefaultTimeout = 10 * time.Second

	// DefaultLogLevel is used when the settings do not name a level.
	DefaultLogLevel = "info"

	// DefaultFilePermissions is the default file permission for config and session files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")

	//nolint:gochecknoglobals // Validator caches struct metadata, one instance is enough.
	validate = validator.New(validator.WithRequiredStructEnabled())
)

// Default returns the compiled-in settings.
func Default() *Config {
	return &Config{
		BaseURL:     DefaultBaseURL,
		Timeout:     DefaultTimeout,
		SessionFile: DefaultSessionFilename,
		LogLevel:    DefaultLogLevel,
	}
}

// Load reads configuration from the provided path and validates essential fields.
// A missing file at the default location yields the compiled-in settings.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultConfigFilename {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes Config to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills in defaults and checks the provided settings for required fields and formatting.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.BaseURL == "" {
		settings.BaseURL = DefaultBaseURL
	}

	settings.BaseURL = strings.TrimRight(settings.BaseURL, "/")

	if settings.LogLevel == "" {
		settings.LogLevel = DefaultLogLevel
	}

	settings.LogLevel = strings.ToLower(settings.LogLevel)

	if err := validate.Struct(settings); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	// Set default timeout if not specified
	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	// Set default session file if not specified
	if settings.SessionFile == "" {
		settings.SessionFile = DefaultSessionFilename
	}

	return nil
}
