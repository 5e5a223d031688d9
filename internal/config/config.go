package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for a config file when none is given
const DefaultPath = "configs/config.yaml"

// Config structure represents the application configuration
type Config struct {
	Database struct {
		Path        string `yaml:"path" env:"UNIADMIN_DB_PATH"`
		BusyTimeout string `yaml:"busy_timeout" env:"UNIADMIN_DB_BUSY_TIMEOUT"`
		JournalMode string `yaml:"journal_mode" env:"UNIADMIN_DB_JOURNAL_MODE"`
	} `yaml:"database"`

	Seed struct {
		Enabled bool `yaml:"enabled" env:"UNIADMIN_SEED_ENABLED"`
	} `yaml:"seed"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Export struct {
		Dir string `yaml:"dir" env:"UNIADMIN_EXPORT_DIR"`
	} `yaml:"export"`
}

// LoadConfig loads configuration from a file and environment variables.
// A missing file is not an error; defaults and env still apply.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			file, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}

			if err := yaml.Unmarshal(file, config); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Database.Path = "university.db"
	config.Database.BusyTimeout = "5s"
	config.Database.JournalMode = "WAL"

	config.Seed.Enabled = true

	config.Logging.Level = "info"
	config.Logging.Format = "text"

	config.Export.Dir = "."
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

var journalModes = map[string]bool{
	"DELETE":   true,
	"TRUNCATE": true,
	"PERSIST":  true,
	"MEMORY":   true,
	"WAL":      true,
	"OFF":      true,
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if strings.TrimSpace(config.Database.Path) == "" {
		return fmt.Errorf("database path is required")
	}

	if _, err := time.ParseDuration(config.Database.BusyTimeout); err != nil {
		return fmt.Errorf("invalid database busy timeout format: %w", err)
	}

	mode := strings.ToUpper(config.Database.JournalMode)
	if !journalModes[mode] {
		return fmt.Errorf("unsupported journal mode %q", config.Database.JournalMode)
	}
	config.Database.JournalMode = mode

	switch strings.ToLower(config.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("unsupported log format %q", config.Logging.Format)
	}

	return nil
}

// BusyTimeout returns the parsed busy timeout; LoadConfig has already validated it.
func (c *Config) BusyTimeout() time.Duration {
	d, err := time.ParseDuration(c.Database.BusyTimeout)
	if err != nil {
		return 5 * time.Second
	}
	return d
}
