package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Source   SourceConfig   `toml:"source"`
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
	Metrics  MetricsConfig  `toml:"metrics"`
}

// SourceConfig describes where and how the reference station list is fetched.
type SourceConfig struct {
	URL          string `toml:"url"`
	Charset      string `toml:"charset"`
	NameCodepage string `toml:"name_codepage"`
	Timeout      int    `toml:"timeout"` // seconds
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	UpdateStmt   string `toml:"update_stmt"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// MetricsConfig controls the Prometheus textfile written after each sync.
type MetricsConfig struct {
	Textfile string `toml:"textfile"` // empty disables the export
}

// LoadConfig reads a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read config file: %w", ErrMissingConfig, err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %w", ErrInvalidConfig, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate reports configuration that cannot drive a reconciliation run.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Source.URL) == "" {
		return fmt.Errorf("%w: source.url is empty", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("%w: database.path is empty", ErrInvalidConfig)
	}
	if n := strings.Count(c.Database.UpdateStmt, "?"); n != 2 {
		return fmt.Errorf("%w: database.update_stmt needs 2 placeholders (name, frequency), found %d", ErrInvalidConfig, n)
	}
	if c.Source.Timeout < 0 {
		return fmt.Errorf("%w: source.timeout is negative", ErrInvalidConfig)
	}
	if c.Log.Level != "" {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("%w: log.level: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// SourceTimeout returns the HTTP timeout of the reference source.
func (c *Config) SourceTimeout() time.Duration {
	return time.Duration(c.Source.Timeout) * time.Second
}

// LogLevel returns the configured [log.Level], defaulting to [log.InfoLevel].
func (c *Config) LogLevel() log.Level {
	if ll, err := log.ParseLevel(c.Log.Level); err == nil {
		return ll
	}
	return log.InfoLevel
}
