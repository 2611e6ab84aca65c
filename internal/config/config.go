package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvConfigPath names an extra runner settings file applied last.
const EnvConfigPath = "SR_CONFIG"

// LogLevel specifies the logging verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat specifies the log output format.
type LogFormat string

const (
	LogFormatAuto LogFormat = "auto" // text on a terminal, JSON otherwise
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  LogLevel  `toml:"level"`
	Format LogFormat `toml:"format"`
	File   string    `toml:"file"`
}

// ComposeConfig holds docker-compose invocation settings.
type ComposeConfig struct {
	// Program is the compose tool command line placed before the -f pairs.
	// It is tokenized like any other command, so "docker compose" works.
	Program string `toml:"program"`
}

// ProcessConfig holds child process settings.
type ProcessConfig struct {
	// StopGracePeriod is how long an interrupted child gets to exit before
	// it is killed.
	StopGracePeriod time.Duration `toml:"stop_grace_period"`
}

// Config holds the runner settings for sr. Scenario files are separate and
// loaded by package scenariofile.
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Compose ComposeConfig `toml:"compose"`
	Process ProcessConfig `toml:"process"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  LogLevelInfo,
			Format: LogFormatAuto,
		},
		Compose: ComposeConfig{
			Program: "docker-compose",
		},
		Process: ProcessConfig{
			StopGracePeriod: 3 * time.Second,
		},
	}
}

// Load loads configuration from file, merging with defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := decodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromDir loads configuration from the standard locations for a scenario
// base directory. Applies in order: defaults -> ~/.sr/config.toml ->
// <dir>/.sr/config.toml -> $SR_CONFIG. Later files override earlier ones.
func LoadFromDir(dir string) (*Config, error) {
	cfg := Default()

	home, err := os.UserHomeDir()
	if err == nil {
		if err := decodeFile(filepath.Join(home, ".sr", "config.toml"), cfg); err != nil {
			return nil, fmt.Errorf("global config: %w", err)
		}
	}

	if err := decodeFile(filepath.Join(dir, ".sr", "config.toml"), cfg); err != nil {
		return nil, fmt.Errorf("project config: %w", err)
	}

	if path := os.Getenv(EnvConfigPath); path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%s: %w", EnvConfigPath, err)
		}
		if err := decodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("%s config: %w", EnvConfigPath, err)
		}
	}

	return cfg, nil
}

// decodeFile decodes path over cfg. A missing file leaves cfg untouched.
func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case LogFormatAuto, LogFormatJSON, LogFormatText:
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	if c.Compose.Program == "" {
		return fmt.Errorf("compose program is required")
	}
	if c.Process.StopGracePeriod < 0 {
		return fmt.Errorf("stop_grace_period must not be negative")
	}
	return nil
}

// LogFile returns the absolute log file path, or "" when logging to stderr only.
func (c *Config) LogFile(baseDir string) string {
	if c.Logging.File == "" || filepath.IsAbs(c.Logging.File) {
		return c.Logging.File
	}
	return filepath.Join(baseDir, c.Logging.File)
}
