// Package config loads the cookbook CLI settings.
//
// Precedence, from lowest to highest: defaults, the YAML file, the environment.
// Command line flags are applied on top by the CLI.
package config

import (
	"os"
	"slices"

	"go.llib.dev/frameless/pkg/env"
	"go.llib.dev/frameless/pkg/errorkit"
	"gopkg.in/yaml.v3"
)

const ErrInvalid errorkit.Error = "invalid configuration"

// Drivers lists the backends the CLI can open.
var Drivers = []string{"memory", "sqlite", "bolt", "postgres", "pgx", "mysql"}

type Config struct {
	Driver string `yaml:"driver" env:"COOKBOOK_DRIVER"`
	// DSN is the connection string of the networked databases.
	DSN string `yaml:"dsn" env:"COOKBOOK_DSN"`
	// Path is the database file of the embedded backends.
	Path     string `yaml:"path" env:"COOKBOOK_PATH"`
	LogLevel string `yaml:"log_level" env:"COOKBOOK_LOG_LEVEL"`
	Metrics  bool   `yaml:"metrics" env:"COOKBOOK_METRICS"`
}

func Default() Config {
	return Config{
		Driver:   "memory",
		Path:     "cookbook.db",
		LogLevel: "info",
	}
}

// Load reads the configuration with Read and validates it.
func Load(path string) (Config, error) {
	c, err := Read(path)
	if err != nil {
		return Config{}, err
	}
	return c, c.Validate()
}

// Read reads the optional YAML file at path and then the environment.
func Read(path string) (Config, error) {
	c := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := yaml.Unmarshal(data, &c); err != nil {
			return Config{}, ErrInvalid.F("%s: %w", path, err)
		}
	}
	var fromEnv envConfig
	if err := env.Load(&fromEnv); err != nil {
		return Config{}, ErrInvalid.Wrap(err)
	}
	c.Merge(Config(fromEnv))
	return c, nil
}

// envConfig holds the environment overrides, which are partial by nature,
// so it must not be validated on its own like a Config.
type envConfig struct {
	Driver   string `env:"COOKBOOK_DRIVER"`
	DSN      string `env:"COOKBOOK_DSN"`
	Path     string `env:"COOKBOOK_PATH"`
	LogLevel string `env:"COOKBOOK_LOG_LEVEL"`
	Metrics  bool   `env:"COOKBOOK_METRICS"`
}

// Merge copies the non-zero fields of oth into c.
func (c *Config) Merge(oth Config) {
	if oth.Driver != "" {
		c.Driver = oth.Driver
	}
	if oth.DSN != "" {
		c.DSN = oth.DSN
	}
	if oth.Path != "" {
		c.Path = oth.Path
	}
	if oth.LogLevel != "" {
		c.LogLevel = oth.LogLevel
	}
	if oth.Metrics {
		c.Metrics = true
	}
}

func (c Config) Validate() error {
	if !slices.Contains(Drivers, c.Driver) {
		return ErrInvalid.F("unknown driver %q", c.Driver)
	}
	switch c.Driver {
	case "postgres", "pgx", "mysql":
		if c.DSN == "" {
			return ErrInvalid.F("driver %q requires a dsn", c.Driver)
		}
	case "sqlite", "bolt":
		if c.Path == "" {
			return ErrInvalid.F("driver %q requires a path", c.Driver)
		}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error", "fatal":
	default:
		return ErrInvalid.F("unknown log level %q", c.LogLevel)
	}
	return nil
}
