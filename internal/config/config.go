// Package config loads extractor settings from defaults, a config file,
// environment variables and command line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"entity-extractor/internal/export"
	"entity-extractor/internal/extract"
	"entity-extractor/internal/logging"
)

const (
	// EnvPrefix prefixes every environment variable, e.g.
	// ENTITY_EXTRACTOR_FK_SUFFIX for the fk-suffix key.
	EnvPrefix = "ENTITY_EXTRACTOR"
	// FileName is the project config file looked up in the working directory.
	FileName = ".entity-extractor.yaml"
)

// Keys, shared with the command line flags of the same name.
const (
	KeyNamingHeuristics = "naming-heuristics"
	KeyForeignKeySuffix = "fk-suffix"
	KeyPrimaryKeyName   = "pk-name"
	KeyFormat           = "format"
	KeyOutput           = "output"
	KeyLogLevel         = "log-level"
	KeyLogFile          = "log-file"
	KeyLogJSON          = "log-json"
)

// Keys lists every configuration key.
var Keys = []string{
	KeyNamingHeuristics,
	KeyForeignKeySuffix,
	KeyPrimaryKeyName,
	KeyFormat,
	KeyOutput,
	KeyLogLevel,
	KeyLogFile,
	KeyLogJSON,
}

// Config holds the resolved settings.
type Config struct {
	NamingHeuristics bool   `mapstructure:"naming-heuristics"`
	ForeignKeySuffix string `mapstructure:"fk-suffix"`
	PrimaryKeyName   string `mapstructure:"pk-name"`
	Format           string `mapstructure:"format"`
	Output           string `mapstructure:"output"`
	LogLevel         string `mapstructure:"log-level"`
	LogFile          string `mapstructure:"log-file"`
	LogJSON          bool   `mapstructure:"log-json"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// New creates a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	defaults := extract.DefaultOptions()
	v.SetDefault(KeyNamingHeuristics, defaults.UseNamingHeuristics)
	v.SetDefault(KeyForeignKeySuffix, defaults.ForeignKeySuffix)
	v.SetDefault(KeyPrimaryKeyName, defaults.PrimaryKeyName)
	v.SetDefault(KeyFormat, string(export.FormatJSON))
	v.SetDefault(KeyOutput, "")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogJSON, false)

	return v
}

// BindFlags binds every flag of fs named after a configuration key.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, key := range Keys {
		flag := fs.Lookup(key)
		if flag == nil {
			continue
		}

		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", key, err)
		}
	}

	return nil
}

// Load reads the config file and resolves the settings. An explicit path
// must exist; otherwise FileName in the working directory and then
// entity-extractor/config.yaml in the user config directory are tried.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path == "" {
		path = locate()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.File = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// locate returns the first config file that exists, or "".
func locate() string {
	var candidates []string

	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, FileName))
	}

	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "entity-extractor", "config.yaml"))
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}

	return ""
}

// Validate checks the settings that have a fixed set of values.
func (c *Config) Validate() error {
	var errs []error

	if _, err := export.ParseFormat(c.Format); err != nil {
		errs = append(errs, err)
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ExtractOptions returns the extraction options.
func (c *Config) ExtractOptions() extract.Options {
	return extract.Options{
		UseNamingHeuristics: c.NamingHeuristics,
		ForeignKeySuffix:    c.ForeignKeySuffix,
		PrimaryKeyName:      c.PrimaryKeyName,
	}
}

// OutputFormat returns the parsed output format.
func (c *Config) OutputFormat() export.Format {
	f, err := export.ParseFormat(c.Format)
	if err != nil {
		return export.FormatJSON
	}

	return f
}

// Logging returns the logger settings.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level: c.LogLevel,
		File:  c.LogFile,
		JSON:  c.LogJSON,
	}
}
