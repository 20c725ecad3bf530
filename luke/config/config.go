// Package config loads the settings of the commits inspector.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/balzaczyy/goluke/core/index"
	"github.com/op/go-logging"
)

const (
	ENV_CONFIG       = "LUKE_COMMITS_CONFIG"
	DEFAULT_FILENAME = ".luke-commits.toml"

	FORMAT_TEXT = "text"
	FORMAT_JSON = "json"
)

// Config holds the settings read from a TOML file.
type Config struct {
	LogLevel       string       `toml:"log_level"`
	DeletionPolicy string       `toml:"deletion_policy"`
	Format         string       `toml:"format"`
	Export         ExportConfig `toml:"export"`

	// file the settings were read from; empty for defaults
	Source string `toml:"-"`
}

type ExportConfig struct {
	// zstd level of the JSON export, 1 (fastest) to 4 (best)
	CompressLevel int `toml:"compress_level"`
}

func Default() *Config {
	return &Config{
		LogLevel:       "WARNING",
		DeletionPolicy: index.POLICY_KEEP_LAST,
		Format:         FORMAT_TEXT,
		Export:         ExportConfig{CompressLevel: 2},
	}
}

/*
Loads the configuration. The file is, in order: explicit (the
--config flag), $LUKE_COMMITS_CONFIG, ~/.luke-commits.toml. Only an
explicit or environment file must exist; without one the defaults
are returned.
*/
func Load(explicit string) (*Config, error) {
	path, required := explicit, true
	if path == "" {
		path = os.Getenv(ENV_CONFIG)
	}
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Default(), nil
		}
		path, required = filepath.Join(home, DEFAULT_FILENAME), false
	}

	conf, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) && !required {
		return Default(), nil
	}
	return conf, err
}

// Reads path over the defaults and validates the result.
func LoadFile(path string) (*Config, error) {
	conf := Default()
	md, err := toml.DecodeFile(path, conf)
	if err != nil {
		return nil, fmt.Errorf("read config %v: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config %v: unknown keys %v", path, undecoded)
	}
	conf.Source = path
	if err = conf.Validate(); err != nil {
		return nil, fmt.Errorf("config %v: %w", path, err)
	}
	return conf, nil
}

func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := index.DeletionPolicyByName(c.DeletionPolicy); err != nil {
		return err
	}
	switch c.Format {
	case FORMAT_TEXT, FORMAT_JSON:
	default:
		return fmt.Errorf("unknown format: %v", c.Format)
	}
	if c.Export.CompressLevel < 1 || c.Export.CompressLevel > 4 {
		return fmt.Errorf("compress_level out of range [1, 4]: %v", c.Export.CompressLevel)
	}
	return nil
}

func (c *Config) Level() (logging.Level, error) {
	return logging.LogLevel(strings.ToUpper(c.LogLevel))
}

func (c *Config) Policy() index.IndexDeletionPolicy {
	policy, err := index.DeletionPolicyByName(c.DeletionPolicy)
	if err != nil {
		return index.KEEP_ONLY_LAST_COMMIT_DELETION_POLICY
	}
	return policy
}
