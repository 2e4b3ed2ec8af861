package cmd

import (
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/leonardinius/esvalue/internal/value"
)

// Config is the YAML configuration of the CLI.
type Config struct {
	LogLevel          string `yaml:"log_level"`
	StringCacheSize   int    `yaml:"string_cache_size"`
	SymbolsAsWeakKeys bool   `yaml:"symbols_as_weak_keys"`
}

func DefaultConfig() Config {
	return Config{
		LogLevel:        log.InfoLevel.String(),
		StringCacheSize: value.DefaultStringCacheSize,
	}
}

// LoadConfig reads path on top of DefaultConfig. An empty path yields the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "failed to read config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "failed to parse config %s", path)
	}
	return cfg, nil
}

// Apply installs the process-wide settings: log level and the short-string
// cache size.
func (c Config) Apply() error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return errors.Wrapf(err, "invalid log_level %q", c.LogLevel)
	}
	if c.StringCacheSize < 0 {
		return errors.Errorf("invalid string_cache_size %d", c.StringCacheSize)
	}
	log.SetLevel(level)
	value.SetStringCacheSize(c.StringCacheSize)
	return nil
}
