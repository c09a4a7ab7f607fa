package config

import (
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/testdrop/pkg/errors"
	"github.com/arthur-debert/testdrop/pkg/logging"
)

const (
	// EnvPrefix prefixes every environment variable read by Load
	EnvPrefix = "TESTDROP_"
	// EnvConfigFile names an optional TOML file layered over the defaults
	EnvConfigFile = EnvPrefix + "CONFIG"
)

// Config holds registry settings
type Config struct {
	Log   Log   `koanf:"log"`
	Track Track `koanf:"track"`
}

// Log configures registry event logging
type Log struct {
	Level string `koanf:"level"`
}

// Track configures extra bookkeeping on releases
type Track struct {
	Callers bool `koanf:"callers"`
}

// Default returns the embedded defaults only
func Default() *Config {
	cfg, err := LoadFrom("", nil)
	if err != nil {
		// The embedded file is part of the build; failing here is a packaging bug.
		panic(err)
	}
	return cfg
}

// Load reads defaults, the file named by TESTDROP_CONFIG and the environment
func Load() (*Config, error) {
	return LoadFrom(os.Getenv(EnvConfigFile), nil)
}

// LoadFrom layers defaults, the TOML file at path (skipped when empty),
// TESTDROP_* environment variables and overrides, in that order.
// Override keys use dotted paths such as "track.callers".
func LoadFrom(path string, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Load config file if given
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s is not readable", path).
				WithDetail("path", path)
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config from %s", path).
				WithDetail("path", path)
		}
	}

	// 3. Environment, TESTDROP_TRACK_CALLERS -> track.callers
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 4. Programmatic overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configured values are usable
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid log.level").
			WithDetail("level", c.Log.Level)
	}
	return nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
}
