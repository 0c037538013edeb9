// Package config loads the CLI configuration from defaults, an optional YAML
// file, SQLDIALECT_ environment variables and command-line overrides, in
// increasing order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/agnosticeng/sqldialect/internal/dialect"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const EnvPrefix = "SQLDIALECT_"

type Config struct {
	Dialect  dialect.Config `koanf:"dialect"`
	Parallel int            `koanf:"parallel"`
	Format   string         `koanf:"format"`
}

func (conf Config) WithDefaults() Config {
	conf.Dialect = conf.Dialect.WithDefaults()

	if conf.Parallel <= 0 {
		conf.Parallel = 1
	}

	if len(conf.Format) == 0 {
		conf.Format = "table"
	}

	return conf
}

// EnvKey maps SQLDIALECT_DIALECT__CREDENTIALS__PASSWORD to
// dialect.credentials.password.
func EnvKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// Load reads path when it is not empty, then the environment, then overrides,
// whose keys are dotted paths such as "dialect.backend".
func Load(path string, overrides map[string]any) (Config, error) {
	var k = koanf.New(".")

	if len(path) > 0 {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", EnvKey), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load env vars: %w", err)
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return Config{}, fmt.Errorf("failed to load overrides: %w", err)
		}
	}

	var conf Config

	if err := k.Unmarshal("", &conf); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	return conf.WithDefaults(), nil
}
