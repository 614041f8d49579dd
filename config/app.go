package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/theoremus-urban-solutions/transit-fares/errs"
)

// EnvPrefix prefixes the environment variables read by LoadAppConfig:
// TRANSITFARE_NETWORK, TRANSITFARE_LOG_LEVEL, ...
const EnvPrefix = "TRANSITFARE_"

// DefaultConfigFiles are tried in order when no config file is given.
var DefaultConfigFiles = []string{"transitfare.yaml", "transitfare.yml"}

// Defaults returns the built-in settings.
func Defaults() AppConfig {
	return AppConfig{
		Network:        "network.yml",
		LogLevel:       "info",
		RouteCacheSize: 256,
		Output:         "table",
		Listen:         ":8080",
	}
}

func defaultsMap() map[string]any {
	d := Defaults()
	return map[string]any{
		"network":          d.Network,
		"log_level":        d.LogLevel,
		"route_cache_size": d.RouteCacheSize,
		"output":           d.Output,
		"listen":           d.Listen,
	}
}

// ApplyDefaults fills zero fields of cfg with Defaults.
func ApplyDefaults(cfg *AppConfig) {
	d := Defaults()
	if cfg.Network == "" {
		cfg.Network = d.Network
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = d.LogLevel
	}
	if cfg.Output == "" {
		cfg.Output = d.Output
	}
	if cfg.Listen == "" {
		cfg.Listen = d.Listen
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.Output = strings.ToLower(cfg.Output)
	cfg.WindowPolicy = strings.ToLower(cfg.WindowPolicy)
}

func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range DefaultConfigFiles {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// LoadAppConfig layers settings with increasing precedence: defaults, the
// config file (cfgFile, or the first of DefaultConfigFiles that exists), the
// TRANSITFARE_* environment, and flags that were set explicitly. Flag names
// map to keys with dashes replaced by underscores.
func LoadAppConfig(cfgFile string, flags *pflag.FlagSet) (AppConfig, string, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return AppConfig{}, "", fmt.Errorf("load defaults: %w", err)
	}

	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return AppConfig{}, "", errs.InvalidConfig("config file %s: %v", used, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return AppConfig{}, "", fmt.Errorf("load environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return AppConfig{}, "", fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return AppConfig{}, "", errs.InvalidConfig("decode config: %v", err)
	}
	ApplyDefaults(&cfg)
	if err := validateStruct("config", cfg); err != nil {
		return AppConfig{}, "", err
	}
	return cfg, used, nil
}
