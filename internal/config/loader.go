package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	kjson "github.com/knadh/koanf/parsers/json"
	ktoml "github.com/knadh/koanf/parsers/toml/v2"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// envPrefix is stripped from environment variables before mapping them onto
// config paths (GQLTEL_LOG_LEVEL -> log.level).
const envPrefix = "GQLTEL_"

// Loader merges configuration from a file, environment variables, and
// command-line flags, in increasing order of precedence.
type Loader struct {
	k *koanf.Koanf
}

// NewLoader loads configuration from the given file plus the environment.
func NewLoader(path string) (*Loader, error) {
	return NewLoaderWithFlags(path, nil)
}

// NewLoaderWithFlags loads configuration from the given file, the
// environment, and any set flags.
func NewLoaderWithFlags(path string, flags *pflag.FlagSet) (*Loader, error) {
	k := koanf.New(".")

	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envToPath), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment overrides: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithValue(flags, ".", k, flagToPath), nil); err != nil {
			return nil, fmt.Errorf("failed to load flag overrides: %w", err)
		}
	}

	return &Loader{k: k}, nil
}

// Get unmarshals the merged configuration. Unknown fields anywhere above
// the selector objects are rejected; selector objects themselves are
// validated field-by-field in NewAttributes.
func (l *Loader) Get() (*Config, error) {
	cfg := Default()
	err := l.k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			ErrorUnused: true,
			Result:      &cfg,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// parserFor selects a config parser by file extension.
func parserFor(path string) (koanf.Parser, error) {
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		return kyaml.Parser(), nil
	case ".json":
		return kjson.Parser(), nil
	case ".toml":
		return ktoml.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config file extension %q (supported: .yaml, .yml, .json, .toml)", ext)
	}
}

// envToPath maps GQLTEL_LOG_LEVEL to log.level. GQLTEL_CONFIG names the
// config file itself, not a config key, and is skipped.
func envToPath(s string) string {
	if s == "GQLTEL_CONFIG" {
		return ""
	}
	s = strings.TrimPrefix(s, envPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "_", ".")
}

// flagToPath maps --log-level to log.level. Flags without a config field
// (cobra's help, the config path, command-specific flags) and unset
// overrides are dropped.
func flagToPath(key string, value string) (string, any) {
	path, ok := flagMapping[key]
	if !ok || value == "" {
		return "", nil
	}
	return path, value
}
