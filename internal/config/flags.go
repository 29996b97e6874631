package config

import (
	"reflect"
	"strings"

	"github.com/spf13/pflag"
)

// fieldInfo stores information about a scalar config field for flag
// registration.
type fieldInfo struct {
	configPath string // e.g., "log.level"
	flagName   string // e.g., "log-level"
	usage      string
}

// flagMapping maps flag names to config paths (log-level -> log.level).
// Only flags present here are config overrides; everything else on a
// command's flag set (cobra's help, the config path, command-specific
// flags like --fixture) is not configuration and must not reach koanf.
var flagMapping = func() map[string]string {
	mapping := make(map[string]string)
	for _, f := range configFields() {
		mapping[f.flagName] = f.configPath
	}
	return mapping
}()

// configFields walks the Config struct and collects its scalar fields
// using the koanf struct tags. Maps and slices (the selector objects)
// have no flag form and are skipped.
func configFields() []fieldInfo {
	var fields []fieldInfo
	walkStruct(reflect.TypeOf(Config{}), "", &fields)
	return fields
}

func walkStruct(t reflect.Type, parentPath string, fields *[]fieldInfo) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("koanf")
		if tag == "" || tag == "-" {
			continue
		}

		configPath := tag
		if parentPath != "" {
			configPath = parentPath + "." + tag
		}

		switch field.Type.Kind() {
		case reflect.Struct:
			walkStruct(field.Type, configPath, fields)
		case reflect.String, reflect.Bool,
			reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64,
			reflect.Float64:
			*fields = append(*fields, fieldInfo{
				configPath: configPath,
				flagName:   configPathToFlagName(configPath),
				usage:      field.Tag.Get("usage"),
			})
		}
	}
}

// configPathToFlagName converts a config path to a flag name
// (log.level -> log-level).
func configPathToFlagName(configPath string) string {
	flagName := strings.ReplaceAll(configPath, ".", "-")
	return strings.ReplaceAll(flagName, "_", "-")
}

// RegisterFlags registers command-line overrides for all scalar config
// fields. Flags are string-valued; type coercion happens during unmarshal.
func RegisterFlags(fs *pflag.FlagSet) {
	for _, f := range configFields() {
		if fs.Lookup(f.flagName) != nil {
			continue
		}
		fs.String(f.flagName, "", f.usage)
	}
}
