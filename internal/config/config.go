package config

// Config is the root configuration structure for gqltel
type Config struct {
	// Log configures the CLI's structured logging output
	Log LogConfig `koanf:"log"`

	// Telemetry configures the attribute-selector engine
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// LogConfig configures slog output
type LogConfig struct {
	// Level is the minimum log level: debug, info, warn, error
	Level string `koanf:"level" usage:"minimum log level: debug, info, warn, error"`

	// Format selects the handler: text or json
	Format string `koanf:"format" usage:"log output format: text, json"`
}

// TelemetryConfig holds the instrumentation surface
type TelemetryConfig struct {
	// Attributes maps attribute names to selectors, per pipeline tier
	Attributes AttributesConfig `koanf:"attributes"`
}

// AttributesConfig declares which attributes to extract at each tier.
// Keys are attribute names; values are raw selector objects whose variant
// is resolved by field presence at build time.
type AttributesConfig struct {
	Router     map[string]SelectorConfig `koanf:"router"`
	Supergraph map[string]SelectorConfig `koanf:"supergraph"`
	Subgraph   map[string]SelectorConfig `koanf:"subgraph"`
}

// SelectorConfig is one untagged selector object as it appears in the
// config file. Validation happens in NewAttributes, before any evaluation.
type SelectorConfig map[string]any

// Default returns a Config with production defaults.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
