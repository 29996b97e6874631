package config

import (
	"fmt"
	"log/slog"
	"os"
)

// Provider constructs application components from configuration
// This is the main entry point for building a configured gqltel instance
type Provider struct {
	config *Config

	// Lazily constructed components (cached after first call)
	attributes *Attributes
	logger     *slog.Logger
}

// NewProvider creates a new provider from configuration
func NewProvider(config *Config) *Provider {
	return &Provider{
		config: config,
	}
}

// Attributes returns the compiled attribute selector sets
func (p *Provider) Attributes() (*Attributes, error) {
	if p.attributes != nil {
		return p.attributes, nil
	}

	attrs, err := NewAttributes(p.config.Telemetry.Attributes)
	if err != nil {
		return nil, fmt.Errorf("failed to build telemetry attributes: %w", err)
	}

	p.attributes = attrs
	return attrs, nil
}

// Logger returns a slog logger configured per the log section
func (p *Provider) Logger() (*slog.Logger, error) {
	if p.logger != nil {
		return p.logger, nil
	}

	var level slog.Level
	switch p.config.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "info", "":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level: %q (supported: debug, info, warn, error)", p.config.Log.Level)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch p.config.Log.Format {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	case "text", "":
		handler = slog.NewTextHandler(os.Stderr, opts)
	default:
		return nil, fmt.Errorf("unknown log format: %q (supported: text, json)", p.config.Log.Format)
	}

	p.logger = slog.New(handler)
	return p.logger, nil
}
