package config

import (
	"context"
	"log/slog"
)

type configKey struct{}
type loggerKey struct{}

// WithConfig stores the config in a context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from a context, or a default-valued one
// when none is stored.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey{}).(*Config); ok {
		return cfg
	}
	return &Config{
		ProjectID: DefaultProjectID,
		Location:  DefaultLocation,
		Datasets:  DefaultDatasets,
		Backend:   DefaultBackend,
		Output:    DefaultOutput,
	}
}

// WithLogger stores the logger in a context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from a context, or slog.Default().
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
