package cmd

import (
	"context"

	"github.com/salmonumbrella/tabtex/internal/config"
)

type (
	errorFormatKey struct{}
	configKey      struct{}
	configPathKey  struct{}
)

// WithErrorFormat stores the error format in the context.
func WithErrorFormat(ctx context.Context, format string) context.Context {
	return context.WithValue(ctx, errorFormatKey{}, format)
}

// ErrorFormatFromContext retrieves the error format from context.
func ErrorFormatFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(errorFormatKey{}).(string); ok {
		return v
	}
	return ""
}

// WithConfig stores loaded CLI config in context for downstream helpers.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// ConfigFromContext retrieves CLI config from context. It never returns nil.
func ConfigFromContext(ctx context.Context) *config.Config {
	if v, ok := ctx.Value(configKey{}).(*config.Config); ok && v != nil {
		return v
	}
	return &config.Config{}
}

// WithConfigPath stores the config file path in effect for this run.
func WithConfigPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, configPathKey{}, path)
}

// ConfigPathFromContext returns the config file path, falling back to the default.
func ConfigPathFromContext(ctx context.Context) (string, error) {
	if v, ok := ctx.Value(configPathKey{}).(string); ok && v != "" {
		return v, nil
	}
	return config.DefaultConfigPath()
}
