package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/mercato-api/mercato/internal/config"
	"github.com/mercato-api/mercato/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
	}{
		{name: "debug level", logLevel: "debug"},
		{name: "info level", logLevel: "info"},
		{name: "warn level", logLevel: "warn"},
		{name: "error level", logLevel: "error"},
		{name: "mixed case", logLevel: "DEBUG"},
		{name: "invalid level falls back to info", logLevel: "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := logger.Setup(config.ServerConfig{Port: 8080, LogLevel: tt.logLevel})
			require.NoError(t, err)
			require.NotNil(t, log)
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	t.Run("returns stored logger", func(t *testing.T) {
		t.Parallel()
		stored := slog.Default().With("component", "test")
		ctx := logger.WithContext(context.Background(), stored)
		assert.Same(t, stored, logger.FromContext(ctx))
	})

	t.Run("falls back to default", func(t *testing.T) {
		t.Parallel()
		assert.NotNil(t, logger.FromContext(context.Background()))
	})
}

func TestFromContextOrDefault(t *testing.T) {
	t.Parallel()

	fallback := slog.Default().With("component", "fallback")

	t.Run("prefers context logger", func(t *testing.T) {
		t.Parallel()
		stored := slog.Default().With("component", "stored")
		ctx := logger.WithContext(context.Background(), stored)
		assert.Same(t, stored, logger.FromContextOrDefault(ctx, fallback))
	})

	t.Run("uses fallback when context is empty", func(t *testing.T) {
		t.Parallel()
		assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
	})

	t.Run("nil fallback yields default", func(t *testing.T) {
		t.Parallel()
		assert.NotNil(t, logger.FromContextOrDefault(context.Background(), nil))
	})
}
