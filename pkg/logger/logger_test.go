package logger_test

import (
	"context"
	"finplan/pkg/logger"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		level       string
		wantErr     bool
	}{
		{name: "development", environment: logger.DevelopmentEnvironment},
		{name: "production", environment: logger.ProductionEnvironment},
		{name: "explicit level", environment: logger.ProductionEnvironment, level: "warn"},
		{name: "bad level", environment: logger.DevelopmentEnvironment, level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := logger.Setup(tt.environment, tt.level)
			if tt.wantErr {
				require.Error(t, err)

				return
			}
			require.NoError(t, err)
			require.NotNil(t, logger.Get(context.Background()))
		})
	}
}

func TestSetup_LevelOverride(t *testing.T) {
	require.NoError(t, logger.Setup(logger.DevelopmentEnvironment, "error"))
	require.False(t, logger.IsDebug(context.Background()))

	require.NoError(t, logger.Setup(logger.DevelopmentEnvironment, ""))
	require.True(t, logger.IsDebug(context.Background()))
}

func TestWithLogger(t *testing.T) {
	ctx := context.Background()
	customLogger := zap.NewExample()

	ctxWithLogger := logger.WithLogger(ctx, customLogger)
	require.Equal(t, customLogger, logger.Get(ctxWithLogger))
}

func TestWithFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))

	ctx = logger.WithFields(ctx, zap.String("session", "s-1"))
	logger.Info(ctx, "submitted")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "submitted", entries[0].Message)
	require.Equal(t, "s-1", entries[0].ContextMap()["session"])
}

func TestLoggingFunctions(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))

	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	logger.Warn(ctx, "warn message")
	logger.Error(ctx, "error message")

	require.Equal(t, 4, logs.Len())
	require.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}
