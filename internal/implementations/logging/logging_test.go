package logging

import (
	"context"
	"errors"
	"pwreset/internal/core/domain/logging"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestEntriesBecomeFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewZapLoggerFromCore(zap.New(core))

	logger.Info(
		context.Background(),
		"Password reset link has been sent to the user.",
		logging.Entry("userID", 42),
		logging.Entry("err", errors.New("boom")),
	)

	require.Equal(t, 1, logs.Len())
	record := logs.All()[0]
	require.Equal(t, zapcore.InfoLevel, record.Level)
	require.Equal(t, "Password reset link has been sent to the user.", record.Message)

	fields := record.ContextMap()
	require.EqualValues(t, 42, fields["userID"])
	require.Equal(t, "boom", fields["err"])
}

func TestLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewZapLoggerFromCore(zap.New(core))
	ctx := context.Background()

	logger.Debug(ctx, "debug")
	logger.Info(ctx, "info")
	logger.Warning(ctx, "warning")
	logger.Error(ctx, "error")

	levels := make([]zapcore.Level, 0, logs.Len())
	for _, record := range logs.All() {
		levels = append(levels, record.Level)
	}
	require.Equal(
		t,
		[]zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel},
		levels,
	)
}

func TestNewZapLogger(t *testing.T) {
	logger, err := NewZapLogger("warn")
	require.Nil(t, err)
	require.NotNil(t, logger)

	_, err = NewZapLogger("loud")
	require.NotNil(t, err)
}
