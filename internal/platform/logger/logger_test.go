package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetup_SetsDefaultLogger(t *testing.T) {
	log := Setup("debug")
	assert.NotNil(t, log)
	assert.Same(t, log, slog.Default())
	assert.True(t, log.Enabled(context.Background(), slog.LevelDebug))
}

func TestSetup_InvalidLevelFallsBackToInfo(t *testing.T) {
	log := Setup("loud")
	assert.False(t, log.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, log.Enabled(context.Background(), slog.LevelInfo))
}

func TestContextPropagation(t *testing.T) {
	scoped := slog.Default().With(slog.String("component", "test"))

	ctx := WithLogger(context.Background(), scoped)
	assert.Same(t, scoped, FromContext(ctx))
	assert.Same(t, scoped, FromContextOrDefault(ctx, nil))

	// Without a logger in the context the fallback applies.
	fallback := slog.Default().With(slog.String("component", "fallback"))
	assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
	assert.Same(t, slog.Default(), FromContextOrDefault(context.Background(), nil))
}
