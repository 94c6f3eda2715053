package logging_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/equiref/diverso/pkg/logging"
)

func TestContextFunctions(t *testing.T) {
	t.Run("WithRunID adds run ID to context and logger", func(t *testing.T) {
		testLogger := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), testLogger.Logger)
		ctx = logging.WithRunID(ctx, "7b6a4a2e")

		assert.Equal(t, "7b6a4a2e", logging.RunID(ctx))

		logging.FromContext(ctx).Info().Msg("run started")
		assert.True(t, testLogger.Contains("7b6a4a2e"))
	})

	t.Run("RunID is empty without context value", func(t *testing.T) {
		assert.Empty(t, logging.RunID(context.Background()))
	})

	t.Run("WithFields adds custom fields to context", func(t *testing.T) {
		testLogger := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), testLogger.Logger)
		ctx = logging.WithFields(ctx, map[string]any{
			"rows":    12,
			"path":    "survey.csv",
			"dry_run": true,
		})

		logging.FromContext(ctx).Info().Msg("loaded")
		assert.True(t, testLogger.Contains("survey.csv"))
		assert.True(t, testLogger.Contains("12"))
	})

	t.Run("FromContext falls back to default", func(t *testing.T) {
		assert.NotNil(t, logging.FromContext(context.Background()))
		assert.NotNil(t, logging.FromContext(nil)) //nolint:staticcheck // exercising the nil guard
	})

	t.Run("Ctx extracts logger from context", func(t *testing.T) {
		ctx := logging.WithDataset(context.Background(), "recruitment")
		assert.NotNil(t, logging.Ctx(ctx))
	})

	t.Run("WithError ignores nil errors", func(t *testing.T) {
		ctx := context.Background()
		assert.Equal(t, ctx, logging.WithError(ctx, nil))
	})

	t.Run("chaining context functions", func(t *testing.T) {
		testLogger := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), testLogger.Logger)
		ctx = logging.WithDataset(ctx, "survey")
		ctx = logging.WithStage(ctx, "merge")
		ctx = logging.WithPath(ctx, "/data/survey.csv")

		logging.FromContext(ctx).Info().Msg("chained")
		assert.True(t, testLogger.Contains("merge"))
		assert.True(t, testLogger.Contains("/data/survey.csv"))
	})
}
