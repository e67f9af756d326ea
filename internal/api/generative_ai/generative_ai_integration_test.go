//go:build integration

package generativeAI

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if os.Getenv("VOYAGE_GENERATIVEAI_APIKEY") == "" {
		// Skip all tests if no API key is provided
		os.Exit(0)
	}

	os.Exit(m.Run())
}

func TestGeminiInvoker_Integration(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	invoker, err := NewGeminiInvoker(ctx, os.Getenv("VOYAGE_GENERATIVEAI_APIKEY"), "", 0.1, logger)
	require.NoError(t, err)
	assert.Equal(t, defaultGeminiModel, invoker.model)

	t.Run("Returns a JSON document", func(t *testing.T) {
		text, err := invoker.Invoke(ctx, `Return a JSON object {"capital": "<capital of Portugal>"}.`)
		require.NoError(t, err)

		var doc map[string]string
		require.NoError(t, json.Unmarshal([]byte(text), &doc))
		assert.Contains(t, doc["capital"], "Lisbon")
	})
}
