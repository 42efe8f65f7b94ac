package gemini_test

import (
	"context"
	"testing"

	"github.com/covdoc/covdoc"
	"github.com/covdoc/covdoc/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCounter_CountTokens(t *testing.T) {
	t.Parallel()

	// Use a real model name that the tokenizer supports
	tc, err := gemini.NewTokenCounter("gemini-2.0-flash")
	require.NoError(t, err)

	// Verify it implements the interface
	var _ covdoc.TokenCounter = tc

	t.Run("counts tokens in text", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "Fences must be Highlands Ranch Brown.")

		require.NoError(t, err)
		assert.Positive(t, count)
	})

	t.Run("empty string returns zero", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "")

		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("longer text returns more tokens", func(t *testing.T) {
		t.Parallel()

		shortCount, err := tc.CountTokens(context.Background(), "Fence")
		require.NoError(t, err)

		longCount, err := tc.CountTokens(context.Background(), "Fences visible from the street shall be painted an approved color and maintained in good repair at all times.")
		require.NoError(t, err)

		assert.Greater(t, longCount, shortCount)
	})
}
