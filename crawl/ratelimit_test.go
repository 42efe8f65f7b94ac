package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/covdoc/covdoc/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter(t *testing.T) {
	t.Parallel()

	t.Run("enforces the per-domain rate", func(t *testing.T) {
		t.Parallel()

		// 10 rps: three sequential requests need at least ~200ms.
		d := crawl.NewDomainLimiter(10)
		ctx := context.Background()

		start := time.Now()
		for range 3 {
			require.NoError(t, d.Wait(ctx, "hrcaonline.org"))
		}
		assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
	})

	t.Run("domains are limited independently", func(t *testing.T) {
		t.Parallel()

		d := crawl.NewDomainLimiter(1)
		ctx := context.Background()

		// First request to each domain consumes the initial token; neither
		// should wait on the other's bucket.
		start := time.Now()
		require.NoError(t, d.Wait(ctx, "a.example"))
		require.NoError(t, d.Wait(ctx, "b.example"))
		require.NoError(t, d.Wait(ctx, "c.example"))
		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})

	t.Run("returns when the context is canceled", func(t *testing.T) {
		t.Parallel()

		d := crawl.NewDomainLimiter(0.1) // one request per 10s
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		require.NoError(t, d.Wait(ctx, "a.example")) // initial token
		assert.Error(t, d.Wait(ctx, "a.example"))
	})
}
