package http_test

import (
	"context"
	"testing"
	"time"

	reghttp "github.com/carewatch/regrag/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("first request per domain is immediate", func(t *testing.T) {
		t.Parallel()

		limiter := reghttp.NewDomainLimiter(1.0)

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "example.gov"))
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("domains are limited independently", func(t *testing.T) {
		t.Parallel()

		limiter := reghttp.NewDomainLimiter(1.0)
		require.NoError(t, limiter.Wait(context.Background(), "a.gov"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "b.gov"))
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("second request to a domain waits", func(t *testing.T) {
		t.Parallel()

		limiter := reghttp.NewDomainLimiter(20.0) // 50ms between requests
		require.NoError(t, limiter.Wait(context.Background(), "c.gov"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "c.gov"))
		assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		limiter := reghttp.NewDomainLimiter(0.1) // 10s between requests
		require.NoError(t, limiter.Wait(context.Background(), "d.gov"))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		assert.Error(t, limiter.Wait(ctx, "d.gov"))
	})
}
