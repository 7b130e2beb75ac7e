package fetcher

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiter_DefaultRate(t *testing.T) {
	r := NewRateLimiter(0)

	assert.Equal(t, DefaultRate, float64(r.bucket.Limit()))
	assert.Equal(t, 1, r.bucket.Burst())
}

func TestRateLimiter_WaitFirstRequestImmediate(t *testing.T) {
	r := NewRateLimiter(1)

	start := time.Now()
	require.NoError(t, r.Wait(context.Background()))
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestRateLimiter_WaitCancelled(t *testing.T) {
	r := NewRateLimiter(0.01)
	require.NoError(t, r.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, r.Wait(ctx))
}

func TestRateLimiter_UpdateFromResponse(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		header  string
		blocked bool
	}{
		{"429 with retry-after", http.StatusTooManyRequests, "30", true},
		{"429 without header", http.StatusTooManyRequests, "", false},
		{"429 with date header", http.StatusTooManyRequests, "Wed, 21 Oct 2015 07:28:00 GMT", false},
		{"200 ignores header", http.StatusOK, "30", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRateLimiter(1)
			resp := &http.Response{StatusCode: tt.status, Header: http.Header{}}
			if tt.header != "" {
				resp.Header.Set(HeaderRetryAfter, tt.header)
			}

			r.UpdateFromResponse(resp)

			assert.Equal(t, tt.blocked, r.BlockedUntil().After(time.Now()))
		})
	}

	NewRateLimiter(1).UpdateFromResponse(nil)
}

func TestRateLimiter_BlockedWaitHonoursContext(t *testing.T) {
	r := NewRateLimiter(1)
	resp := &http.Response{StatusCode: http.StatusTooManyRequests, Header: http.Header{}}
	resp.Header.Set(HeaderRetryAfter, "60")
	r.UpdateFromResponse(resp)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := r.Wait(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestRateLimiter_NilIsNoop(t *testing.T) {
	var r *RateLimiter

	assert.NoError(t, r.Wait(context.Background()))
	r.UpdateFromResponse(&http.Response{StatusCode: http.StatusTooManyRequests})
}
