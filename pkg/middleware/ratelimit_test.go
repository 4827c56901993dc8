package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIPRateLimiter_BurstThenReject(t *testing.T) {
	l := NewIPRateLimiter(1, 2, time.Minute)
	frozen := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return frozen }

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"), "buckets are per IP")

	frozen = frozen.Add(time.Second)
	assert.True(t, l.Allow("10.0.0.1"), "one token refills per second")
}

func TestIPRateLimiter_Sweep(t *testing.T) {
	l := NewIPRateLimiter(10, 10, time.Minute)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Allow("10.0.0.1")
	now = now.Add(30 * time.Second)
	l.Allow("10.0.0.2")
	now = now.Add(45 * time.Second)
	l.Sweep()

	assert.Equal(t, 1, l.size())
}

func TestRateLimit_Returns429(t *testing.T) {
	var buf bytes.Buffer
	l := NewIPRateLimiter(1, 1, time.Minute)
	h := RateLimit(l, newTestLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:5000"

	first := httptest.NewRecorder()
	h.ServeHTTP(first, req)
	second := httptest.NewRecorder()
	h.ServeHTTP(second, req)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))
	assert.Contains(t, second.Body.String(), "RESOURCE_EXHAUSTED")
}
