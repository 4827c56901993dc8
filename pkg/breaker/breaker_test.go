package breaker

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
)

var (
	errGateway  = errors.New("503 from gateway")
	errDeclined = errors.New("card declined")
)

func newTestBreaker() *Breaker {
	cfg := DefaultConfig("test-gateway")
	cfg.MinRequests = 2
	cfg.Timeout = time.Hour
	cfg.Ignore = func(err error) bool { return errors.Is(err, errDeclined) }
	return New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestBreaker_OpensAfterFailures(t *testing.T) {
	b := newTestBreaker()

	assert.ErrorIs(t, b.Do(func() error { return errGateway }), errGateway)
	assert.ErrorIs(t, b.Do(func() error { return errGateway }), errGateway)
	assert.Equal(t, gobreaker.StateOpen, b.State())

	called := false
	err := b.Do(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrOpen)
	assert.False(t, called, "open breaker must not reach the gateway")
}

func TestBreaker_IgnoredErrorsDoNotTrip(t *testing.T) {
	b := newTestBreaker()

	for i := 0; i < 5; i++ {
		assert.ErrorIs(t, b.Do(func() error { return errDeclined }), errDeclined)
	}
	assert.Equal(t, gobreaker.StateClosed, b.State())
}

func TestBreaker_CallsOnce(t *testing.T) {
	b := newTestBreaker()
	calls := 0

	_ = b.Do(func() error { calls++; return errGateway })

	assert.Equal(t, 1, calls)
}
