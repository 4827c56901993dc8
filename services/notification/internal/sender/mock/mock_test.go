package mock

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend(t *testing.T) {
	s := NewSender(slog.New(slog.NewTextHandler(io.Discard, nil)))

	ref, err := s.Send(context.Background(), "+50937001234", "hello")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "mock-"))
}

func TestSend_CanceledContext(t *testing.T) {
	s := NewSender(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Send(ctx, "+50937001234", "hello")
	assert.ErrorIs(t, err, context.Canceled)
}
