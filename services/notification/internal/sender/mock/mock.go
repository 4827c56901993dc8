// Package mock provides a Sender that logs instead of calling a provider.
// It backs WHATSAPP_DRIVER=mock in local environments.
package mock

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type Sender struct {
	logger *slog.Logger
}

func NewSender(logger *slog.Logger) *Sender {
	return &Sender{logger: logger}
}

func (s *Sender) Send(ctx context.Context, to, body string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ref := "mock-" + uuid.NewString()
	s.logger.InfoContext(ctx, "mock whatsapp message",
		slog.String("to", to),
		slog.Int("body_length", len(body)),
		slog.String("provider_ref", ref),
	)
	return ref, nil
}
