package sender

import (
	"context"
	"errors"
)

// Sender delivers one WhatsApp message. to is an E.164 number. The returned
// reference is the provider's message id.
type Sender interface {
	Send(ctx context.Context, to, body string) (providerRef string, err error)
}

// Error is a provider failure whose Message is safe to show to the caller.
type Error struct {
	Provider string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Provider + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Provider + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// ProviderMessage extracts the provider's own description of err, falling
// back to err.Error().
func ProviderMessage(err error) string {
	var se *Error
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return err.Error()
}
