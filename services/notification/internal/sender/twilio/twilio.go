// Package twilio sends WhatsApp messages through the Twilio Messages API.
package twilio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	twilio "github.com/twilio/twilio-go"
	"github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/breaker"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/notification/internal/sender"
)

const (
	providerName = "twilio"
	addrPrefix   = "whatsapp:"
)

type Config struct {
	AccountSID string
	AuthToken  string
	// From is the sender number, with or without the "whatsapp:" prefix.
	From string
}

// Configured reports whether every credential is present.
func (c Config) Configured() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.From != ""
}

// messageCreator is the part of the Twilio API service the sender uses.
type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

type Sender struct {
	api     messageCreator
	from    string
	breaker *breaker.Breaker
	logger  *slog.Logger
}

func NewSender(cfg Config, logger *slog.Logger) *Sender {
	rest := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return newSender(rest.Api, cfg.From, logger)
}

func newSender(api messageCreator, from string, logger *slog.Logger) *Sender {
	bcfg := breaker.DefaultConfig("twilio-whatsapp")
	bcfg.Ignore = isClientError
	return &Sender{
		api:     api,
		from:    whatsappAddr(from),
		breaker: breaker.New(bcfg, logger),
		logger:  logger,
	}
}

// Send makes exactly one API call. The Twilio client takes no context, so
// cancellation is only honoured before the call.
func (s *Sender) Send(ctx context.Context, to, body string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(whatsappAddr(to))
	params.SetFrom(s.from)
	params.SetBody(body)

	var msg *openapi.ApiV2010Message
	err := s.breaker.Do(func() error {
		var err error
		msg, err = s.api.CreateMessage(params)
		return err
	})
	if err != nil {
		return "", wrapError(err)
	}
	if msg == nil || msg.Sid == nil {
		return "", &sender.Error{Provider: providerName, Message: "provider returned no message id"}
	}

	s.logger.DebugContext(ctx, "twilio message created", slog.String("sid", *msg.Sid))
	return *msg.Sid, nil
}

func whatsappAddr(number string) string {
	if len(number) >= len(addrPrefix) && number[:len(addrPrefix)] == addrPrefix {
		return number
	}
	return addrPrefix + number
}

// isClientError reports 4xx responses: bad number, unverified sender. They
// say nothing about Twilio's health.
func isClientError(err error) bool {
	var rest *client.TwilioRestError
	if errors.As(err, &rest) {
		return rest.Status >= http.StatusBadRequest && rest.Status < http.StatusInternalServerError
	}
	return false
}

func wrapError(err error) error {
	var rest *client.TwilioRestError
	if errors.As(err, &rest) {
		return &sender.Error{Provider: providerName, Message: rest.Message, Err: err}
	}
	if errors.Is(err, breaker.ErrOpen) {
		return &sender.Error{Provider: providerName, Message: "WhatsApp provider temporarily unavailable", Err: err}
	}
	return &sender.Error{Provider: providerName, Message: fmt.Sprintf("send failed: %v", err), Err: err}
}
