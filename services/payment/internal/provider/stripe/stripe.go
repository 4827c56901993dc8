// Package stripe creates hosted checkout sessions through the Stripe API.
package stripe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"

	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/breaker"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/httpclient"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/payment/internal/provider"
)

type Config struct {
	SecretKey string
	// APIURL overrides the Stripe endpoint; empty means api.stripe.com.
	APIURL string
	HTTP   httpclient.Config
}

// Gateway implements provider.Gateway on top of Stripe Checkout.
type Gateway struct {
	sessions *session.Client
	breaker  *breaker.Breaker
	logger   *slog.Logger
}

func NewGateway(cfg Config, logger *slog.Logger) *Gateway {
	backendCfg := &stripe.BackendConfig{
		HTTPClient:        httpclient.New(cfg.HTTP),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     leveledLogger{logger: logger},
	}
	if cfg.APIURL != "" {
		backendCfg.URL = stripe.String(cfg.APIURL)
	}

	bcfg := breaker.DefaultConfig("stripe-checkout")
	bcfg.Ignore = isClientError

	return &Gateway{
		sessions: &session.Client{
			B:   stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg),
			Key: cfg.SecretKey,
		},
		breaker: breaker.New(bcfg, logger),
		logger:  logger,
	}
}

func (g *Gateway) Name() string {
	return "stripe"
}

func (g *Gateway) CreateCheckoutSession(ctx context.Context, in *provider.CheckoutInput) (*provider.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(in.Mode),
		SuccessURL: stripe.String(in.SuccessURL),
		CancelURL:  stripe.String(in.CancelURL),
	}
	params.Context = ctx

	switch {
	case in.LineItem != nil:
		li := in.LineItem
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(li.Name),
		}
		if li.Description != "" {
			productData.Description = stripe.String(li.Description)
		}
		params.LineItems = []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(li.Currency),
				ProductData: productData,
				UnitAmount:  stripe.Int64(li.UnitAmount),
			},
			Quantity: stripe.Int64(li.Quantity),
		}}
	case in.PriceID != "":
		params.LineItems = []*stripe.CheckoutSessionLineItemParams{{
			Price:    stripe.String(in.PriceID),
			Quantity: stripe.Int64(1),
		}}
	default:
		return nil, errors.New("checkout input has neither line item nor price")
	}

	if in.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(in.CustomerEmail)
	}
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}
	if len(in.SubscriptionMetadata) > 0 {
		params.SubscriptionData = &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: in.SubscriptionMetadata,
		}
	}

	var s *stripe.CheckoutSession
	err := g.breaker.Do(func() error {
		var err error
		s, err = g.sessions.New(params)
		return err
	})
	if err != nil {
		var se *stripe.Error
		if errors.As(err, &se) {
			return nil, fmt.Errorf("stripe checkout session: %s (status %d, code %s): %w", se.Msg, se.HTTPStatusCode, se.Code, err)
		}
		return nil, fmt.Errorf("stripe checkout session: %w", err)
	}

	g.logger.DebugContext(ctx, "stripe checkout session created",
		slog.String("session_id", s.ID),
		slog.String("mode", in.Mode),
	)
	return &provider.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

// isClientError reports 4xx answers (bad currency, unknown price). They do
// not count against Stripe's health.
func isClientError(err error) bool {
	var se *stripe.Error
	if errors.As(err, &se) {
		return se.HTTPStatusCode >= http.StatusBadRequest && se.HTTPStatusCode < http.StatusInternalServerError
	}
	return false
}

// leveledLogger routes the Stripe client's own logging into slog.
type leveledLogger struct {
	logger *slog.Logger
}

func (l leveledLogger) Debugf(format string, v ...any) {
	l.logger.Debug(fmt.Sprintf(format, v...), slog.String("component", "stripe"))
}

func (l leveledLogger) Infof(format string, v ...any) {
	l.logger.Debug(fmt.Sprintf(format, v...), slog.String("component", "stripe"))
}

func (l leveledLogger) Warnf(format string, v ...any) {
	l.logger.Warn(fmt.Sprintf(format, v...), slog.String("component", "stripe"))
}

func (l leveledLogger) Errorf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...), slog.String("component", "stripe"))
}
