package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	apperrors "github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/errors"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/pagination"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/payment/internal/domain"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/payment/internal/provider"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/payment/internal/repository"
)

var sessionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "payment_sessions_total",
	Help: "Checkout session requests by mode and outcome.",
}, []string{"mode", "outcome"})

// PaymentService hands out provider-hosted checkout links.
type PaymentService struct {
	gateway  provider.Gateway
	sessions repository.SessionRepository
	baseURL  string
	logger   *slog.Logger
	now      func() time.Time
}

// NewPaymentService creates the service. A nil gateway means no provider
// key is configured and every link request fails with FailedPrecondition.
func NewPaymentService(
	gateway provider.Gateway,
	sessions repository.SessionRepository,
	baseURL string,
	logger *slog.Logger,
) *PaymentService {
	return &PaymentService{
		gateway:  gateway,
		sessions: sessions,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

type PaymentLinkInput struct {
	UserID           string
	Amount           decimal.Decimal
	Currency         string
	OrderID          string
	ItemsDescription string
	SuccessURL       string
	CancelURL        string
}

type SubscriptionLinkInput struct {
	UserID   string
	VendorID string
	Email    string
	PriceID  string
}

// CreatePaymentLink creates a one-time checkout for an order total.
func (s *PaymentService) CreatePaymentLink(ctx context.Context, in PaymentLinkInput) (*domain.Session, error) {
	if !in.Amount.IsPositive() {
		return nil, apperrors.InvalidInput("amount must be greater than zero")
	}
	if !isCurrencyCode(in.Currency) {
		return nil, apperrors.InvalidInput("currency must be a 3-letter ISO code")
	}
	if strings.TrimSpace(in.OrderID) == "" {
		return nil, apperrors.InvalidInput("orderId is required")
	}
	unitAmount, err := domain.ToMinorUnits(in.Amount)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("amount must not exceed %s", decimal.New(domain.MaxMinorUnits, -2).StringFixed(2)))
	}
	if unitAmount < 1 {
		return nil, apperrors.InvalidInput("amount is below the smallest currency unit")
	}
	if s.gateway == nil {
		return nil, apperrors.FailedPrecondition("payment provider is not configured")
	}
	currency := strings.ToLower(in.Currency)
	metadata := map[string]string{
		"order_id": in.OrderID,
		"type":     domain.TypeOneTime,
	}

	successURL := in.SuccessURL
	if successURL == "" {
		successURL = s.baseURL + "/order-success?order_id=" + url.QueryEscape(in.OrderID)
	}
	cancelURL := in.CancelURL
	if cancelURL == "" {
		cancelURL = s.baseURL + "/cart"
	}

	cs, err := s.gateway.CreateCheckoutSession(ctx, &provider.CheckoutInput{
		Mode: domain.ModePayment,
		LineItem: &provider.LineItem{
			Name:        fmt.Sprintf("Commande #%s", in.OrderID),
			Description: in.ItemsDescription,
			UnitAmount:  unitAmount,
			Currency:    currency,
			Quantity:    1,
		},
		SuccessURL: successURL,
		CancelURL:  cancelURL,
		Metadata:   metadata,
	})
	if err != nil {
		sessionsTotal.WithLabelValues(domain.ModePayment, "error").Inc()
		s.logger.ErrorContext(ctx, "failed to create payment link",
			slog.String("order_id", in.OrderID),
			slog.String("error", err.Error()),
		)
		return nil, apperrors.Internal(err)
	}
	sessionsTotal.WithLabelValues(domain.ModePayment, "created").Inc()

	session := &domain.Session{
		ID:         uuid.NewString(),
		ProviderID: cs.ID,
		Provider:   s.gateway.Name(),
		UserID:     in.UserID,
		Mode:       domain.ModePayment,
		OrderID:    in.OrderID,
		Amount:     unitAmount,
		Currency:   currency,
		URL:        cs.URL,
		Metadata:   metadata,
		CreatedAt:  s.now(),
	}
	s.record(ctx, session)

	s.logger.InfoContext(ctx, "payment link created",
		slog.String("order_id", in.OrderID),
		slog.String("provider_session_id", cs.ID),
		slog.Int64("amount", unitAmount),
		slog.String("currency", currency),
	)
	return session, nil
}

// CreateVendorSubscriptionLink creates a recurring checkout for a vendor plan.
func (s *PaymentService) CreateVendorSubscriptionLink(ctx context.Context, in SubscriptionLinkInput) (*domain.Session, error) {
	if strings.TrimSpace(in.VendorID) == "" || strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.PriceID) == "" {
		return nil, apperrors.InvalidInput("vendorId, email and priceId are required")
	}
	if s.gateway == nil {
		return nil, apperrors.FailedPrecondition("payment provider is not configured")
	}

	metadata := map[string]string{
		"vendor_id": in.VendorID,
		"type":      domain.TypeVendorSubscription,
	}
	subscriptionMetadata := map[string]string{
		"vendor_id": in.VendorID,
		"type":      domain.TypeVendorSubscription,
	}

	cs, err := s.gateway.CreateCheckoutSession(ctx, &provider.CheckoutInput{
		Mode:                 domain.ModeSubscription,
		PriceID:              in.PriceID,
		CustomerEmail:        in.Email,
		SuccessURL:           s.baseURL + "/vendor/dashboard?subscription=success",
		CancelURL:            s.baseURL + "/vendor/dashboard?subscription=cancelled",
		Metadata:             metadata,
		SubscriptionMetadata: subscriptionMetadata,
	})
	if err != nil {
		sessionsTotal.WithLabelValues(domain.ModeSubscription, "error").Inc()
		s.logger.ErrorContext(ctx, "failed to create vendor subscription link",
			slog.String("vendor_id", in.VendorID),
			slog.String("error", err.Error()),
		)
		return nil, apperrors.Internal(err)
	}
	sessionsTotal.WithLabelValues(domain.ModeSubscription, "created").Inc()

	session := &domain.Session{
		ID:         uuid.NewString(),
		ProviderID: cs.ID,
		Provider:   s.gateway.Name(),
		UserID:     in.UserID,
		Mode:       domain.ModeSubscription,
		VendorID:   in.VendorID,
		URL:        cs.URL,
		Metadata:   metadata,
		CreatedAt:  s.now(),
	}
	s.record(ctx, session)

	s.logger.InfoContext(ctx, "vendor subscription link created",
		slog.String("vendor_id", in.VendorID),
		slog.String("provider_session_id", cs.ID),
	)
	return session, nil
}

// record stores the session for the caller's history. The link is valid
// whether or not the write succeeds.
func (s *PaymentService) record(ctx context.Context, session *domain.Session) {
	if err := s.sessions.Create(ctx, session); err != nil {
		s.logger.ErrorContext(ctx, "failed to record payment session",
			slog.String("provider_session_id", session.ProviderID),
			slog.String("error", err.Error()),
		)
	}
}

// ListSessions returns the caller's checkout sessions.
func (s *PaymentService) ListSessions(ctx context.Context, userID string, p pagination.Params) ([]domain.Session, int, error) {
	if userID == "" {
		return nil, 0, apperrors.Unauthorized("authentication required")
	}
	list, total, err := s.sessions.ListByUserID(ctx, userID, p)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return list, total, nil
}

func isCurrencyCode(c string) bool {
	if len(c) != 3 {
		return false
	}
	for _, r := range c {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
