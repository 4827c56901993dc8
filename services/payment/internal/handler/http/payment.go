package http

import (
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/httputil"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/middleware"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/pagination"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/validator"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/payment/internal/service"
)

// CreatePaymentLinkRequest is the body of POST /api/v1/payments/links.
type CreatePaymentLinkRequest struct {
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency" validate:"required,len=3"`
	OrderID          string          `json:"orderId" validate:"required,max=64"`
	ItemsDescription string          `json:"itemsDescription" validate:"max=500"`
	SuccessURL       string          `json:"successUrl" validate:"omitempty,url"`
	CancelURL        string          `json:"cancelUrl" validate:"omitempty,url"`
}

// CreateSubscriptionLinkRequest is the body of POST /api/v1/payments/vendor-subscriptions.
type CreateSubscriptionLinkRequest struct {
	VendorID string `json:"vendorId" validate:"required,max=64"`
	Email    string `json:"email" validate:"required,email"`
	PriceID  string `json:"priceId" validate:"required,max=128"`
}

type LinkResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"sessionId"`
}

// PaymentHandler handles HTTP requests for payment link endpoints.
type PaymentHandler struct {
	service *service.PaymentService
	logger  *slog.Logger
}

func NewPaymentHandler(svc *service.PaymentService, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{service: svc, logger: logger}
}

// CreatePaymentLink handles POST /api/v1/payments/links
func (h *PaymentHandler) CreatePaymentLink(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentLinkRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	session, err := h.service.CreatePaymentLink(r.Context(), service.PaymentLinkInput{
		UserID:           middleware.UserIDFromContext(r.Context()),
		Amount:           req.Amount,
		Currency:         req.Currency,
		OrderID:          req.OrderID,
		ItemsDescription: req.ItemsDescription,
		SuccessURL:       req.SuccessURL,
		CancelURL:        req.CancelURL,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: LinkResponse{
		URL:       session.URL,
		SessionID: session.ProviderID,
	}})
}

// CreateVendorSubscriptionLink handles POST /api/v1/payments/vendor-subscriptions
func (h *PaymentHandler) CreateVendorSubscriptionLink(w http.ResponseWriter, r *http.Request) {
	var req CreateSubscriptionLinkRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	session, err := h.service.CreateVendorSubscriptionLink(r.Context(), service.SubscriptionLinkInput{
		UserID:   middleware.UserIDFromContext(r.Context()),
		VendorID: req.VendorID,
		Email:    req.Email,
		PriceID:  req.PriceID,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: LinkResponse{
		URL:       session.URL,
		SessionID: session.ProviderID,
	}})
}

// ListSessions handles GET /api/v1/payments/links
func (h *PaymentHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	p := pagination.FromRequest(r)

	list, total, err := h.service.ListSessions(r.Context(), middleware.UserIDFromContext(r.Context()), p)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: pagination.NewResult(list, total, p)})
}
