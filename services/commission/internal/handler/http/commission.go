package http

import (
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/httputil"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/middleware"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/pagination"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/validator"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/commission/internal/domain"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/commission/internal/service"
)

// QuoteRequest is the body of POST /api/v1/commissions/quote.
type QuoteRequest struct {
	Category string           `json:"category" validate:"max=64"`
	Amount   *decimal.Decimal `json:"amount" validate:"required"`
}

type RatesResponse struct {
	Rates   map[string]decimal.Decimal `json:"rates"`
	Default decimal.Decimal            `json:"default"`
}

// CommissionHandler handles HTTP requests for commission endpoints.
type CommissionHandler struct {
	service *service.CommissionService
	logger  *slog.Logger
}

func NewCommissionHandler(svc *service.CommissionService, logger *slog.Logger) *CommissionHandler {
	return &CommissionHandler{service: svc, logger: logger}
}

// GetRates handles GET /api/v1/commissions/rates
func (h *CommissionHandler) GetRates(w http.ResponseWriter, r *http.Request) {
	rates := h.service.Rates()
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: RatesResponse{
		Rates:   rates,
		Default: rates[domain.DefaultCategory],
	}})
}

// Quote handles POST /api/v1/commissions/quote
func (h *CommissionHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	q, err := h.service.Quote(req.Category, *req.Amount)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: q})
}

// ListCommissions handles GET /api/v1/commissions
func (h *CommissionHandler) ListCommissions(w http.ResponseWriter, r *http.Request) {
	var caller service.Caller
	if c := middleware.ClaimsFromContext(r.Context()); c != nil {
		caller = service.Caller{UserID: c.UserID, Role: c.Role}
	}
	p := pagination.FromRequest(r)

	list, total, err := h.service.ListCommissions(r.Context(), caller, r.URL.Query().Get("beneficiary_id"), p)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: pagination.NewResult(list, total, p)})
}
