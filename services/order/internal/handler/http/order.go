package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	apperrors "github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/errors"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/httputil"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/middleware"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/pagination"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/validator"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/order/internal/domain"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/order/internal/service"
)

// OrderHandler handles HTTP requests for order endpoints.
type OrderHandler struct {
	service *service.OrderService
	logger  *slog.Logger
}

func NewOrderHandler(svc *service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{service: svc, logger: logger}
}

// --- Request DTOs ---

// CreateOrderItemRequest is one cart line. Price fields sent by the client
// are not decoded.
type CreateOrderItemRequest struct {
	ProductID string   `json:"productId" validate:"required,max=128"`
	VariantID string   `json:"variantId" validate:"max=128"`
	Quantity  *float64 `json:"quantity"`
}

type CustomerDetailsRequest struct {
	Name        string `json:"name" validate:"max=200"`
	Phone       string `json:"phone" validate:"max=32"`
	Email       string `json:"email" validate:"omitempty,email"`
	Address     string `json:"address" validate:"max=500"`
	PickupHubID string `json:"pickupHubId" validate:"max=64"`
}

type CreateOrderRequest struct {
	Items           []CreateOrderItemRequest `json:"items" validate:"required,min=1,max=100,dive"`
	CustomerDetails *CustomerDetailsRequest  `json:"customerDetails"`
}

// CreateOrderResponse is the creation result.
type CreateOrderResponse struct {
	OrderID    string  `json:"orderId"`
	TotalPrice float64 `json:"totalPrice"`
	Status     string  `json:"status"`
}

// --- Handlers ---

// CreateOrder handles POST /api/v1/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	input := service.CreateOrderInput{
		UserID: middleware.UserIDFromContext(r.Context()),
		Items:  make([]service.CreateOrderItemInput, len(req.Items)),
	}
	for i, it := range req.Items {
		input.Items[i] = service.CreateOrderItemInput{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
		}
	}
	if d := req.CustomerDetails; d != nil {
		input.CustomerDetails = &domain.CustomerDetails{
			Name:        d.Name,
			Phone:       d.Phone,
			Email:       d.Email,
			Address:     d.Address,
			PickupHubID: d.PickupHubID,
		}
	}

	order, err := h.service.CreateOrder(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: CreateOrderResponse{
		OrderID:    order.ID,
		TotalPrice: order.TotalPrice.InexactFloat64(),
		Status:     order.Status,
	}})
}

// ListOrders handles GET /api/v1/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	p := pagination.FromRequest(r)

	orders, total, err := h.service.ListOrders(r.Context(), middleware.UserIDFromContext(r.Context()), p)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: pagination.NewResult(orders, total, p)})
}

// GetOrder handles GET /api/v1/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("order id must be a UUID"), h.logger)
		return
	}

	order, err := h.service.GetOrder(r.Context(), middleware.UserIDFromContext(r.Context()), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}

// ListPickupHubs handles GET /api/v1/pickup-hubs
func (h *OrderHandler) ListPickupHubs(w http.ResponseWriter, r *http.Request) {
	hubs, err := h.service.ListPickupHubs(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: hubs})
}
