package http

import (
	"log/slog"
	"net/http"

	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/httputil"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/middleware"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/pagination"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/validator"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/notification/internal/service"
)

// SendWhatsAppRequest is the body of POST /api/v1/notifications/whatsapp.
type SendWhatsAppRequest struct {
	To       string         `json:"to" validate:"required,max=32"`
	Template string         `json:"template" validate:"required,max=64"`
	Data     map[string]any `json:"data" validate:"required"`
}

type SendWhatsAppResponse struct {
	Success           bool   `json:"success"`
	Status            string `json:"status"`
	ProviderReference string `json:"providerReference"`
	// TwilioSid duplicates ProviderReference for older clients.
	TwilioSid string `json:"twilioSid"`
	Message   string `json:"message"`
}

// NotificationHandler handles HTTP requests for notification endpoints.
type NotificationHandler struct {
	service *service.NotificationService
	logger  *slog.Logger
}

func NewNotificationHandler(svc *service.NotificationService, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{service: svc, logger: logger}
}

// SendWhatsApp handles POST /api/v1/notifications/whatsapp
func (h *NotificationHandler) SendWhatsApp(w http.ResponseWriter, r *http.Request) {
	var req SendWhatsAppRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	res, err := h.service.SendWhatsApp(r.Context(), service.SendWhatsAppInput{
		UserID:   middleware.UserIDFromContext(r.Context()),
		To:       req.To,
		Template: req.Template,
		Data:     req.Data,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: SendWhatsAppResponse{
		Success:           res.Success,
		Status:            res.Status,
		ProviderReference: res.ProviderReference,
		TwilioSid:         res.ProviderReference,
		Message:           res.Message,
	}})
}

// ListNotifications handles GET /api/v1/notifications
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	p := pagination.FromRequest(r)

	list, total, err := h.service.ListNotifications(r.Context(), middleware.UserIDFromContext(r.Context()), p)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: pagination.NewResult(list, total, p)})
}
