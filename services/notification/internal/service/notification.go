package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperrors "github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/errors"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/pagination"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/notification/internal/domain"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/notification/internal/repository"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/notification/internal/sender"
)

var messagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "whatsapp_messages_total",
	Help: "WhatsApp send attempts by outcome.",
}, []string{"status"})

const statusRateLimited = "rate_limited"

// NotificationService dispatches WhatsApp messages and keeps their audit log.
type NotificationService struct {
	repo   repository.NotificationRepository
	sender sender.Sender
	logger *slog.Logger
	now    func() time.Time
}

// NewNotificationService creates the service. A nil sender means the
// provider is not configured: every send fails with FailedPrecondition.
func NewNotificationService(repo repository.NotificationRepository, s sender.Sender, logger *slog.Logger) *NotificationService {
	return &NotificationService{
		repo:   repo,
		sender: s,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

type SendWhatsAppInput struct {
	UserID   string
	To       string
	Template string
	Data     map[string]any
}

type SendResult struct {
	Success           bool   `json:"success"`
	Status            string `json:"status"`
	ProviderReference string `json:"providerReference"`
	Message           string `json:"message"`
}

// SendWhatsApp sends data["message"] to the given number. The gateway is
// called at most once; every attempt leaves one audit record.
func (s *NotificationService) SendWhatsApp(ctx context.Context, in SendWhatsAppInput) (*SendResult, error) {
	if in.UserID == "" {
		return nil, apperrors.Unauthorized("authentication required")
	}
	if strings.TrimSpace(in.To) == "" || strings.TrimSpace(in.Template) == "" {
		return nil, apperrors.InvalidInput("to and template are required")
	}
	body, _ := in.Data["message"].(string)
	if strings.TrimSpace(body) == "" {
		return nil, apperrors.InvalidInput("data.message is required")
	}

	now := s.now()
	recent, err := s.repo.CountSince(ctx, in.UserID, domain.ChannelWhatsApp, now.Add(-domain.RateLimitWindow))
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if recent >= domain.RateLimitMax {
		messagesTotal.WithLabelValues(statusRateLimited).Inc()
		return nil, apperrors.ResourceExhausted("too many WhatsApp messages, try again in a minute")
	}

	to := domain.NormalizePhone(in.To)

	if s.sender == nil {
		return nil, apperrors.FailedPrecondition("WhatsApp provider is not configured")
	}

	record := &domain.Notification{
		ID:        uuid.NewString(),
		UserID:    in.UserID,
		Type:      domain.ChannelWhatsApp,
		To:        to,
		Template:  in.Template,
		Message:   body,
		CreatedAt: now,
	}

	ref, sendErr := s.sender.Send(ctx, to, body)
	if sendErr != nil {
		msg := sender.ProviderMessage(sendErr)
		record.Status = domain.StatusFailed
		record.Error = &msg
		s.audit(ctx, record)
		messagesTotal.WithLabelValues(domain.StatusFailed).Inc()

		s.logger.ErrorContext(ctx, "whatsapp send failed",
			slog.String("template", in.Template),
			slog.String("error", sendErr.Error()),
		)
		return nil, apperrors.InternalWithMessage(msg, sendErr)
	}

	record.Status = domain.StatusSent
	record.ProviderRef = &ref
	s.audit(ctx, record)
	messagesTotal.WithLabelValues(domain.StatusSent).Inc()

	s.logger.InfoContext(ctx, "whatsapp message sent",
		slog.String("template", in.Template),
		slog.String("provider_ref", ref),
	)
	return &SendResult{
		Success:           true,
		Status:            domain.StatusSent,
		ProviderReference: ref,
		Message:           "WhatsApp message sent",
	}, nil
}

// audit never fails the send: the message already left.
func (s *NotificationService) audit(ctx context.Context, n *domain.Notification) {
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.ErrorContext(ctx, "failed to write notification audit record",
			slog.String("notification_id", n.ID),
			slog.String("status", n.Status),
			slog.String("error", err.Error()),
		)
	}
}

// ListNotifications returns the caller's audit trail, newest first.
func (s *NotificationService) ListNotifications(ctx context.Context, userID string, p pagination.Params) ([]domain.Notification, int, error) {
	if userID == "" {
		return nil, 0, apperrors.Unauthorized("authentication required")
	}
	list, total, err := s.repo.ListByUserID(ctx, userID, p)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return list, total, nil
}
