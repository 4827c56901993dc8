package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	apperrors "github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/errors"
	pkgkafka "github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/kafka"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/notification/internal/service"
)

// TopicOrderCreated is published by the order service.
var TopicOrderCreated = pkgkafka.Topic("order", "created")

// TemplateOrderConfirmation is recorded on messages sent for new orders.
const TemplateOrderConfirmation = "order_confirmation"

// Dispatcher is satisfied by *service.NotificationService.
type Dispatcher interface {
	SendWhatsApp(ctx context.Context, in service.SendWhatsAppInput) (*service.SendResult, error)
}

// OrderCreatedData holds the order.created fields this service reads.
type OrderCreatedData struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	CustomerName  string          `json:"customer_name,omitempty"`
	CustomerPhone string          `json:"customer_phone,omitempty"`
}

// OrderConsumer sends a WhatsApp confirmation for every new order that
// carries a customer phone.
type OrderConsumer struct {
	dispatcher Dispatcher
	logger     *slog.Logger
}

func NewOrderConsumer(d Dispatcher, logger *slog.Logger) *OrderConsumer {
	return &OrderConsumer{dispatcher: d, logger: logger}
}

// HandleOrderCreated returns an error only for undecodable payloads, marked
// permanent so they are dead-lettered without retries. Send
// failures are logged and swallowed so the consumer never retries a message
// that may already have reached the customer.
func (c *OrderConsumer) HandleOrderCreated(ctx context.Context, ev *pkgkafka.Event) error {
	var data OrderCreatedData
	if err := ev.Decode(&data); err != nil {
		return pkgkafka.Permanent(err)
	}
	if data.ID == "" || data.UserID == "" {
		return pkgkafka.Permanent(fmt.Errorf("order.created event %s: missing order or user id", ev.EventID))
	}

	log := c.logger.With(
		slog.String("event_id", ev.EventID),
		slog.String("order_id", data.ID),
	)
	if data.CustomerPhone == "" {
		log.DebugContext(ctx, "order has no customer phone, skipping confirmation")
		return nil
	}

	_, err := c.dispatcher.SendWhatsApp(ctx, service.SendWhatsAppInput{
		UserID:   data.UserID,
		To:       data.CustomerPhone,
		Template: TemplateOrderConfirmation,
		Data:     map[string]any{"message": confirmationMessage(data)},
	})
	switch {
	case err == nil:
		log.InfoContext(ctx, "order confirmation sent")
	case errors.Is(err, apperrors.ErrFailedPrecondition):
		log.DebugContext(ctx, "whatsapp not configured, confirmation skipped")
	default:
		log.WarnContext(ctx, "order confirmation not sent", slog.String("error", err.Error()))
	}
	return nil
}

func confirmationMessage(d OrderCreatedData) string {
	ref := d.ID
	if len(ref) > 8 {
		ref = ref[:8]
	}
	greeting := "Bonjou"
	if d.CustomerName != "" {
		greeting += " " + d.CustomerName
	}
	return fmt.Sprintf("%s! Kòmand #%s ou an anrejistre. Total: %s HTG. Mèsi paske ou achte sou Union Digitale.",
		greeting, ref, d.TotalPrice.StringFixed(2))
}
