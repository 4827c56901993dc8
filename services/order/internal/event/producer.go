package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	pkgkafka "github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/kafka"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/logger"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/order/internal/domain"
)

var TopicOrderCreated = pkgkafka.Topic("order", "created")

const (
	AggregateTypeOrder = "order"
	SourceOrderService = "order-service"
)

// Publisher is satisfied by *pkgkafka.Producer.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// OrderCreatedData is the order.created payload. Amounts are decimal strings.
type OrderCreatedData struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	VendorID      string          `json:"vendor_id"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	Items         []OrderItemData `json:"items"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	PickupHubID   string          `json:"pickup_hub_id,omitempty"`
	CustomerName  string          `json:"customer_name,omitempty"`
	CustomerPhone string          `json:"customer_phone,omitempty"`
}

type OrderItemData struct {
	ProductID string          `json:"product_id"`
	VariantID string          `json:"variant_id,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Producer publishes order domain events.
type Producer struct {
	publisher Publisher
	logger    *slog.Logger
}

func NewProducer(publisher Publisher, logger *slog.Logger) *Producer {
	return &Producer{publisher: publisher, logger: logger}
}

// PublishOrderCreated publishes a snapshot of a freshly persisted order.
func (p *Producer) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	items := make([]OrderItemData, len(order.Items))
	for i, it := range order.Items {
		items[i] = OrderItemData{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal,
		}
	}

	data := OrderCreatedData{
		ID:            order.ID,
		UserID:        order.UserID,
		VendorID:      order.VendorID,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		Items:         items,
		TotalPrice:    order.TotalPrice,
	}
	if order.CustomerDetails != nil {
		data.PickupHubID = order.CustomerDetails.PickupHubID
		data.CustomerName = order.CustomerDetails.Name
		data.CustomerPhone = order.CustomerDetails.Phone
	}

	event, err := pkgkafka.NewEvent(TopicOrderCreated, order.ID, AggregateTypeOrder, SourceOrderService, data)
	if err != nil {
		return fmt.Errorf("create order.created event: %w", err)
	}
	if cid := logger.CorrelationIDFromContext(ctx); cid != "" {
		event.WithCorrelationID(cid)
	}

	if err := p.publisher.Publish(ctx, TopicOrderCreated, event); err != nil {
		return fmt.Errorf("publish order.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.created event",
		slog.String("order_id", order.ID),
		slog.String("vendor_id", order.VendorID),
	)
	return nil
}
