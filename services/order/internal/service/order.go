package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/errors"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/pagination"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/order/internal/domain"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/order/internal/repository"
)

// EventPublisher emits order domain events.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, order *domain.Order) error
}

// OrderService validates carts against the catalog and creates orders.
type OrderService struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	hubs     repository.PickupHubRepository
	events   EventPublisher
	logger   *slog.Logger
	now      func() time.Time
}

func NewOrderService(
	products repository.ProductRepository,
	orders repository.OrderRepository,
	hubs repository.PickupHubRepository,
	events EventPublisher,
	logger *slog.Logger,
) *OrderService {
	return &OrderService{
		products: products,
		orders:   orders,
		hubs:     hubs,
		events:   events,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateOrderItemInput is one cart line. There is deliberately no price
// field: prices always come from the catalog.
type CreateOrderItemInput struct {
	ProductID string
	VariantID string
	Quantity  *float64
}

type CreateOrderInput struct {
	UserID          string
	Items           []CreateOrderItemInput
	CustomerDetails *domain.CustomerDetails
}

// CreateOrder validates the cart, prices it from the catalog and persists a
// pending single-vendor order.
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	if input.UserID == "" {
		return nil, apperrors.Unauthorized("authentication required")
	}
	if len(input.Items) == 0 {
		return nil, apperrors.InvalidInput("order must contain at least one item")
	}

	quantities := make([]int, len(input.Items))
	ids := make([]string, 0, len(input.Items))
	seen := make(map[string]struct{}, len(input.Items))
	for i, it := range input.Items {
		if it.ProductID == "" {
			return nil, apperrors.InvalidInput(fmt.Sprintf("items[%d].productId is required", i))
		}
		q, err := domain.NormalizeQuantity(it.Quantity)
		if err != nil {
			return nil, apperrors.InvalidInput(fmt.Sprintf("items[%d].quantity: %v", i, err))
		}
		quantities[i] = q
		if _, ok := seen[it.ProductID]; !ok {
			seen[it.ProductID] = struct{}{}
			ids = append(ids, it.ProductID)
		}
	}

	products, err := s.products.ProductsByIDs(ctx, ids)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to read catalog",
			slog.Int("product_count", len(ids)),
			slog.String("error", err.Error()),
		)
		return nil, apperrors.Internal(fmt.Errorf("read products: %w", err))
	}

	orderID := uuid.NewString()
	items := make([]domain.OrderItem, len(input.Items))
	vendors := make(map[string]struct{})
	for i, it := range input.Items {
		p, ok := products[it.ProductID]
		if !ok {
			return nil, apperrors.NotFound("product", it.ProductID)
		}
		if !p.Active {
			return nil, apperrors.FailedPrecondition(fmt.Sprintf("product %s is not available", p.ID))
		}
		if !p.HasValidPrice() {
			return nil, apperrors.FailedPrecondition(fmt.Sprintf("product %s has an invalid price", p.ID))
		}

		items[i] = domain.NewOrderItem(p, it.VariantID, quantities[i])
		items[i].ID = uuid.NewString()
		items[i].OrderID = orderID
		vendors[p.StoreID] = struct{}{}
	}

	if len(vendors) != 1 {
		return nil, apperrors.FailedPrecondition("multi-vendor orders are not supported")
	}
	var vendorID string
	for v := range vendors {
		vendorID = v
	}

	order := &domain.Order{
		ID:              orderID,
		UserID:          input.UserID,
		VendorID:        vendorID,
		Items:           items,
		TotalPrice:      domain.SumLines(items),
		Status:          domain.OrderStatusPending,
		PaymentStatus:   domain.PaymentStatusPending,
		CustomerDetails: input.CustomerDetails,
		CreatedAt:       s.now(),
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist order",
			slog.String("order_id", order.ID),
			slog.String("user_id", order.UserID),
			slog.String("error", err.Error()),
		)
		return nil, apperrors.Internal(fmt.Errorf("create order: %w", err))
	}

	if err := s.events.PublishOrderCreated(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.created event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order created",
		slog.String("order_id", order.ID),
		slog.String("user_id", order.UserID),
		slog.String("vendor_id", order.VendorID),
		slog.String("total_price", order.TotalPrice.String()),
	)

	return order, nil
}

// GetOrder returns one of the caller's orders. Orders of other users are
// reported as not found.
func (s *OrderService) GetOrder(ctx context.Context, userID, id string) (*domain.Order, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("authentication required")
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order by id: %w", err)
	}
	if order.UserID != userID {
		return nil, apperrors.NotFound("order", id)
	}
	return order, nil
}

// ListOrders returns a page of the caller's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, userID string, p pagination.Params) ([]domain.Order, int, error) {
	if userID == "" {
		return nil, 0, apperrors.Unauthorized("authentication required")
	}

	orders, total, err := s.orders.ListByUser(ctx, userID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	return orders, total, nil
}

// ListPickupHubs returns active hubs grouped by department.
func (s *OrderService) ListPickupHubs(ctx context.Context) ([]domain.PickupHub, error) {
	hubs, err := s.hubs.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pickup hubs: %w", err)
	}
	sort.SliceStable(hubs, func(i, j int) bool { return hubs[i].Department < hubs[j].Department })
	return hubs, nil
}
