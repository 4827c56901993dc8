package repository

import (
	"context"

	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/pagination"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/order/internal/domain"
)

// ProductRepository reads the catalog.
type ProductRepository interface {
	// ProductsByIDs resolves every id in one round trip. Unknown ids are
	// simply absent from the result.
	ProductsByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error)

	// Upsert inserts or refreshes a catalog entry. Used by the seed command.
	Upsert(ctx context.Context, p domain.Product) error
}

// OrderRepository persists orders.
type OrderRepository interface {
	// Create inserts the order and its items atomically.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order with its items.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// ListByUser returns a page of the user's orders, newest first, without
	// items, along with the total count.
	ListByUser(ctx context.Context, userID string, p pagination.Params) ([]domain.Order, int, error)
}

// PickupHubRepository stores pickup hub reference data.
type PickupHubRepository interface {
	ListActive(ctx context.Context) ([]domain.PickupHub, error)
	Upsert(ctx context.Context, hub domain.PickupHub) error
}
