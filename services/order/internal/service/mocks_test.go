package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/pagination"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/order/internal/domain"
)

// --- Mocks ---

type mockProductRepo struct{ mock.Mock }

func (m *mockProductRepo) ProductsByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

func (m *mockProductRepo) Upsert(ctx context.Context, p domain.Product) error {
	return m.Called(ctx, p).Error(0)
}

type mockOrderRepo struct{ mock.Mock }

func (m *mockOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *mockOrderRepo) ListByUser(ctx context.Context, userID string, p pagination.Params) ([]domain.Order, int, error) {
	args := m.Called(ctx, userID, p)
	return args.Get(0).([]domain.Order), args.Int(1), args.Error(2)
}

type mockHubRepo struct{ mock.Mock }

func (m *mockHubRepo) ListActive(ctx context.Context) ([]domain.PickupHub, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PickupHub), args.Error(1)
}

func (m *mockHubRepo) Upsert(ctx context.Context, h domain.PickupHub) error {
	return m.Called(ctx, h).Error(0)
}

type mockEvents struct{ mock.Mock }

func (m *mockEvents) PublishOrderCreated(ctx context.Context, o *domain.Order) error {
	return m.Called(ctx, o).Error(0)
}

// --- Helpers ---

type fixture struct {
	products *mockProductRepo
	orders   *mockOrderRepo
	hubs     *mockHubRepo
	events   *mockEvents
	svc      *OrderService
}

func newFixture() *fixture {
	f := &fixture{
		products: &mockProductRepo{},
		orders:   &mockOrderRepo{},
		hubs:     &mockHubRepo{},
		events:   &mockEvents{},
	}
	f.svc = NewOrderService(f.products, f.orders, f.hubs, f.events, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return f
}
