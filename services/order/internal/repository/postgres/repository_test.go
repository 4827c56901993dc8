package postgres

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/database"
	apperrors "github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/errors"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/pagination"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/order/internal/domain"
)

// --- Test Helpers ---

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func sampleOrder() *domain.Order {
	items := []domain.OrderItem{
		domain.NewOrderItem(domain.Product{ID: "prod-1", Name: "Rice 5kg", Price: 12.5}, "", 2),
		domain.NewOrderItem(domain.Product{ID: "prod-2", Name: "Cooking oil", Price: 4.75}, "1L", 1),
	}
	items[0].ID, items[0].OrderID = "item-1", "order-1"
	items[1].ID, items[1].OrderID = "item-2", "order-1"

	return &domain.Order{
		ID:            "order-1",
		UserID:        "user-1",
		VendorID:      "store-1",
		Items:         items,
		TotalPrice:    domain.SumLines(items),
		Status:        domain.OrderStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
		CustomerDetails: &domain.CustomerDetails{
			Name:        "Marie Jean",
			Phone:       "+50937001234",
			PickupHubID: "hub-pv",
		},
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

// --- ProductRepository ---

func TestProductRepository_ProductsByIDs(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	rows := pgxmock.NewRows([]string{"id", "name", "price", "active", "store_id", "category"}).
		AddRow("prod-1", "Rice 5kg", 12.5, true, "store-1", "food").
		AddRow("prod-2", "Broken", math.NaN(), true, "store-1", "")

	mock.ExpectQuery("SELECT id, name, price::float8").
		WithArgs([]string{"prod-1", "prod-2", "prod-3"}).
		WillReturnRows(rows)

	got, err := repo.ProductsByIDs(context.Background(), []string{"prod-1", "prod-2", "prod-3"})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "store-1", got["prod-1"].StoreID)
	assert.Equal(t, 12.5, got["prod-1"].Price)
	assert.False(t, got["prod-2"].HasValidPrice())
	_, ok := got["prod-3"]
	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ProductsByIDs_Empty(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	got, err := repo.ProductsByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ProductsByIDs_QueryError(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	mock.ExpectQuery("SELECT id, name").WillReturnError(errors.New("connection refused"))

	_, err := repo.ProductsByIDs(context.Background(), []string{"prod-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query products")
}

func TestProductRepository_Upsert(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	p := domain.Product{ID: "prod-1", Name: "Rice", Price: 12.5, Active: true, StoreID: "store-1", Category: "food"}
	mock.ExpectExec("INSERT INTO products").
		WithArgs(p.ID, p.Name, p.Price, p.Active, p.StoreID, p.Category).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Upsert(context.Background(), p))
	require.NoError(t, mock.ExpectationsWereMet())
}

// --- OrderRepository.Create ---

func TestOrderRepository_Create_Success(t *testing.T) {
	mock := newMock(t)
	repo := NewOrderRepository(mock)
	o := sampleOrder()
	variant := "1L"

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(o.ID, o.UserID, o.VendorID, "pending", "pending",
			pgxmock.AnyArg(), pgxmock.AnyArg(), o.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs("item-1", "order-1", 0, "prod-1", pgxmock.AnyArg(), "Rice 5kg", 2,
			pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs("item-2", "order-1", 1, "prod-2", &variant, "Cooking oil", 1,
			pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), o))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Create_ItemFailureRollsBack(t *testing.T) {
	mock := newMock(t)
	repo := NewOrderRepository(mock)
	o := sampleOrder()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO order_items").WillReturnError(errors.New("fk violation"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), o)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert order item 0")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Create_BeginError(t *testing.T) {
	mock := newMock(t)
	repo := NewOrderRepository(mock)

	mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

	err := repo.Create(context.Background(), sampleOrder())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin tx")
}

// --- OrderRepository reads ---

var orderColumns = []string{
	"id", "user_id", "vendor_id", "status", "payment_status",
	"total_price", "customer_details", "created_at", "items",
}

func TestOrderRepository_GetByID(t *testing.T) {
	mock := newMock(t)
	repo := NewOrderRepository(mock)
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	items := []byte(`[
		{"id":"item-1","order_id":"order-1","product_id":"prod-1","variant_id":"","name":"Rice 5kg","quantity":2,"unit_price":12.5,"line_total":25.0},
		{"id":"item-2","order_id":"order-1","product_id":"prod-2","variant_id":"1L","name":"Cooking oil","quantity":1,"unit_price":4.75,"line_total":4.75}
	]`)
	mock.ExpectQuery("SELECT").
		WithArgs("order-1").
		WillReturnRows(pgxmock.NewRows(orderColumns).AddRow(
			"order-1", "user-1", "store-1", "pending", "pending",
			"29.75", []byte(`{"name":"Marie Jean","pickup_hub_id":"hub-pv"}`), created, items,
		))

	o, err := repo.GetByID(context.Background(), "order-1")
	require.NoError(t, err)

	assert.Equal(t, "store-1", o.VendorID)
	assert.True(t, o.TotalPrice.Equal(decimal.RequireFromString("29.75")))
	require.NotNil(t, o.CustomerDetails)
	assert.Equal(t, "hub-pv", o.CustomerDetails.PickupHubID)
	require.Len(t, o.Items, 2)
	assert.Equal(t, "1L", o.Items[1].VariantID)
	assert.True(t, o.Items[0].LineTotal.Equal(decimal.NewFromInt(25)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewOrderRepository(mock)

	mock.ExpectQuery("SELECT").WithArgs("missing").WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestOrderRepository_ListByUser(t *testing.T) {
	mock := newMock(t)
	repo := NewOrderRepository(mock)
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cols := []string{"id", "user_id", "vendor_id", "status", "payment_status",
		"total_price", "customer_details", "created_at", "total_count"}
	mock.ExpectQuery("FROM orders").
		WithArgs("user-1", 10, 10).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow("order-2", "user-1", "store-1", "pending", "pending", "10", []byte(nil), created, 12).
			AddRow("order-1", "user-1", "store-2", "pending", "pending", "7.5", []byte(nil), created, 12))

	orders, total, err := repo.ListByUser(context.Background(), "user-1", pagination.New(2, 10))
	require.NoError(t, err)

	assert.Equal(t, 12, total)
	require.Len(t, orders, 2)
	assert.Equal(t, "7.5", orders[1].TotalPrice.String())
	assert.Nil(t, orders[0].CustomerDetails)
	assert.NotNil(t, orders[0].Items)
	require.NoError(t, mock.ExpectationsWereMet())
}

// --- PickupHubRepository ---

func TestPickupHubRepository_ListActive(t *testing.T) {
	mock := newMock(t)
	repo := NewPickupHubRepository(mock)
	now := time.Now().UTC()

	mock.ExpectQuery("FROM pickup_hubs").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "city", "department", "address", "phone", "active", "updated_at"}).
			AddRow("hub-cap", "Cap-Haitien Centre", "Cap-Haitien", "Nord", "Rue 24", "", true, now).
			AddRow("hub-pv", "Petion-Ville", "Petion-Ville", "Ouest", "Rue Grégoire", "+50922220000", true, now))

	hubs, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, hubs, 2)
	assert.Equal(t, "Nord", hubs[0].Department)
	assert.Equal(t, "+50922220000", hubs[1].Phone)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPickupHubRepository_Upsert(t *testing.T) {
	mock := newMock(t)
	repo := NewPickupHubRepository(mock)

	hub := domain.PickupHub{ID: "hub-pv", Name: "Petion-Ville", City: "Petion-Ville", Department: "Ouest", Address: "Rue Grégoire", Active: true}
	mock.ExpectExec("ON CONFLICT \\(id\\) DO UPDATE").
		WithArgs(hub.ID, hub.Name, hub.City, hub.Department, hub.Address, pgxmock.AnyArg(), true).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Upsert(context.Background(), hub))
	require.NoError(t, mock.ExpectationsWereMet())
}
