package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/database"
	apperrors "github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/errors"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/pagination"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/order/internal/domain"
)

// OrderRepository implements repository.OrderRepository using PostgreSQL.
// Money columns are NUMERIC; they are written from decimal.Decimal and read
// back as text to keep full precision.
type OrderRepository struct {
	pool database.DBTX
}

func NewOrderRepository(pool database.DBTX) *OrderRepository {
	return &OrderRepository{pool: pool}
}

const (
	insertOrderQuery = `
		INSERT INTO orders (id, user_id, vendor_id, status, payment_status, total_price, customer_details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	insertOrderItemQuery = `
		INSERT INTO order_items (id, order_id, position, product_id, variant_id, name, quantity, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
)

// Create inserts the order and all of its items in one transaction.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) (err error) {
	ctx, end := database.TraceQuery(ctx, "CreateOrder", insertOrderQuery)
	defer func() { end(err) }()

	var details []byte
	if o.CustomerDetails != nil {
		details, err = json.Marshal(o.CustomerDetails)
		if err != nil {
			return fmt.Errorf("marshal customer details: %w", err)
		}
	}

	return database.InTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, insertOrderQuery,
			o.ID,
			o.UserID,
			o.VendorID,
			o.Status,
			o.PaymentStatus,
			o.TotalPrice,
			details,
			o.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for i, it := range o.Items {
			if _, err := tx.Exec(ctx, insertOrderItemQuery,
				it.ID,
				o.ID,
				i,
				it.ProductID,
				nullable(it.VariantID),
				it.Name,
				it.Quantity,
				it.UnitPrice,
				it.LineTotal,
			); err != nil {
				return fmt.Errorf("insert order item %d: %w", i, err)
			}
		}
		return nil
	})
}

const getOrderQuery = `
	SELECT
		o.id, o.user_id, o.vendor_id, o.status, o.payment_status,
		o.total_price::text, o.customer_details, o.created_at,
		COALESCE(
			JSONB_AGG(
				JSONB_BUILD_OBJECT(
					'id', oi.id,
					'order_id', oi.order_id,
					'product_id', oi.product_id,
					'variant_id', COALESCE(oi.variant_id, ''),
					'name', oi.name,
					'quantity', oi.quantity,
					'unit_price', oi.unit_price,
					'line_total', oi.line_total
				) ORDER BY oi.position
			) FILTER (WHERE oi.id IS NOT NULL),
			'[]'::jsonb
		) AS items
	FROM orders o
	LEFT JOIN order_items oi ON oi.order_id = o.id
	WHERE o.id = $1
	GROUP BY o.id`

// GetByID loads an order and its items in a single query.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (_ *domain.Order, err error) {
	ctx, end := database.TraceQuery(ctx, "GetOrder", getOrderQuery)
	defer func() { end(err) }()

	var (
		o         domain.Order
		total     string
		details   []byte
		itemsJSON []byte
	)
	err = r.pool.QueryRow(ctx, getOrderQuery, id).Scan(
		&o.ID,
		&o.UserID,
		&o.VendorID,
		&o.Status,
		&o.PaymentStatus,
		&total,
		&details,
		&o.CreatedAt,
		&itemsJSON,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("order", id)
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}

	if o.TotalPrice, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("parse total price: %w", err)
	}
	if o.CustomerDetails, err = decodeDetails(details); err != nil {
		return nil, err
	}

	o.Items = []domain.OrderItem{}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
			return nil, fmt.Errorf("unmarshal order items: %w", err)
		}
	}

	return &o, nil
}

const listByUserQuery = `
	SELECT id, user_id, vendor_id, status, payment_status, total_price::text,
		customer_details, created_at, count(*) OVER() AS total_count
	FROM orders
	WHERE user_id = $1
	ORDER BY created_at DESC
	LIMIT $2 OFFSET $3`

// ListByUser returns one page of the user's orders with the total count.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string, p pagination.Params) (_ []domain.Order, _ int, err error) {
	ctx, end := database.TraceQuery(ctx, "ListOrdersByUser", listByUserQuery)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, listByUserQuery, userID, p.PerPage, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var totalCount int
	orders := make([]domain.Order, 0)
	for rows.Next() {
		var (
			o       domain.Order
			total   string
			details []byte
		)
		if err := rows.Scan(
			&o.ID,
			&o.UserID,
			&o.VendorID,
			&o.Status,
			&o.PaymentStatus,
			&total,
			&details,
			&o.CreatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		if o.TotalPrice, err = decimal.NewFromString(total); err != nil {
			return nil, 0, fmt.Errorf("parse total price: %w", err)
		}
		if o.CustomerDetails, err = decodeDetails(details); err != nil {
			return nil, 0, err
		}
		o.Items = []domain.OrderItem{}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate orders: %w", err)
	}

	return orders, totalCount, nil
}

func decodeDetails(b []byte) (*domain.CustomerDetails, error) {
	if len(b) == 0 || string(b) == "null" {
		return nil, nil
	}
	var d domain.CustomerDetails
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("unmarshal customer details: %w", err)
	}
	return &d, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
