package postgres

import (
	"context"
	"fmt"

	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/database"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/order/internal/domain"
)

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	pool database.DBTX
}

func NewProductRepository(pool database.DBTX) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// price is read as float8 so that NaN stored in the NUMERIC column survives
// the scan and can be rejected by the service.
const productsByIDsQuery = `
	SELECT id, name, price::float8, active, store_id, COALESCE(category, '')
	FROM products
	WHERE id = ANY($1)`

// ProductsByIDs resolves all ids with a single query.
func (r *ProductRepository) ProductsByIDs(ctx context.Context, ids []string) (_ map[string]domain.Product, err error) {
	ctx, end := database.TraceQuery(ctx, "ProductsByIDs", productsByIDsQuery)
	defer func() { end(err) }()

	products := make(map[string]domain.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	rows, err := r.pool.Query(ctx, productsByIDsQuery, ids)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Active, &p.StoreID, &p.Category); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}

const upsertProductQuery = `
	INSERT INTO products (id, name, price, active, store_id, category, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, NOW())
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		price = EXCLUDED.price,
		active = EXCLUDED.active,
		store_id = EXCLUDED.store_id,
		category = EXCLUDED.category,
		updated_at = NOW()`

func (r *ProductRepository) Upsert(ctx context.Context, p domain.Product) error {
	if _, err := r.pool.Exec(ctx, upsertProductQuery, p.ID, p.Name, p.Price, p.Active, p.StoreID, p.Category); err != nil {
		return fmt.Errorf("upsert product %s: %w", p.ID, err)
	}
	return nil
}
