package postgres

import (
	"context"
	"fmt"

	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/database"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/order/internal/domain"
)

// PickupHubRepository implements repository.PickupHubRepository using PostgreSQL.
type PickupHubRepository struct {
	pool database.DBTX
}

func NewPickupHubRepository(pool database.DBTX) *PickupHubRepository {
	return &PickupHubRepository{pool: pool}
}

const listActiveHubsQuery = `
	SELECT id, name, city, department, address, COALESCE(phone, ''), active, updated_at
	FROM pickup_hubs
	WHERE active
	ORDER BY department, name`

func (r *PickupHubRepository) ListActive(ctx context.Context) (_ []domain.PickupHub, err error) {
	ctx, end := database.TraceQuery(ctx, "ListPickupHubs", listActiveHubsQuery)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, listActiveHubsQuery)
	if err != nil {
		return nil, fmt.Errorf("list pickup hubs: %w", err)
	}
	defer rows.Close()

	hubs := make([]domain.PickupHub, 0)
	for rows.Next() {
		var h domain.PickupHub
		if err := rows.Scan(&h.ID, &h.Name, &h.City, &h.Department, &h.Address, &h.Phone, &h.Active, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pickup hub: %w", err)
		}
		hubs = append(hubs, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pickup hubs: %w", err)
	}
	return hubs, nil
}

// Upsert merges a hub keyed by its id: existing rows are refreshed, never
// duplicated.
const upsertHubQuery = `
	INSERT INTO pickup_hubs (id, name, city, department, address, phone, active, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		city = EXCLUDED.city,
		department = EXCLUDED.department,
		address = EXCLUDED.address,
		phone = EXCLUDED.phone,
		active = EXCLUDED.active,
		updated_at = NOW()`

func (r *PickupHubRepository) Upsert(ctx context.Context, h domain.PickupHub) error {
	if _, err := r.pool.Exec(ctx, upsertHubQuery, h.ID, h.Name, h.City, h.Department, h.Address, nullable(h.Phone), h.Active); err != nil {
		return fmt.Errorf("upsert pickup hub %s: %w", h.ID, err)
	}
	return nil
}
