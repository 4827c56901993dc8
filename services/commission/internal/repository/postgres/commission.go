package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/database"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/pagination"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/commission/internal/domain"
)

// CommissionRepository implements repository.CommissionRepository using PostgreSQL.
type CommissionRepository struct {
	pool database.DBTX
}

func NewCommissionRepository(pool database.DBTX) *CommissionRepository {
	return &CommissionRepository{pool: pool}
}

const insertEntryQuery = `
	INSERT INTO commissions (id, order_id, beneficiary_id, beneficiary_type, category, sale_amount, rate, amount, status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (order_id) DO NOTHING`

func (r *CommissionRepository) Create(ctx context.Context, e *domain.Entry) (_ bool, err error) {
	ctx, end := database.TraceQuery(ctx, "CreateCommission", insertEntryQuery)
	defer func() { end(err) }()

	tag, err := r.pool.Exec(ctx, insertEntryQuery,
		e.ID,
		e.OrderID,
		e.BeneficiaryID,
		e.BeneficiaryType,
		e.Category,
		e.SaleAmount,
		e.Rate,
		e.Amount,
		e.Status,
		e.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert commission: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

const listByBeneficiaryQuery = `
	SELECT id, order_id, beneficiary_id, beneficiary_type, category,
		sale_amount::text, rate::text, amount::text, status, created_at,
		count(*) OVER() AS total_count
	FROM commissions
	WHERE beneficiary_id = $1
	ORDER BY created_at DESC
	LIMIT $2 OFFSET $3`

func (r *CommissionRepository) ListByBeneficiary(ctx context.Context, beneficiaryID string, p pagination.Params) (_ []domain.Entry, _ int, err error) {
	ctx, end := database.TraceQuery(ctx, "ListCommissions", listByBeneficiaryQuery)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, listByBeneficiaryQuery, beneficiaryID, p.PerPage, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list commissions: %w", err)
	}
	defer rows.Close()

	var total int
	out := make([]domain.Entry, 0)
	for rows.Next() {
		var (
			e                    domain.Entry
			sale, rate, amount string
		)
		if err := rows.Scan(
			&e.ID,
			&e.OrderID,
			&e.BeneficiaryID,
			&e.BeneficiaryType,
			&e.Category,
			&sale,
			&rate,
			&amount,
			&e.Status,
			&e.CreatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan commission: %w", err)
		}
		if e.SaleAmount, err = decimal.NewFromString(sale); err != nil {
			return nil, 0, fmt.Errorf("parse sale_amount %q: %w", sale, err)
		}
		if e.Rate, err = decimal.NewFromString(rate); err != nil {
			return nil, 0, fmt.Errorf("parse rate %q: %w", rate, err)
		}
		if e.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, 0, fmt.Errorf("parse amount %q: %w", amount, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate commissions: %w", err)
	}
	return out, total, nil
}
