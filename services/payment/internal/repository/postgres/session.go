package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/database"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/pagination"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/payment/internal/domain"
)

// SessionRepository implements repository.SessionRepository using PostgreSQL.
type SessionRepository struct {
	pool database.DBTX
}

func NewSessionRepository(pool database.DBTX) *SessionRepository {
	return &SessionRepository{pool: pool}
}

const insertSessionQuery = `
	INSERT INTO payment_sessions (id, provider_id, provider, user_id, mode, order_id, vendor_id, amount, currency, url, metadata, created_at)
	VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, NULLIF($9, ''), $10, $11, $12)`

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) (err error) {
	ctx, end := database.TraceQuery(ctx, "CreatePaymentSession", insertSessionQuery)
	defer func() { end(err) }()

	metadataJSON, err := json.Marshal(s.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	_, err = r.pool.Exec(ctx, insertSessionQuery,
		s.ID,
		s.ProviderID,
		s.Provider,
		s.UserID,
		s.Mode,
		s.OrderID,
		s.VendorID,
		s.Amount,
		s.Currency,
		s.URL,
		metadataJSON,
		s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment session: %w", err)
	}
	return nil
}

const listByUserQuery = `
	SELECT id, provider_id, provider, user_id, mode, COALESCE(order_id, ''), COALESCE(vendor_id, ''),
		amount, COALESCE(currency, ''), url, metadata, created_at,
		count(*) OVER() AS total_count
	FROM payment_sessions
	WHERE user_id = $1
	ORDER BY created_at DESC
	LIMIT $2 OFFSET $3`

func (r *SessionRepository) ListByUserID(ctx context.Context, userID string, p pagination.Params) (_ []domain.Session, _ int, err error) {
	ctx, end := database.TraceQuery(ctx, "ListPaymentSessions", listByUserQuery)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, listByUserQuery, userID, p.PerPage, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list payment sessions: %w", err)
	}
	defer rows.Close()

	var total int
	out := make([]domain.Session, 0)
	for rows.Next() {
		var (
			s        domain.Session
			metadata []byte
		)
		if err := rows.Scan(
			&s.ID,
			&s.ProviderID,
			&s.Provider,
			&s.UserID,
			&s.Mode,
			&s.OrderID,
			&s.VendorID,
			&s.Amount,
			&s.Currency,
			&s.URL,
			&metadata,
			&s.CreatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan payment session: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &s.Metadata); err != nil {
				return nil, 0, fmt.Errorf("unmarshal metadata: %w", err)
			}
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate payment sessions: %w", err)
	}
	return out, total, nil
}
