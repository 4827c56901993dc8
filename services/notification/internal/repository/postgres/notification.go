package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/database"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/pagination"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/notification/internal/domain"
)

// NotificationRepository implements repository.NotificationRepository using PostgreSQL.
type NotificationRepository struct {
	pool database.DBTX
}

func NewNotificationRepository(pool database.DBTX) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

const insertNotificationQuery = `
	INSERT INTO notifications (id, user_id, type, recipient, template, message, status, provider_ref, error, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) (err error) {
	ctx, end := database.TraceQuery(ctx, "CreateNotification", insertNotificationQuery)
	defer func() { end(err) }()

	_, err = r.pool.Exec(ctx, insertNotificationQuery,
		n.ID,
		n.UserID,
		n.Type,
		n.To,
		n.Template,
		n.Message,
		n.Status,
		n.ProviderRef,
		n.Error,
		n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

const countSinceQuery = `
	SELECT COUNT(*)
	FROM notifications
	WHERE user_id = $1 AND type = $2 AND created_at >= $3`

// CountSince runs on every send; it is served by idx_notifications_user_type_created.
func (r *NotificationRepository) CountSince(ctx context.Context, userID, notificationType string, since time.Time) (_ int, err error) {
	ctx, end := database.TraceQuery(ctx, "CountRecentNotifications", countSinceQuery)
	defer func() { end(err) }()

	var n int
	if err = r.pool.QueryRow(ctx, countSinceQuery, userID, notificationType, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("count notifications: %w", err)
	}
	return n, nil
}

const listByUserQuery = `
	SELECT id, user_id, type, recipient, template, message, status, provider_ref, error, created_at,
		count(*) OVER() AS total_count
	FROM notifications
	WHERE user_id = $1
	ORDER BY created_at DESC
	LIMIT $2 OFFSET $3`

func (r *NotificationRepository) ListByUserID(ctx context.Context, userID string, p pagination.Params) (_ []domain.Notification, _ int, err error) {
	ctx, end := database.TraceQuery(ctx, "ListNotifications", listByUserQuery)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, listByUserQuery, userID, p.PerPage, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var total int
	out := make([]domain.Notification, 0)
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.Type,
			&n.To,
			&n.Template,
			&n.Message,
			&n.Status,
			&n.ProviderRef,
			&n.Error,
			&n.CreatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate notifications: %w", err)
	}
	return out, total, nil
}
