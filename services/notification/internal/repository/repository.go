package repository

import (
	"context"
	"time"

	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/pagination"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/notification/internal/domain"
)

// NotificationRepository persists the append-only notification audit log.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error

	// CountSince counts the user's records of the given type created at or
	// after since.
	CountSince(ctx context.Context, userID, notificationType string, since time.Time) (int, error)

	// ListByUserID returns a page of the user's records, newest first.
	ListByUserID(ctx context.Context, userID string, p pagination.Params) ([]domain.Notification, int, error)
}
