package repository

import (
	"context"

	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/pagination"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/payment/internal/domain"
)

// SessionRepository records every checkout session handed out to a caller.
type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) error

	// ListByUserID returns the sessions the user created, newest first.
	ListByUserID(ctx context.Context, userID string, p pagination.Params) ([]domain.Session, int, error)
}
