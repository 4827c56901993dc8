package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/pagination"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/notification/internal/domain"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Create(ctx context.Context, n *domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *mockRepo) CountSince(ctx context.Context, userID, typ string, since time.Time) (int, error) {
	args := m.Called(ctx, userID, typ, since)
	return args.Int(0), args.Error(1)
}

func (m *mockRepo) ListByUserID(ctx context.Context, userID string, p pagination.Params) ([]domain.Notification, int, error) {
	args := m.Called(ctx, userID, p)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Int(1), args.Error(2)
}

type mockSender struct{ mock.Mock }

func (m *mockSender) Send(ctx context.Context, to, body string) (string, error) {
	args := m.Called(ctx, to, body)
	return args.String(0), args.Error(1)
}

var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestService(repo *mockRepo, s *mockSender) *NotificationService {
	var svc *NotificationService
	if s == nil {
		svc = NewNotificationService(repo, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	} else {
		svc = NewNotificationService(repo, s, slog.New(slog.NewTextHandler(io.Discard, nil)))
	}
	svc.now = func() time.Time { return fixedNow }
	return svc
}
