package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	apperrors "github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/errors"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/pagination"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/commission/internal/domain"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/commission/internal/repository"
)

var entriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "commission_entries_total",
	Help: "Commission ledger writes by beneficiary type and outcome.",
}, []string{"beneficiary_type", "outcome"})

// RoleAdmin may read any beneficiary's ledger.
const RoleAdmin = "admin"

// CommissionService computes commissions and maintains the ledger.
type CommissionService struct {
	repo   repository.CommissionRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewCommissionService(repo repository.CommissionRepository, logger *slog.Logger) *CommissionService {
	return &CommissionService{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

type Quote struct {
	Category   string          `json:"category"`
	Rate       decimal.Decimal `json:"rate"`
	SaleAmount decimal.Decimal `json:"saleAmount"`
	Commission decimal.Decimal `json:"commission"`
}

// Quote is a pure calculation; nothing is recorded.
func (s *CommissionService) Quote(category string, amount decimal.Decimal) (*Quote, error) {
	if amount.IsNegative() {
		return nil, apperrors.InvalidInput("amount must not be negative")
	}
	return &Quote{
		Category:   domain.NormalizeCategory(category),
		Rate:       domain.RateFor(category),
		SaleAmount: amount,
		Commission: domain.Calculate(category, amount),
	}, nil
}

// Rates returns the rate table, default entry included.
func (s *CommissionService) Rates() map[string]decimal.Decimal {
	return domain.Rates()
}

type RecordInput struct {
	OrderID         string
	BeneficiaryID   string
	BeneficiaryType string
	Category        string
	SaleAmount      decimal.Decimal
}

// RecordCommission writes the ledger entry for an order. Recording the same
// order twice is a no-op that reports created=false.
func (s *CommissionService) RecordCommission(ctx context.Context, in RecordInput) (_ *domain.Entry, created bool, _ error) {
	if strings.TrimSpace(in.OrderID) == "" {
		return nil, false, apperrors.InvalidInput("order id is required")
	}
	if strings.TrimSpace(in.BeneficiaryID) == "" {
		return nil, false, apperrors.InvalidInput("beneficiary id is required")
	}
	switch in.BeneficiaryType {
	case domain.BeneficiaryAffiliate, domain.BeneficiaryVendor:
	default:
		return nil, false, apperrors.InvalidInput("beneficiary type must be affiliate or vendor")
	}
	if in.SaleAmount.IsNegative() {
		return nil, false, apperrors.InvalidInput("sale amount must not be negative")
	}

	category := domain.NormalizeCategory(in.Category)
	if category == "" {
		category = domain.DefaultCategory
	}
	entry := &domain.Entry{
		ID:              uuid.NewString(),
		OrderID:         in.OrderID,
		BeneficiaryID:   in.BeneficiaryID,
		BeneficiaryType: in.BeneficiaryType,
		Category:        category,
		SaleAmount:      in.SaleAmount,
		Rate:            domain.RateFor(category),
		Amount:          domain.Calculate(category, in.SaleAmount),
		Status:          domain.StatusPending,
		CreatedAt:       s.now(),
	}

	created, err := s.repo.Create(ctx, entry)
	if err != nil {
		entriesTotal.WithLabelValues(in.BeneficiaryType, "error").Inc()
		return nil, false, apperrors.Internal(err)
	}
	if !created {
		entriesTotal.WithLabelValues(in.BeneficiaryType, "duplicate").Inc()
		s.logger.InfoContext(ctx, "commission already recorded for order",
			slog.String("order_id", in.OrderID),
		)
		return entry, false, nil
	}

	entriesTotal.WithLabelValues(in.BeneficiaryType, "recorded").Inc()
	s.logger.InfoContext(ctx, "commission recorded",
		slog.String("order_id", entry.OrderID),
		slog.String("beneficiary_id", entry.BeneficiaryID),
		slog.String("category", entry.Category),
		slog.String("amount", entry.Amount.String()),
	)
	return entry, true, nil
}

// Caller identifies who is reading the ledger.
type Caller struct {
	UserID string
	Role   string
}

// ListCommissions returns a beneficiary's ledger. Callers read their own
// entries; admins read anyone's.
func (s *CommissionService) ListCommissions(ctx context.Context, caller Caller, beneficiaryID string, p pagination.Params) ([]domain.Entry, int, error) {
	if caller.UserID == "" {
		return nil, 0, apperrors.Unauthorized("authentication required")
	}
	if beneficiaryID == "" {
		beneficiaryID = caller.UserID
	}
	if beneficiaryID != caller.UserID && caller.Role != RoleAdmin {
		return nil, 0, apperrors.Forbidden("cannot read another beneficiary's commissions")
	}

	list, total, err := s.repo.ListByBeneficiary(ctx, beneficiaryID, p)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return list, total, nil
}
