package repository

import (
	"context"

	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/pagination"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/commission/internal/domain"
)

// CommissionRepository persists the commission ledger.
type CommissionRepository interface {
	// Create inserts e unless an entry for the same order exists. created
	// reports whether a row was written.
	Create(ctx context.Context, e *domain.Entry) (created bool, err error)

	// ListByBeneficiary returns a page of entries, newest first.
	ListByBeneficiary(ctx context.Context, beneficiaryID string, p pagination.Params) ([]domain.Entry, int, error)
}
