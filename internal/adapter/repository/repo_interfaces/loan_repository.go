package repo_interfaces

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/credistack/lending-ledger/internal/commons"
	"github.com/credistack/lending-ledger/internal/domain"
)

type LoanRepository interface {
	Create(ctx context.Context, loan domain.Loan) (domain.Loan, error)
	// GetByID returns the loan regardless of deletion state, so deleted
	// loans stay retrievable for audit.
	GetByID(ctx context.Context, id string) (domain.Loan, error)
	GetActiveByID(ctx context.Context, id string) (domain.Loan, error)
	// Pay moves amount from MustBePay to PaidEver as one unit. The
	// outstanding check happens under the store's write serialization, so
	// concurrent payments cannot overdraw the loan or lose updates.
	// Returns domain.ErrNotAcceptable when amount exceeds the outstanding
	// total at commit time.
	Pay(ctx context.Context, id string, amount decimal.Decimal) (domain.Loan, error)
	// UpdateStatus writes only the status and the actor that changed it.
	UpdateStatus(ctx context.Context, id string, status domain.LoanStatus, changedBy string) (domain.Loan, error)
	// MarkDeleted soft-deletes the loan without touching any other column.
	MarkDeleted(ctx context.Context, id string, actorID string, at time.Time) error
	ListActive(ctx context.Context, statusFilter *domain.LoanStatus, page commons.PageRequest) ([]domain.Loan, int64, error)
	ListActiveByOwner(ctx context.Context, ownerID string, page commons.PageRequest) ([]domain.Loan, int64, error)
}
