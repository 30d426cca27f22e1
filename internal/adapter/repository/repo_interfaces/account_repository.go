package repo_interfaces

import (
	"context"
	"time"

	"github.com/credistack/lending-ledger/internal/commons"
	"github.com/credistack/lending-ledger/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	GetActiveByID(ctx context.Context, id string) (domain.Account, error)
	GetActiveByOwner(ctx context.Context, ownerID string, typeFilter *domain.AccountType) (domain.Account, error)
	HasActiveForOwnerAndType(ctx context.Context, ownerID string, accountType domain.AccountType) (bool, error)
	// MarkDeleted soft-deletes the account without touching the balance,
	// so a delete racing a debit never resurrects a stale balance on the
	// audited record.
	MarkDeleted(ctx context.Context, id string, actorID string, at time.Time) error
	ListActive(ctx context.Context, typeFilter *domain.AccountType, page commons.PageRequest) ([]domain.Account, int64, error)
}
