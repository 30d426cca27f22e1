package repo_interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/credistack/lending-ledger/internal/commons"
	"github.com/credistack/lending-ledger/internal/domain"
)

type TransactionRepository interface {
	// Record persists the transaction and debits its account's balance by
	// the transaction amount as one unit: either both writes become visible
	// or neither does. The returned balance is the post-debit value the
	// store committed. Returns domain.ErrNotAcceptable when the debit would
	// take the balance below zero at commit time, domain.ErrNotFound when
	// the account is gone.
	Record(ctx context.Context, txn domain.Transaction) (domain.Transaction, decimal.Decimal, error)
	GetActiveByID(ctx context.Context, id string) (domain.Transaction, error)
	Update(ctx context.Context, txn domain.Transaction) (domain.Transaction, error)
	ListActive(ctx context.Context, accountFilter *string, typeFilter *domain.TransactionType, page commons.PageRequest) ([]domain.Transaction, int64, error)
}
