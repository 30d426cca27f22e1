package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/credistack/lending-ledger/internal/commons"
	"github.com/credistack/lending-ledger/internal/domain"
)

type TransactionRepository struct {
	store *Store
}

// Record debits the account and appends the transaction under one lock,
// so the two writes are observed together or not at all.
func (r *TransactionRepository) Record(_ context.Context, txn domain.Transaction) (domain.Transaction, decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	account, ok := r.store.accounts[txn.AccountID]
	if !ok || account.Deleted {
		return domain.Transaction{}, decimal.Zero, domain.NotFound("account %s not found", txn.AccountID)
	}

	newBalance := account.Balance.Sub(txn.Amount)
	if newBalance.LessThan(decimal.Zero) {
		return domain.Transaction{}, decimal.Zero, domain.NotAcceptable("insufficient funds in account %s", txn.AccountID)
	}

	account.Balance = newBalance
	account.UpdatedAt = now()
	r.store.accounts[account.ID] = account

	if txn.ID == "" {
		txn.ID = newID()
	}
	txn.CreatedAt = now()
	r.store.transactions[txn.ID] = txn
	r.store.transactionOrder = append(r.store.transactionOrder, txn.ID)

	return txn, newBalance, nil
}

func (r *TransactionRepository) GetActiveByID(_ context.Context, id string) (domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	txn, ok := r.store.transactions[id]
	if !ok || txn.Deleted {
		return domain.Transaction{}, domain.NotFound("transaction %s not found", id)
	}

	return txn, nil
}

func (r *TransactionRepository) Update(_ context.Context, txn domain.Transaction) (domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.transactions[txn.ID]; !ok {
		return domain.Transaction{}, domain.NotFound("transaction %s not found", txn.ID)
	}
	r.store.transactions[txn.ID] = txn

	return txn, nil
}

func (r *TransactionRepository) ListActive(_ context.Context, accountFilter *string, typeFilter *domain.TransactionType, page commons.PageRequest) ([]domain.Transaction, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var matched []domain.Transaction
	for _, id := range r.store.transactionOrder {
		txn := r.store.transactions[id]
		if txn.Deleted {
			continue
		}
		if accountFilter != nil && txn.AccountID != *accountFilter {
			continue
		}
		if typeFilter != nil && txn.Type != *typeFilter {
			continue
		}
		matched = append(matched, txn)
	}

	return paginate(matched, page), int64(len(matched)), nil
}
