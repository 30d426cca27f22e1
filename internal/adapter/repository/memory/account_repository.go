package memory

import (
	"context"
	"time"

	"github.com/credistack/lending-ledger/internal/commons"
	"github.com/credistack/lending-ledger/internal/domain"
)

type AccountRepository struct {
	store *Store
}

func (r *AccountRepository) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if account.ID == "" {
		account.ID = newID()
	}
	account.CreatedAt = now()
	account.UpdatedAt = account.CreatedAt
	r.store.accounts[account.ID] = account
	r.store.accountOrder = append(r.store.accountOrder, account.ID)

	return account, nil
}

func (r *AccountRepository) GetActiveByID(_ context.Context, id string) (domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	account, ok := r.store.accounts[id]
	if !ok || account.Deleted {
		return domain.Account{}, domain.NotFound("account %s not found", id)
	}

	return account, nil
}

func (r *AccountRepository) GetActiveByOwner(_ context.Context, ownerID string, typeFilter *domain.AccountType) (domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, id := range r.store.accountOrder {
		account := r.store.accounts[id]
		if account.Deleted || account.OwnerID != ownerID {
			continue
		}
		if typeFilter != nil && account.Type != *typeFilter {
			continue
		}
		return account, nil
	}

	return domain.Account{}, domain.NotFound("account for owner %s not found", ownerID)
}

func (r *AccountRepository) HasActiveForOwnerAndType(_ context.Context, ownerID string, accountType domain.AccountType) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, account := range r.store.accounts {
		if !account.Deleted && account.OwnerID == ownerID && account.Type == accountType {
			return true, nil
		}
	}

	return false, nil
}

// MarkDeleted stamps the deletion state on the stored record. The balance
// is left alone, so a delete that raced a debit keeps the debited value.
func (r *AccountRepository) MarkDeleted(_ context.Context, id string, actorID string, at time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	account, ok := r.store.accounts[id]
	if !ok || account.Deleted {
		return domain.NotFound("account %s not found", id)
	}

	account.DeletionState.MarkDeleted(actorID, at)
	account.UpdatedAt = now()
	r.store.accounts[id] = account

	return nil
}

func (r *AccountRepository) ListActive(_ context.Context, typeFilter *domain.AccountType, page commons.PageRequest) ([]domain.Account, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var matched []domain.Account
	for _, id := range r.store.accountOrder {
		account := r.store.accounts[id]
		if account.Deleted {
			continue
		}
		if typeFilter != nil && account.Type != *typeFilter {
			continue
		}
		matched = append(matched, account)
	}

	return paginate(matched, page), int64(len(matched)), nil
}

func paginate[T any](items []T, page commons.PageRequest) []T {
	page = page.Normalize()
	start := page.Offset()
	if start >= len(items) {
		return nil
	}
	end := start + page.Size
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
