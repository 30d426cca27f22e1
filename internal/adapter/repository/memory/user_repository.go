package memory

import (
	"context"
	"strings"

	"github.com/credistack/lending-ledger/internal/domain"
)

type UserRepository struct {
	store *Store
}

func (r *UserRepository) Create(_ context.Context, user domain.User) (domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if user.ID == "" {
		user.ID = newID()
	}
	user.CreatedAt = now()
	user.UpdatedAt = user.CreatedAt
	r.store.users[user.ID] = user

	return user, nil
}

func (r *UserRepository) GetActiveByID(_ context.Context, id string) (domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok || user.Deleted {
		return domain.User{}, domain.NotFound("user %s not found", id)
	}

	return user, nil
}

func (r *UserRepository) HasActiveEmail(_ context.Context, email string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, user := range r.store.users {
		if !user.Deleted && strings.EqualFold(user.Email, email) {
			return true, nil
		}
	}

	return false, nil
}
