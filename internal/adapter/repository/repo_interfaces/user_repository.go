package repo_interfaces

import (
	"context"

	"github.com/credistack/lending-ledger/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	// GetActiveByID returns the non-deleted user with the given id.
	GetActiveByID(ctx context.Context, id string) (domain.User, error)
	HasActiveEmail(ctx context.Context, email string) (bool, error)
}
