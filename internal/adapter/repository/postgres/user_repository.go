package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/credistack/lending-ledger/internal/domain"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	const query = `
INSERT INTO users (
	email,
	full_name,
	roles,
	password_hash,
	created_by
) VALUES ($1, $2, $3, $4, NULLIF($5, ''))
RETURNING id, created_at, updated_at`

	roles := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, string(role))
	}

	if err := r.db.QueryRowContext(
		ctx,
		query,
		user.Email,
		user.FullName,
		pq.Array(roles),
		user.PasswordHash,
		user.CreatedBy,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetActiveByID(ctx context.Context, id string) (domain.User, error) {
	const query = `
SELECT id, email, full_name, roles, password_hash, COALESCE(created_by::text, ''), created_at, updated_at
FROM users
WHERE id = $1 AND deleted = FALSE`

	var user domain.User
	var roles []string

	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		pq.Array(&roles),
		&user.PasswordHash,
		&user.CreatedBy,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.NotFound("user %s not found", id)
		}
		return domain.User{}, fmt.Errorf("get user by id: %w", err)
	}

	user.Roles = make([]domain.Role, 0, len(roles))
	for _, role := range roles {
		user.Roles = append(user.Roles, domain.Role(role))
	}

	return user, nil
}

func (r *UserRepository) HasActiveEmail(ctx context.Context, email string) (bool, error) {
	const query = `SELECT COUNT(1) FROM users WHERE LOWER(email) = LOWER($1) AND deleted = FALSE`

	var count int
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&count); err != nil {
		return false, fmt.Errorf("check user email: %w", err)
	}

	return count > 0, nil
}
