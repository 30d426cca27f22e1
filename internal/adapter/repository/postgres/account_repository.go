package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/credistack/lending-ledger/internal/commons"
	"github.com/credistack/lending-ledger/internal/domain"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `
id, balance, type, interest_rate, owner_id,
COALESCE(created_by::text, ''), deleted, deleted_at, COALESCE(deleted_by::text, ''),
created_at, updated_at`

func scanAccount(row interface{ Scan(...any) error }) (domain.Account, error) {
	var account domain.Account
	var deletedAt sql.NullTime

	if err := row.Scan(
		&account.ID,
		&account.Balance,
		&account.Type,
		&account.InterestRate,
		&account.OwnerID,
		&account.CreatedBy,
		&account.Deleted,
		&deletedAt,
		&account.DeletedBy,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return domain.Account{}, err
	}

	if deletedAt.Valid {
		t := deletedAt.Time
		account.DeletedAt = &t
	}

	return account, nil
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	const query = `
INSERT INTO accounts (
	balance,
	type,
	interest_rate,
	owner_id,
	created_by
) VALUES ($1, $2, $3, $4, NULLIF($5, ''))
RETURNING id, created_at, updated_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		account.Balance,
		account.Type,
		account.InterestRate,
		account.OwnerID,
		account.CreatedBy,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt); err != nil {
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) GetActiveByID(ctx context.Context, id string) (domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 AND deleted = FALSE`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.NotFound("account %s not found", id)
		}
		return domain.Account{}, fmt.Errorf("get account by id: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) GetActiveByOwner(ctx context.Context, ownerID string, typeFilter *domain.AccountType) (domain.Account, error) {
	query := `SELECT ` + accountColumns + `
FROM accounts
WHERE owner_id = $1 AND deleted = FALSE AND ($2::text IS NULL OR type = $2)
ORDER BY created_at
LIMIT 1`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, ownerID, typeFilterArg(typeFilter)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.NotFound("account for owner %s not found", ownerID)
		}
		return domain.Account{}, fmt.Errorf("get account by owner: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) HasActiveForOwnerAndType(ctx context.Context, ownerID string, accountType domain.AccountType) (bool, error) {
	const query = `SELECT COUNT(1) FROM accounts WHERE owner_id = $1 AND type = $2 AND deleted = FALSE`

	var count int
	if err := r.db.QueryRowContext(ctx, query, ownerID, accountType).Scan(&count); err != nil {
		return false, fmt.Errorf("check owner account type: %w", err)
	}

	return count > 0, nil
}

// MarkDeleted stamps the deletion columns only. The balance column is not
// written, so a delete that raced a debit keeps the debited value on the
// audited row.
func (r *AccountRepository) MarkDeleted(ctx context.Context, id string, actorID string, at time.Time) error {
	const query = `
UPDATE accounts
SET deleted = TRUE,
	deleted_at = $2,
	deleted_by = NULLIF($3, '')::uuid,
	updated_at = NOW()
WHERE id = $1 AND deleted = FALSE
RETURNING id`

	if err := r.db.QueryRowContext(ctx, query, id, at, actorID).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFound("account %s not found", id)
		}
		return fmt.Errorf("delete account: %w", err)
	}

	return nil
}

func (r *AccountRepository) ListActive(ctx context.Context, typeFilter *domain.AccountType, page commons.PageRequest) ([]domain.Account, int64, error) {
	page = page.Normalize()

	const countQuery = `SELECT COUNT(1) FROM accounts WHERE deleted = FALSE AND ($1::text IS NULL OR type = $1)`

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, typeFilterArg(typeFilter)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count accounts: %w", err)
	}

	query := `SELECT ` + accountColumns + `
FROM accounts
WHERE deleted = FALSE AND ($1::text IS NULL OR type = $1)
ORDER BY created_at
LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, typeFilterArg(typeFilter), page.Size, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan account row: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate account rows: %w", err)
	}

	return accounts, total, nil
}

func typeFilterArg(typeFilter *domain.AccountType) any {
	if typeFilter == nil {
		return nil
	}
	return string(*typeFilter)
}
