package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/credistack/lending-ledger/internal/commons"
	"github.com/credistack/lending-ledger/internal/domain"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `
id, amount, type, account_id,
COALESCE(created_by::text, ''), deleted, deleted_at, COALESCE(deleted_by::text, ''),
created_at`

func scanTransaction(row interface{ Scan(...any) error }) (domain.Transaction, error) {
	var txn domain.Transaction
	var deletedAt sql.NullTime

	if err := row.Scan(
		&txn.ID,
		&txn.Amount,
		&txn.Type,
		&txn.AccountID,
		&txn.CreatedBy,
		&txn.Deleted,
		&deletedAt,
		&txn.DeletedBy,
		&txn.CreatedAt,
	); err != nil {
		return domain.Transaction{}, err
	}

	if deletedAt.Valid {
		t := deletedAt.Time
		txn.DeletedAt = &t
	}

	return txn, nil
}

// Record debits the account and inserts the transaction row inside one
// database transaction. The guarded UPDATE re-checks the balance under the
// row lock, so concurrent debits cannot overdraw the account.
func (r *TransactionRepository) Record(ctx context.Context, txn domain.Transaction) (domain.Transaction, decimal.Decimal, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Transaction{}, decimal.Zero, fmt.Errorf("begin record transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const debitQuery = `
UPDATE accounts
SET balance = balance - $2, updated_at = NOW()
WHERE id = $1 AND deleted = FALSE AND balance >= $2
RETURNING balance`

	var newBalance decimal.Decimal
	if err := tx.QueryRowContext(ctx, debitQuery, txn.AccountID, txn.Amount).Scan(&newBalance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Zero rows means either the balance guard failed or the
			// account vanished between the service's pre-check and here.
			const existsQuery = `SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1 AND deleted = FALSE)`
			var exists bool
			if err := tx.QueryRowContext(ctx, existsQuery, txn.AccountID).Scan(&exists); err != nil {
				return domain.Transaction{}, decimal.Zero, fmt.Errorf("check account exists: %w", err)
			}
			if !exists {
				return domain.Transaction{}, decimal.Zero, domain.NotFound("account %s not found", txn.AccountID)
			}
			return domain.Transaction{}, decimal.Zero, domain.NotAcceptable("insufficient funds in account %s", txn.AccountID)
		}
		return domain.Transaction{}, decimal.Zero, fmt.Errorf("debit account: %w", err)
	}

	const insertQuery = `
INSERT INTO transactions (
	amount,
	type,
	account_id,
	created_by
) VALUES ($1, $2, $3, NULLIF($4, ''))
RETURNING id, created_at`

	if err := tx.QueryRowContext(
		ctx,
		insertQuery,
		txn.Amount,
		txn.Type,
		txn.AccountID,
		txn.CreatedBy,
	).Scan(&txn.ID, &txn.CreatedAt); err != nil {
		return domain.Transaction{}, decimal.Zero, fmt.Errorf("insert transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Transaction{}, decimal.Zero, fmt.Errorf("commit record transaction: %w", err)
	}

	return txn, newBalance, nil
}

func (r *TransactionRepository) GetActiveByID(ctx context.Context, id string) (domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 AND deleted = FALSE`

	txn, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Transaction{}, domain.NotFound("transaction %s not found", id)
		}
		return domain.Transaction{}, fmt.Errorf("get transaction by id: %w", err)
	}

	return txn, nil
}

func (r *TransactionRepository) Update(ctx context.Context, txn domain.Transaction) (domain.Transaction, error) {
	const query = `
UPDATE transactions
SET deleted = $2,
	deleted_at = $3,
	deleted_by = NULLIF($4, '')::uuid
WHERE id = $1
RETURNING id`

	var deletedAt sql.NullTime
	if txn.DeletedAt != nil {
		deletedAt = sql.NullTime{Time: *txn.DeletedAt, Valid: true}
	}

	if err := r.db.QueryRowContext(ctx, query, txn.ID, txn.Deleted, deletedAt, txn.DeletedBy).Scan(&txn.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Transaction{}, domain.NotFound("transaction %s not found", txn.ID)
		}
		return domain.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}

	return txn, nil
}

func (r *TransactionRepository) ListActive(ctx context.Context, accountFilter *string, typeFilter *domain.TransactionType, page commons.PageRequest) ([]domain.Transaction, int64, error) {
	page = page.Normalize()

	var typeArg any
	if typeFilter != nil {
		typeArg = string(*typeFilter)
	}
	var accountArg any
	if accountFilter != nil {
		accountArg = *accountFilter
	}

	const countQuery = `
SELECT COUNT(1) FROM transactions
WHERE deleted = FALSE
	AND ($1::uuid IS NULL OR account_id = $1)
	AND ($2::text IS NULL OR type = $2)`

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, accountArg, typeArg).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	query := `SELECT ` + transactionColumns + `
FROM transactions
WHERE deleted = FALSE
	AND ($1::uuid IS NULL OR account_id = $1)
	AND ($2::text IS NULL OR type = $2)
ORDER BY created_at
LIMIT $3 OFFSET $4`

	rows, err := r.db.QueryContext(ctx, query, accountArg, typeArg, page.Size, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transaction row: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate transaction rows: %w", err)
	}

	return txns, total, nil
}
