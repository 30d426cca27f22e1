package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/credistack/lending-ledger/internal/commons"
	"github.com/credistack/lending-ledger/internal/domain"
)

type LoanRepository struct {
	db *sql.DB
}

func NewLoanRepository(db *sql.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

const loanColumns = `
id, amount, interest_rate, status, due_date, pay_per_month, must_be_pay, paid_ever,
COALESCE(change_status_by::text, ''), owner_id,
COALESCE(created_by::text, ''), deleted, deleted_at, COALESCE(deleted_by::text, ''),
created_at, updated_at`

func scanLoan(row interface{ Scan(...any) error }) (domain.Loan, error) {
	var loan domain.Loan
	var deletedAt sql.NullTime

	if err := row.Scan(
		&loan.ID,
		&loan.Amount,
		&loan.InterestRate,
		&loan.Status,
		&loan.DueDate,
		&loan.PayPerMonth,
		&loan.MustBePay,
		&loan.PaidEver,
		&loan.ChangeStatusBy,
		&loan.OwnerID,
		&loan.CreatedBy,
		&loan.Deleted,
		&deletedAt,
		&loan.DeletedBy,
		&loan.CreatedAt,
		&loan.UpdatedAt,
	); err != nil {
		return domain.Loan{}, err
	}

	if deletedAt.Valid {
		t := deletedAt.Time
		loan.DeletedAt = &t
	}

	return loan, nil
}

func (r *LoanRepository) Create(ctx context.Context, loan domain.Loan) (domain.Loan, error) {
	const query = `
INSERT INTO loans (
	amount,
	interest_rate,
	status,
	due_date,
	pay_per_month,
	must_be_pay,
	paid_ever,
	owner_id,
	created_by
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''))
RETURNING id, created_at, updated_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		loan.Amount,
		loan.InterestRate,
		loan.Status,
		loan.DueDate,
		loan.PayPerMonth,
		loan.MustBePay,
		loan.PaidEver,
		loan.OwnerID,
		loan.CreatedBy,
	).Scan(&loan.ID, &loan.CreatedAt, &loan.UpdatedAt); err != nil {
		return domain.Loan{}, fmt.Errorf("create loan: %w", err)
	}

	return loan, nil
}

func (r *LoanRepository) GetByID(ctx context.Context, id string) (domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`

	loan, err := scanLoan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Loan{}, domain.NotFound("loan %s not found", id)
		}
		return domain.Loan{}, fmt.Errorf("get loan by id: %w", err)
	}

	return loan, nil
}

func (r *LoanRepository) GetActiveByID(ctx context.Context, id string) (domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1 AND deleted = FALSE`

	loan, err := scanLoan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Loan{}, domain.NotFound("loan %s not found", id)
		}
		return domain.Loan{}, fmt.Errorf("get active loan by id: %w", err)
	}

	return loan, nil
}

// Pay applies the payment with a guarded UPDATE: the outstanding check
// happens under the row lock, so concurrent payments cannot overdraw the
// loan or lose each other's writes.
func (r *LoanRepository) Pay(ctx context.Context, id string, amount decimal.Decimal) (domain.Loan, error) {
	query := `
UPDATE loans
SET must_be_pay = must_be_pay - $2,
	paid_ever = paid_ever + $2,
	updated_at = NOW()
WHERE id = $1 AND deleted = FALSE AND must_be_pay >= $2
RETURNING ` + loanColumns

	loan, err := scanLoan(r.db.QueryRowContext(ctx, query, id, amount))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			exists, existsErr := r.activeExists(ctx, id)
			if existsErr != nil {
				return domain.Loan{}, existsErr
			}
			if !exists {
				return domain.Loan{}, domain.NotFound("loan %s not found", id)
			}
			return domain.Loan{}, domain.NotAcceptable("payment %s exceeds outstanding amount on loan %s", amount, id)
		}
		return domain.Loan{}, fmt.Errorf("pay loan: %w", err)
	}

	return loan, nil
}

func (r *LoanRepository) UpdateStatus(ctx context.Context, id string, status domain.LoanStatus, changedBy string) (domain.Loan, error) {
	query := `
UPDATE loans
SET status = $2,
	change_status_by = NULLIF($3, '')::uuid,
	updated_at = NOW()
WHERE id = $1 AND deleted = FALSE
RETURNING ` + loanColumns

	loan, err := scanLoan(r.db.QueryRowContext(ctx, query, id, status, changedBy))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Loan{}, domain.NotFound("loan %s not found", id)
		}
		return domain.Loan{}, fmt.Errorf("update loan status: %w", err)
	}

	return loan, nil
}

func (r *LoanRepository) MarkDeleted(ctx context.Context, id string, actorID string, at time.Time) error {
	const query = `
UPDATE loans
SET deleted = TRUE,
	deleted_at = $2,
	deleted_by = NULLIF($3, '')::uuid,
	updated_at = NOW()
WHERE id = $1 AND deleted = FALSE
RETURNING id`

	if err := r.db.QueryRowContext(ctx, query, id, at, actorID).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFound("loan %s not found", id)
		}
		return fmt.Errorf("delete loan: %w", err)
	}

	return nil
}

func (r *LoanRepository) activeExists(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM loans WHERE id = $1 AND deleted = FALSE)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check loan exists: %w", err)
	}

	return exists, nil
}

func (r *LoanRepository) ListActive(ctx context.Context, statusFilter *domain.LoanStatus, page commons.PageRequest) ([]domain.Loan, int64, error) {
	page = page.Normalize()

	var statusArg any
	if statusFilter != nil {
		statusArg = string(*statusFilter)
	}

	const countQuery = `SELECT COUNT(1) FROM loans WHERE deleted = FALSE AND ($1::text IS NULL OR status = $1)`

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, statusArg).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count loans: %w", err)
	}

	query := `SELECT ` + loanColumns + `
FROM loans
WHERE deleted = FALSE AND ($1::text IS NULL OR status = $1)
ORDER BY created_at
LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, statusArg, page.Size, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list loans: %w", err)
	}
	defer rows.Close()

	loans, err := collectLoans(rows)
	if err != nil {
		return nil, 0, err
	}

	return loans, total, nil
}

func (r *LoanRepository) ListActiveByOwner(ctx context.Context, ownerID string, page commons.PageRequest) ([]domain.Loan, int64, error) {
	page = page.Normalize()

	const countQuery = `SELECT COUNT(1) FROM loans WHERE deleted = FALSE AND owner_id = $1`

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, ownerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count owner loans: %w", err)
	}

	query := `SELECT ` + loanColumns + `
FROM loans
WHERE deleted = FALSE AND owner_id = $1
ORDER BY created_at
LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, ownerID, page.Size, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list owner loans: %w", err)
	}
	defer rows.Close()

	loans, err := collectLoans(rows)
	if err != nil {
		return nil, 0, err
	}

	return loans, total, nil
}

func collectLoans(rows *sql.Rows) ([]domain.Loan, error) {
	var loans []domain.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan loan row: %w", err)
		}
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate loan rows: %w", err)
	}

	return loans, nil
}
