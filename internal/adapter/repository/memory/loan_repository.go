package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/credistack/lending-ledger/internal/commons"
	"github.com/credistack/lending-ledger/internal/domain"
)

type LoanRepository struct {
	store *Store
}

func (r *LoanRepository) Create(_ context.Context, loan domain.Loan) (domain.Loan, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if loan.ID == "" {
		loan.ID = newID()
	}
	loan.CreatedAt = now()
	loan.UpdatedAt = loan.CreatedAt
	r.store.loans[loan.ID] = loan
	r.store.loanOrder = append(r.store.loanOrder, loan.ID)

	return loan, nil
}

func (r *LoanRepository) GetByID(_ context.Context, id string) (domain.Loan, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	loan, ok := r.store.loans[id]
	if !ok {
		return domain.Loan{}, domain.NotFound("loan %s not found", id)
	}

	return loan, nil
}

func (r *LoanRepository) GetActiveByID(_ context.Context, id string) (domain.Loan, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	loan, ok := r.store.loans[id]
	if !ok || loan.Deleted {
		return domain.Loan{}, domain.NotFound("loan %s not found", id)
	}

	return loan, nil
}

// Pay re-checks the outstanding total and applies the payment under the
// store lock, so concurrent payments serialize instead of overwriting
// each other.
func (r *LoanRepository) Pay(_ context.Context, id string, amount decimal.Decimal) (domain.Loan, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	loan, ok := r.store.loans[id]
	if !ok || loan.Deleted {
		return domain.Loan{}, domain.NotFound("loan %s not found", id)
	}
	if amount.GreaterThan(loan.MustBePay) {
		return domain.Loan{}, domain.NotAcceptable("payment %s exceeds outstanding amount %s", amount, loan.MustBePay)
	}

	loan.PaidEver = loan.PaidEver.Add(amount)
	loan.MustBePay = loan.MustBePay.Sub(amount)
	loan.UpdatedAt = now()
	r.store.loans[id] = loan

	return loan, nil
}

func (r *LoanRepository) UpdateStatus(_ context.Context, id string, status domain.LoanStatus, changedBy string) (domain.Loan, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	loan, ok := r.store.loans[id]
	if !ok || loan.Deleted {
		return domain.Loan{}, domain.NotFound("loan %s not found", id)
	}

	loan.Status = status
	loan.ChangeStatusBy = changedBy
	loan.UpdatedAt = now()
	r.store.loans[id] = loan

	return loan, nil
}

func (r *LoanRepository) MarkDeleted(_ context.Context, id string, actorID string, at time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	loan, ok := r.store.loans[id]
	if !ok || loan.Deleted {
		return domain.NotFound("loan %s not found", id)
	}

	loan.DeletionState.MarkDeleted(actorID, at)
	loan.UpdatedAt = now()
	r.store.loans[id] = loan

	return nil
}

func (r *LoanRepository) ListActive(_ context.Context, statusFilter *domain.LoanStatus, page commons.PageRequest) ([]domain.Loan, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var matched []domain.Loan
	for _, id := range r.store.loanOrder {
		loan := r.store.loans[id]
		if loan.Deleted {
			continue
		}
		if statusFilter != nil && loan.Status != *statusFilter {
			continue
		}
		matched = append(matched, loan)
	}

	return paginate(matched, page), int64(len(matched)), nil
}

func (r *LoanRepository) ListActiveByOwner(_ context.Context, ownerID string, page commons.PageRequest) ([]domain.Loan, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var matched []domain.Loan
	for _, id := range r.store.loanOrder {
		loan := r.store.loans[id]
		if loan.Deleted || loan.OwnerID != ownerID {
			continue
		}
		matched = append(matched, loan)
	}

	return paginate(matched, page), int64(len(matched)), nil
}
