package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type LoanStatus string

const (
	LoanStatusActive    LoanStatus = "ACTIVE"
	LoanStatusFreeze    LoanStatus = "FREEZE"
	LoanStatusCompleted LoanStatus = "COMPLETED"
	LoanStatusOverdue   LoanStatus = "OVERDUE"
)

func ParseLoanStatus(raw string) (LoanStatus, error) {
	switch LoanStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case LoanStatusActive:
		return LoanStatusActive, nil
	case LoanStatusFreeze:
		return LoanStatusFreeze, nil
	case LoanStatusCompleted:
		return LoanStatusCompleted, nil
	case LoanStatusOverdue:
		return LoanStatusOverdue, nil
	default:
		return "", NotAcceptable("unknown loan status %q", raw)
	}
}

// allowedTransitions is the enforced status graph. COMPLETED is terminal;
// self-transitions are always permitted.
var allowedTransitions = map[LoanStatus][]LoanStatus{
	LoanStatusActive:  {LoanStatusFreeze, LoanStatusCompleted, LoanStatusOverdue},
	LoanStatusFreeze:  {LoanStatusActive, LoanStatusCompleted},
	LoanStatusOverdue: {LoanStatusActive, LoanStatusCompleted},
}

func (s LoanStatus) CanTransitionTo(next LoanStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Loan is an amortized lending obligation. MustBePay is the outstanding
// total and only ever decreases through payments; PaidEver accumulates
// everything repaid so far.
type Loan struct {
	ID             string
	Amount         decimal.Decimal
	InterestRate   int
	Status         LoanStatus
	DueDate        time.Time
	PayPerMonth    decimal.Decimal
	MustBePay      decimal.Decimal
	PaidEver       decimal.Decimal
	ChangeStatusBy string
	OwnerID        string
	Provenance
	DeletionState
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AmortizeSimpleInterest computes the repayment schedule:
// mustBePay = amount + amount * (rate/100) * (months/12), payPerMonth =
// mustBePay / months. Division is exact decimal division; values are kept
// at full precision and rounded only when rendered.
func AmortizeSimpleInterest(amount decimal.Decimal, interestRate int, months int) (mustBePay, payPerMonth decimal.Decimal) {
	interest := amount.
		Mul(decimal.NewFromInt(int64(interestRate))).
		Div(decimal.NewFromInt(100)).
		Mul(decimal.NewFromInt(int64(months))).
		Div(decimal.NewFromInt(12))
	mustBePay = amount.Add(interest)
	payPerMonth = mustBePay.Div(decimal.NewFromInt(int64(months)))
	return mustBePay, payPerMonth
}
