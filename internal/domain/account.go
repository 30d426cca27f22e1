package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeMain    AccountType = "MAIN"
	AccountTypeDeposit AccountType = "DEPOSIT"
	AccountTypeLoan    AccountType = "LOAN"
)

func ParseAccountType(raw string) (AccountType, error) {
	switch AccountType(strings.ToUpper(strings.TrimSpace(raw))) {
	case AccountTypeMain:
		return AccountTypeMain, nil
	case AccountTypeDeposit:
		return AccountTypeDeposit, nil
	case AccountTypeLoan:
		return AccountTypeLoan, nil
	default:
		return "", NotAcceptable("unknown account type %q", raw)
	}
}

// Account is a typed monetary balance bucket owned by one user.
// An owner holds at most one non-deleted account per type.
type Account struct {
	ID           string
	Balance      decimal.Decimal
	Type         AccountType
	InterestRate int
	OwnerID      string
	Provenance
	DeletionState
	CreatedAt time.Time
	UpdatedAt time.Time
}
