package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "DEPOSIT"
	TransactionTypeWithdraw TransactionType = "WITHDRAW"
	TransactionTypeLoan     TransactionType = "LOAN"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

func ParseTransactionType(raw string) (TransactionType, error) {
	switch TransactionType(strings.ToUpper(strings.TrimSpace(raw))) {
	case TransactionTypeDeposit:
		return TransactionTypeDeposit, nil
	case TransactionTypeWithdraw:
		return TransactionTypeWithdraw, nil
	case TransactionTypeLoan:
		return TransactionTypeLoan, nil
	case TransactionTypeTransfer:
		return TransactionTypeTransfer, nil
	default:
		return "", NotAcceptable("unknown transaction type %q", raw)
	}
}

// Transaction is a single balance-affecting event recorded against one
// account. Created once, immutable afterwards except for its deletion state.
type Transaction struct {
	ID        string
	Amount    decimal.Decimal
	Type      TransactionType
	AccountID string
	Provenance
	DeletionState
	CreatedAt time.Time
}

// CompatibleWith enforces the transaction/account type matrix: a LOAN
// transaction needs a LOAN account, a DEPOSIT transaction a DEPOSIT
// account, and neither may be recorded against a MAIN account.
func (t TransactionType) CompatibleWith(accountType AccountType) error {
	if accountType == AccountTypeMain && (t == TransactionTypeLoan || t == TransactionTypeDeposit) {
		return NotAcceptable("cannot record a %s transaction against a MAIN account", t)
	}
	if t == TransactionTypeLoan && accountType != AccountTypeLoan {
		return NotAcceptable("transaction and account types not suitable")
	}
	if t == TransactionTypeDeposit && accountType != AccountTypeDeposit {
		return NotAcceptable("transaction and account types not suitable")
	}
	return nil
}
