package domain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/credistack/lending-ledger/internal/domain"
)

func TestParseTransactionType(t *testing.T) {
	parsed, err := domain.ParseTransactionType(" withdraw ")
	if err != nil {
		t.Fatalf("expected withdraw to parse, got %v", err)
	}
	if parsed != domain.TransactionTypeWithdraw {
		t.Fatalf("expected WITHDRAW, got %s", parsed)
	}

	_, err = domain.ParseTransactionType("REFUND")
	if err == nil {
		t.Fatal("expected error for unknown transaction type")
	}
	if !errors.Is(err, domain.ErrNotAcceptable) {
		t.Fatalf("expected not acceptable kind, got %v", err)
	}
}

func TestMainAccountIncompatibilityMessage(t *testing.T) {
	for _, txnType := range []domain.TransactionType{domain.TransactionTypeLoan, domain.TransactionTypeDeposit} {
		err := txnType.CompatibleWith(domain.AccountTypeMain)
		if err == nil {
			t.Fatalf("%s on MAIN account: expected incompatibility error", txnType)
		}
		if !strings.Contains(err.Error(), "MAIN") {
			t.Fatalf("%s on MAIN account: expected the MAIN-specific message, got %q", txnType, err.Error())
		}
	}
}

func TestTransactionTypeCompatibility(t *testing.T) {
	cases := []struct {
		txnType     domain.TransactionType
		accountType domain.AccountType
		allowed     bool
	}{
		{domain.TransactionTypeLoan, domain.AccountTypeLoan, true},
		{domain.TransactionTypeLoan, domain.AccountTypeMain, false},
		{domain.TransactionTypeLoan, domain.AccountTypeDeposit, false},
		{domain.TransactionTypeDeposit, domain.AccountTypeDeposit, true},
		{domain.TransactionTypeDeposit, domain.AccountTypeMain, false},
		{domain.TransactionTypeDeposit, domain.AccountTypeLoan, false},
		{domain.TransactionTypeWithdraw, domain.AccountTypeMain, true},
		{domain.TransactionTypeTransfer, domain.AccountTypeMain, true},
	}

	for _, tc := range cases {
		err := tc.txnType.CompatibleWith(tc.accountType)
		if tc.allowed && err != nil {
			t.Fatalf("%s on %s account: expected compatible, got %v", tc.txnType, tc.accountType, err)
		}
		if !tc.allowed {
			if err == nil {
				t.Fatalf("%s on %s account: expected incompatibility error", tc.txnType, tc.accountType)
			}
			if !errors.Is(err, domain.ErrNotAcceptable) {
				t.Fatalf("%s on %s account: expected not acceptable kind, got %v", tc.txnType, tc.accountType, err)
			}
		}
	}
}
