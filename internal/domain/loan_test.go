package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/credistack/lending-ledger/internal/domain"
)

func TestAmortizeSimpleInterest(t *testing.T) {
	mustBePay, payPerMonth := domain.AmortizeSimpleInterest(decimal.NewFromInt(1000), 12, 12)

	if !mustBePay.Equal(decimal.NewFromInt(1120)) {
		t.Fatalf("expected mustBePay 1120, got %s", mustBePay.String())
	}
	if !payPerMonth.Round(2).Equal(decimal.NewFromFloat(93.33)) {
		t.Fatalf("expected payPerMonth 93.33 after rounding, got %s", payPerMonth.String())
	}
	if !payPerMonth.Mul(decimal.NewFromInt(12)).Round(10).Equal(decimal.NewFromInt(1120)) {
		t.Fatalf("expected monthly payments to sum back to 1120, got %s", payPerMonth.Mul(decimal.NewFromInt(12)).String())
	}
}

func TestAmortizeSimpleInterestZeroRate(t *testing.T) {
	mustBePay, payPerMonth := domain.AmortizeSimpleInterest(decimal.NewFromInt(600), 0, 6)

	if !mustBePay.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("expected mustBePay 600, got %s", mustBePay.String())
	}
	if !payPerMonth.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected payPerMonth 100, got %s", payPerMonth.String())
	}
}

func TestParseLoanStatus(t *testing.T) {
	status, err := domain.ParseLoanStatus("freeze")
	if err != nil {
		t.Fatalf("expected freeze to parse, got %v", err)
	}
	if status != domain.LoanStatusFreeze {
		t.Fatalf("expected FREEZE, got %s", status)
	}

	if _, err := domain.ParseLoanStatus("SETTLED"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestLoanStatusTransitions(t *testing.T) {
	cases := []struct {
		from    domain.LoanStatus
		to      domain.LoanStatus
		allowed bool
	}{
		{domain.LoanStatusActive, domain.LoanStatusFreeze, true},
		{domain.LoanStatusActive, domain.LoanStatusCompleted, true},
		{domain.LoanStatusFreeze, domain.LoanStatusActive, true},
		{domain.LoanStatusFreeze, domain.LoanStatusCompleted, true},
		{domain.LoanStatusOverdue, domain.LoanStatusActive, true},
		{domain.LoanStatusCompleted, domain.LoanStatusActive, false},
		{domain.LoanStatusCompleted, domain.LoanStatusFreeze, false},
		{domain.LoanStatusFreeze, domain.LoanStatusOverdue, false},
		{domain.LoanStatusActive, domain.LoanStatusActive, true},
		{domain.LoanStatusCompleted, domain.LoanStatusCompleted, true},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Fatalf("transition %s -> %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}
