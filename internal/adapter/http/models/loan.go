package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/credistack/lending-ledger/internal/domain"
)

type CreateLoanRequest struct {
	OwnerID      string          `json:"ownerId"`
	Amount       decimal.Decimal `json:"amount"`
	InterestRate int             `json:"interestRate"`
	Months       int             `json:"months"`
}

func (r CreateLoanRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.OwnerID) == "" {
		errs = append(errs, "ownerId is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type PayLoanRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type ChangeLoanStatusRequest struct {
	Status string `json:"status"`
}

func (r ChangeLoanStatusRequest) Validate() error {
	if strings.TrimSpace(r.Status) == "" {
		return errors.New("status is required")
	}
	return nil
}

type LoanResponse struct {
	ID             string          `json:"id"`
	Amount         decimal.Decimal `json:"amount"`
	InterestRate   int             `json:"interestRate"`
	Status         string          `json:"status"`
	DueDate        string          `json:"dueDate"`
	PayPerMonth    decimal.Decimal `json:"payPerMonth"`
	MustBePay      decimal.Decimal `json:"mustBePay"`
	PaidEver       decimal.Decimal `json:"paidEver"`
	ChangeStatusBy string          `json:"changeStatusBy,omitempty"`
	OwnerID        string          `json:"ownerId"`
	Deleted        bool            `json:"deleted,omitempty"`
	CreatedAt      string          `json:"createdAt"`
	UpdatedAt      string          `json:"updatedAt"`
}

func LoanResponseFrom(loan domain.Loan) LoanResponse {
	return LoanResponse{
		ID:             loan.ID,
		Amount:         loan.Amount,
		InterestRate:   loan.InterestRate,
		Status:         string(loan.Status),
		DueDate:        loan.DueDate.Format("2006-01-02"),
		PayPerMonth:    loan.PayPerMonth,
		MustBePay:      loan.MustBePay,
		PaidEver:       loan.PaidEver,
		ChangeStatusBy: loan.ChangeStatusBy,
		OwnerID:        loan.OwnerID,
		Deleted:        loan.Deleted,
		CreatedAt:      loan.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      loan.UpdatedAt.Format(time.RFC3339),
	}
}
