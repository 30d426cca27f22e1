package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/credistack/lending-ledger/internal/domain"
)

type CreateAccountRequest struct {
	OwnerID      string          `json:"ownerId"`
	Type         string          `json:"type"`
	Balance      decimal.Decimal `json:"balance"`
	InterestRate int             `json:"interestRate"`
}

func (r CreateAccountRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.OwnerID) == "" {
		errs = append(errs, "ownerId is required")
	}
	if strings.TrimSpace(r.Type) == "" {
		errs = append(errs, "type is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type AccountResponse struct {
	ID           string          `json:"id"`
	Balance      decimal.Decimal `json:"balance"`
	Type         string          `json:"type"`
	InterestRate int             `json:"interestRate"`
	OwnerID      string          `json:"ownerId"`
	CreatedAt    string          `json:"createdAt"`
	UpdatedAt    string          `json:"updatedAt"`
}

func AccountResponseFrom(account domain.Account) AccountResponse {
	return AccountResponse{
		ID:           account.ID,
		Balance:      account.Balance,
		Type:         string(account.Type),
		InterestRate: account.InterestRate,
		OwnerID:      account.OwnerID,
		CreatedAt:    account.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    account.UpdatedAt.Format(time.RFC3339),
	}
}

type MultiDeleteRequest struct {
	IDs []string `json:"ids"`
}

func (r MultiDeleteRequest) Validate() error {
	if len(r.IDs) == 0 {
		return errors.New("ids is required")
	}
	for _, id := range r.IDs {
		if strings.TrimSpace(id) == "" {
			return errors.New("ids must not contain blank entries")
		}
	}
	return nil
}
