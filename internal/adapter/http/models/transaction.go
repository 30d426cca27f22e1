package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/credistack/lending-ledger/internal/domain"
)

type CreateTransactionRequest struct {
	AccountID string          `json:"accountId"`
	Amount    decimal.Decimal `json:"amount"`
	Type      string          `json:"type"`
}

func (r CreateTransactionRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.AccountID) == "" {
		errs = append(errs, "accountId is required")
	}
	if strings.TrimSpace(r.Type) == "" {
		errs = append(errs, "type is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type TransactionResponse struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Type      string          `json:"type"`
	AccountID string          `json:"accountId"`
	CreatedAt string          `json:"createdAt"`
}

func TransactionResponseFrom(txn domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        txn.ID,
		Amount:    txn.Amount,
		Type:      string(txn.Type),
		AccountID: txn.AccountID,
		CreatedAt: txn.CreatedAt.Format(time.RFC3339),
	}
}
