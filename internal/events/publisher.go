// Package events defines the ledger activity events published after a
// mutation commits, plus the publisher abstraction the services depend on.
package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionRecorded struct {
	TransactionID string          `json:"transactionId"`
	AccountID     string          `json:"accountId"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	NewBalance    decimal.Decimal `json:"newBalance"`
	RecordedBy    string          `json:"recordedBy"`
	OccurredAt    time.Time       `json:"occurredAt"`
}

type LoanStatusChanged struct {
	LoanID     string    `json:"loanId"`
	OldStatus  string    `json:"oldStatus"`
	NewStatus  string    `json:"newStatus"`
	ChangedBy  string    `json:"changedBy"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher delivers an event to a named topic. Publishing is best-effort
// from the core's point of view: a failed publish never rolls back the
// committed mutation.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
}

// Noop drops every event. Used in tests and when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }
