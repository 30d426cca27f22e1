package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/credistack/lending-ledger/internal/adapter/http/models"
	"github.com/credistack/lending-ledger/internal/clock"
	"github.com/credistack/lending-ledger/internal/domain"
	"github.com/credistack/lending-ledger/internal/events"
	"github.com/credistack/lending-ledger/internal/usecase/services"
)

// capturingPublisher records published events for assertions.
type capturingPublisher struct {
	mu     sync.Mutex
	events []any
}

func (p *capturingPublisher) Publish(_ context.Context, _ string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func TestCreateTransactionDebitsAccount(t *testing.T) {
	f := newFixture()
	owner := f.createClient(t, "alice@example.com")
	account := f.createAccount(t, owner.ID, "MAIN", decimal.NewFromInt(500))

	resp, err := f.transactions.Create(context.Background(), models.CreateTransactionRequest{
		AccountID: account.ID,
		Amount:    decimal.NewFromInt(120),
		Type:      "WITHDRAW",
	}, adminActor)
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	if resp.Data.Type != "WITHDRAW" {
		t.Fatalf("expected type WITHDRAW, got %s", resp.Data.Type)
	}

	accResp, err := f.accounts.Get(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if !accResp.Data.Balance.Equal(decimal.NewFromInt(380)) {
		t.Fatalf("expected balance 380 after withdraw, got %s", accResp.Data.Balance)
	}
}

func TestCreateTransactionDepositAlsoDebits(t *testing.T) {
	f := newFixture()
	owner := f.createClient(t, "alice@example.com")
	account := f.createAccount(t, owner.ID, "DEPOSIT", decimal.NewFromInt(300))

	_, err := f.transactions.Create(context.Background(), models.CreateTransactionRequest{
		AccountID: account.ID,
		Amount:    decimal.NewFromInt(100),
		Type:      "DEPOSIT",
	}, adminActor)
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	accResp, err := f.accounts.Get(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if !accResp.Data.Balance.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected balance 200 after deposit, got %s", accResp.Data.Balance)
	}
}

func TestCreateTransactionInsufficientFunds(t *testing.T) {
	f := newFixture()
	owner := f.createClient(t, "alice@example.com")
	account := f.createAccount(t, owner.ID, "MAIN", decimal.NewFromInt(50))

	_, err := f.transactions.Create(context.Background(), models.CreateTransactionRequest{
		AccountID: account.ID,
		Amount:    decimal.NewFromInt(51),
		Type:      "WITHDRAW",
	}, adminActor)
	if !errors.Is(err, domain.ErrNotAcceptable) {
		t.Fatalf("expected not acceptable error, got %v", err)
	}

	accResp, err := f.accounts.Get(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if !accResp.Data.Balance.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected balance unchanged at 50, got %s", accResp.Data.Balance)
	}

	listResp, err := f.transactions.List(context.Background(), account.ID, "", defaultPage())
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(listResp.Data.Items) != 0 {
		t.Fatalf("expected no transaction recorded, got %d", len(listResp.Data.Items))
	}
}

func TestCreateTransactionTypeCompatibility(t *testing.T) {
	f := newFixture()
	owner := f.createClient(t, "alice@example.com")
	main := f.createAccount(t, owner.ID, "MAIN", decimal.NewFromInt(1000))
	loan := f.createAccount(t, owner.ID, "LOAN", decimal.NewFromInt(1000))

	cases := []struct {
		name      string
		accountID string
		txnType   string
		wantErr   bool
	}{
		{"withdraw on main", main.ID, "WITHDRAW", false},
		{"transfer on main", main.ID, "TRANSFER", false},
		{"deposit on main", main.ID, "DEPOSIT", true},
		{"loan on main", main.ID, "LOAN", true},
		{"loan on loan", loan.ID, "LOAN", false},
		{"deposit on loan", loan.ID, "DEPOSIT", true},
		{"withdraw on loan", loan.ID, "WITHDRAW", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.transactions.Create(context.Background(), models.CreateTransactionRequest{
				AccountID: tc.accountID,
				Amount:    decimal.NewFromInt(10),
				Type:      tc.txnType,
			}, adminActor)
			if tc.wantErr {
				if !errors.Is(err, domain.ErrNotAcceptable) {
					t.Fatalf("expected not acceptable error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected transaction to be accepted, got %v", err)
			}
		})
	}
}

func TestCreateTransactionRejectsBadInput(t *testing.T) {
	f := newFixture()
	owner := f.createClient(t, "alice@example.com")
	account := f.createAccount(t, owner.ID, "MAIN", decimal.NewFromInt(100))

	_, err := f.transactions.Create(context.Background(), models.CreateTransactionRequest{
		AccountID: account.ID,
		Amount:    decimal.NewFromInt(10),
		Type:      "REFUND",
	}, adminActor)
	if !errors.Is(err, domain.ErrNotAcceptable) {
		t.Fatalf("expected not acceptable for unknown type, got %v", err)
	}

	_, err = f.transactions.Create(context.Background(), models.CreateTransactionRequest{
		AccountID: account.ID,
		Amount:    decimal.NewFromInt(-10),
		Type:      "WITHDRAW",
	}, adminActor)
	if !errors.Is(err, domain.ErrNotAcceptable) {
		t.Fatalf("expected not acceptable for negative amount, got %v", err)
	}

	_, err = f.transactions.Create(context.Background(), models.CreateTransactionRequest{
		AccountID: "missing-account",
		Amount:    decimal.NewFromInt(10),
		Type:      "WITHDRAW",
	}, adminActor)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for unknown account, got %v", err)
	}
}

func TestDeleteTransactionKeepsBalance(t *testing.T) {
	f := newFixture()
	owner := f.createClient(t, "alice@example.com")
	account := f.createAccount(t, owner.ID, "MAIN", decimal.NewFromInt(500))

	resp, err := f.transactions.Create(context.Background(), models.CreateTransactionRequest{
		AccountID: account.ID,
		Amount:    decimal.NewFromInt(100),
		Type:      "WITHDRAW",
	}, adminActor)
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	if _, err := f.transactions.Delete(context.Background(), resp.Data.ID, adminActor); err != nil {
		t.Fatalf("delete transaction: %v", err)
	}

	if _, err := f.transactions.Get(context.Background(), resp.Data.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}

	// Deleting the record does not reverse the debit.
	accResp, err := f.accounts.Get(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if !accResp.Data.Balance.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("expected balance 400, got %s", accResp.Data.Balance)
	}
}

func TestCreateTransactionPublishesCommittedBalance(t *testing.T) {
	f := newFixture()
	owner := f.createClient(t, "alice@example.com")
	account := f.createAccount(t, owner.ID, "MAIN", decimal.NewFromInt(500))

	capture := &capturingPublisher{}
	txnService := services.NewTransactionService(f.store.Transactions(), f.store.Accounts(), capture, clock.Fixed(fixedNow))

	amounts := []int64{120, 100}
	wantBalances := []int64{380, 280}
	for _, amount := range amounts {
		if _, err := txnService.Create(context.Background(), models.CreateTransactionRequest{
			AccountID: account.ID,
			Amount:    decimal.NewFromInt(amount),
			Type:      "WITHDRAW",
		}, adminActor); err != nil {
			t.Fatalf("create transaction of %d: %v", amount, err)
		}
	}

	if len(capture.events) != len(wantBalances) {
		t.Fatalf("expected %d published events, got %d", len(wantBalances), len(capture.events))
	}
	for i, want := range wantBalances {
		recorded, ok := capture.events[i].(events.TransactionRecorded)
		if !ok {
			t.Fatalf("event %d: expected TransactionRecorded, got %T", i, capture.events[i])
		}
		if !recorded.NewBalance.Equal(decimal.NewFromInt(want)) {
			t.Fatalf("event %d: expected newBalance %d, got %s", i, want, recorded.NewBalance)
		}
	}
}

func TestListTransactionsRejectsMalformedAccountFilter(t *testing.T) {
	f := newFixture()

	_, err := f.transactions.List(context.Background(), "not-a-uuid", "", defaultPage())
	if !errors.Is(err, domain.ErrNotAcceptable) {
		t.Fatalf("expected not acceptable for malformed account filter, got %v", err)
	}
}

func TestListTransactionsFilters(t *testing.T) {
	f := newFixture()
	owner := f.createClient(t, "alice@example.com")
	main := f.createAccount(t, owner.ID, "MAIN", decimal.NewFromInt(1000))
	deposit := f.createAccount(t, owner.ID, "DEPOSIT", decimal.NewFromInt(1000))

	for i := 0; i < 3; i++ {
		if _, err := f.transactions.Create(context.Background(), models.CreateTransactionRequest{
			AccountID: main.ID,
			Amount:    decimal.NewFromInt(10),
			Type:      "WITHDRAW",
		}, adminActor); err != nil {
			t.Fatalf("create withdraw: %v", err)
		}
	}
	if _, err := f.transactions.Create(context.Background(), models.CreateTransactionRequest{
		AccountID: deposit.ID,
		Amount:    decimal.NewFromInt(10),
		Type:      "DEPOSIT",
	}, adminActor); err != nil {
		t.Fatalf("create deposit: %v", err)
	}

	byAccount, err := f.transactions.List(context.Background(), main.ID, "", defaultPage())
	if err != nil {
		t.Fatalf("list by account: %v", err)
	}
	if len(byAccount.Data.Items) != 3 {
		t.Fatalf("expected 3 transactions for main account, got %d", len(byAccount.Data.Items))
	}

	byType, err := f.transactions.List(context.Background(), "", "DEPOSIT", defaultPage())
	if err != nil {
		t.Fatalf("list by type: %v", err)
	}
	if len(byType.Data.Items) != 1 {
		t.Fatalf("expected 1 DEPOSIT transaction, got %d", len(byType.Data.Items))
	}
}
