package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/credistack/lending-ledger/internal/adapter/http/models"
	"github.com/credistack/lending-ledger/internal/adapter/repository/memory"
	"github.com/credistack/lending-ledger/internal/clock"
	"github.com/credistack/lending-ledger/internal/commons"
	"github.com/credistack/lending-ledger/internal/domain"
	"github.com/credistack/lending-ledger/internal/events"
	"github.com/credistack/lending-ledger/internal/usecase/services"
)

var fixedNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

var adminActor = domain.Actor{ID: "admin-1", Roles: []domain.Role{domain.RoleAdmin}}

func defaultPage() commons.PageRequest {
	return commons.PageRequest{Page: 0, Size: 20}
}

type fixture struct {
	store        *memory.Store
	accounts     *services.AccountService
	transactions *services.TransactionService
	loans        *services.LoanService
	users        *services.UserService
}

func newFixture() *fixture {
	store := memory.NewStore()
	clk := clock.Fixed(fixedNow)

	return &fixture{
		store:        store,
		accounts:     services.NewAccountService(store.Accounts(), store.Users(), clk),
		transactions: services.NewTransactionService(store.Transactions(), store.Accounts(), events.Noop{}, clk),
		loans:        services.NewLoanService(store.Loans(), store.Users(), events.Noop{}, clk),
		users:        services.NewUserService(store.Users()),
	}
}

func (f *fixture) createClient(t *testing.T, email string) domain.User {
	t.Helper()

	user, err := f.store.Users().Create(context.Background(), domain.User{
		Email:    email,
		FullName: "Test Client",
		Roles:    []domain.Role{domain.RoleClient},
	})
	if err != nil {
		t.Fatalf("create client user: %v", err)
	}

	return user
}

func (f *fixture) createAccount(t *testing.T, ownerID string, accountType string, balance decimal.Decimal) models.AccountResponse {
	t.Helper()

	resp, err := f.accounts.Create(context.Background(), models.CreateAccountRequest{
		OwnerID:      ownerID,
		Type:         accountType,
		Balance:      balance,
		InterestRate: 5,
	}, adminActor)
	if err != nil {
		t.Fatalf("create %s account: %v", accountType, err)
	}

	return *resp.Data
}

func (f *fixture) createLoan(t *testing.T, ownerID string, amount decimal.Decimal, rate int, months int) models.LoanResponse {
	t.Helper()

	resp, err := f.loans.Create(context.Background(), models.CreateLoanRequest{
		OwnerID:      ownerID,
		Amount:       amount,
		InterestRate: rate,
		Months:       months,
	}, adminActor)
	if err != nil {
		t.Fatalf("create loan: %v", err)
	}

	return *resp.Data
}
