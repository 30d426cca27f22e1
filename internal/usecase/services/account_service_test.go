package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/credistack/lending-ledger/internal/adapter/http/models"
	"github.com/credistack/lending-ledger/internal/domain"
)

func TestCreateAccount(t *testing.T) {
	f := newFixture()
	owner := f.createClient(t, "alice@example.com")

	resp, err := f.accounts.Create(context.Background(), models.CreateAccountRequest{
		OwnerID:      owner.ID,
		Type:         "MAIN",
		Balance:      decimal.NewFromInt(500),
		InterestRate: 3,
	}, adminActor)
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	account := resp.Data
	if account.ID == "" {
		t.Fatal("expected account id to be assigned")
	}
	if account.Type != "MAIN" {
		t.Fatalf("expected type MAIN, got %s", account.Type)
	}
	if !account.Balance.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected balance 500, got %s", account.Balance)
	}
	if account.OwnerID != owner.ID {
		t.Fatalf("expected owner %s, got %s", owner.ID, account.OwnerID)
	}
}

func TestCreateAccountDuplicateTypeForOwner(t *testing.T) {
	f := newFixture()
	owner := f.createClient(t, "alice@example.com")
	f.createAccount(t, owner.ID, "MAIN", decimal.NewFromInt(100))

	_, err := f.accounts.Create(context.Background(), models.CreateAccountRequest{
		OwnerID:      owner.ID,
		Type:         "main",
		Balance:      decimal.NewFromInt(50),
		InterestRate: 3,
	}, adminActor)
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected already exists error, got %v", err)
	}

	// A different type for the same owner is still allowed.
	f.createAccount(t, owner.ID, "DEPOSIT", decimal.NewFromInt(50))
}

func TestCreateAccountUnknownOwner(t *testing.T) {
	f := newFixture()

	_, err := f.accounts.Create(context.Background(), models.CreateAccountRequest{
		OwnerID:      "missing-owner",
		Type:         "MAIN",
		Balance:      decimal.NewFromInt(100),
		InterestRate: 3,
	}, adminActor)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestCreateAccountOwnerMustBeClient(t *testing.T) {
	f := newFixture()

	owner, err := f.store.Users().Create(context.Background(), domain.User{
		Email:    "ops@example.com",
		FullName: "Ops User",
		Roles:    []domain.Role{domain.RoleAdmin},
	})
	if err != nil {
		t.Fatalf("create admin user: %v", err)
	}

	_, err = f.accounts.Create(context.Background(), models.CreateAccountRequest{
		OwnerID:      owner.ID,
		Type:         "MAIN",
		Balance:      decimal.NewFromInt(100),
		InterestRate: 3,
	}, adminActor)
	if !errors.Is(err, domain.ErrNotAcceptable) {
		t.Fatalf("expected not acceptable error, got %v", err)
	}
}

func TestCreateAccountRejectsBadInput(t *testing.T) {
	f := newFixture()
	owner := f.createClient(t, "alice@example.com")

	cases := []struct {
		name string
		req  models.CreateAccountRequest
	}{
		{
			name: "unknown type",
			req: models.CreateAccountRequest{
				OwnerID: owner.ID, Type: "SAVINGS",
				Balance: decimal.NewFromInt(100), InterestRate: 3,
			},
		},
		{
			name: "negative balance",
			req: models.CreateAccountRequest{
				OwnerID: owner.ID, Type: "MAIN",
				Balance: decimal.NewFromInt(-1), InterestRate: 3,
			},
		},
		{
			name: "interest rate above 100",
			req: models.CreateAccountRequest{
				OwnerID: owner.ID, Type: "MAIN",
				Balance: decimal.NewFromInt(100), InterestRate: 101,
			},
		},
		{
			name: "negative interest rate",
			req: models.CreateAccountRequest{
				OwnerID: owner.ID, Type: "MAIN",
				Balance: decimal.NewFromInt(100), InterestRate: -1,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.accounts.Create(context.Background(), tc.req, adminActor)
			if !errors.Is(err, domain.ErrNotAcceptable) {
				t.Fatalf("expected not acceptable error, got %v", err)
			}
		})
	}
}

func TestCreateAccountRequiresAdminActor(t *testing.T) {
	f := newFixture()
	owner := f.createClient(t, "alice@example.com")

	clientActor := domain.Actor{ID: owner.ID, Roles: []domain.Role{domain.RoleClient}}
	_, err := f.accounts.Create(context.Background(), models.CreateAccountRequest{
		OwnerID:      owner.ID,
		Type:         "MAIN",
		Balance:      decimal.NewFromInt(100),
		InterestRate: 3,
	}, clientActor)
	if !errors.Is(err, domain.ErrNotAcceptable) {
		t.Fatalf("expected not acceptable error, got %v", err)
	}
}

func TestGetOwnerAccount(t *testing.T) {
	f := newFixture()
	owner := f.createClient(t, "alice@example.com")
	f.createAccount(t, owner.ID, "MAIN", decimal.NewFromInt(100))
	deposit := f.createAccount(t, owner.ID, "DEPOSIT", decimal.NewFromInt(200))

	resp, err := f.accounts.GetOwnerAccount(context.Background(), owner.ID, "DEPOSIT")
	if err != nil {
		t.Fatalf("get owner account: %v", err)
	}
	if resp.Data.ID != deposit.ID {
		t.Fatalf("expected account %s, got %s", deposit.ID, resp.Data.ID)
	}

	_, err = f.accounts.GetOwnerAccount(context.Background(), owner.ID, "LOAN")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestDeleteAccount(t *testing.T) {
	f := newFixture()
	owner := f.createClient(t, "alice@example.com")
	account := f.createAccount(t, owner.ID, "MAIN", decimal.NewFromInt(100))

	if _, err := f.accounts.Delete(context.Background(), account.ID, adminActor); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	_, err := f.accounts.Get(context.Background(), account.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}

	listResp, err := f.accounts.List(context.Background(), "", defaultPage())
	if err != nil {
		t.Fatalf("list accounts: %v", err)
	}
	if len(listResp.Data.Items) != 0 {
		t.Fatalf("expected no accounts listed, got %d", len(listResp.Data.Items))
	}

	// Deleting an already deleted account reports not found.
	_, err = f.accounts.Delete(context.Background(), account.ID, adminActor)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestDeleteAccountFreesOwnerAndType(t *testing.T) {
	f := newFixture()
	owner := f.createClient(t, "alice@example.com")
	account := f.createAccount(t, owner.ID, "MAIN", decimal.NewFromInt(100))

	if _, err := f.accounts.Delete(context.Background(), account.ID, adminActor); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	// The owner/type slot is free again once the account is deleted.
	f.createAccount(t, owner.ID, "MAIN", decimal.NewFromInt(42))
}

func TestMultiDeleteAccountsStopsAtFirstFailure(t *testing.T) {
	f := newFixture()
	owner := f.createClient(t, "alice@example.com")
	first := f.createAccount(t, owner.ID, "MAIN", decimal.NewFromInt(100))
	second := f.createAccount(t, owner.ID, "DEPOSIT", decimal.NewFromInt(100))

	_, err := f.accounts.MultiDelete(context.Background(), []string{first.ID, "missing", second.ID}, adminActor)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}

	// The deletion before the failure sticks, the one after never ran.
	if _, err := f.accounts.Get(context.Background(), first.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected first account deleted, got %v", err)
	}
	if _, err := f.accounts.Get(context.Background(), second.ID); err != nil {
		t.Fatalf("expected second account untouched, got %v", err)
	}
}

func TestListAccountsFiltersByType(t *testing.T) {
	f := newFixture()
	alice := f.createClient(t, "alice@example.com")
	bob := f.createClient(t, "bob@example.com")
	f.createAccount(t, alice.ID, "MAIN", decimal.NewFromInt(100))
	f.createAccount(t, alice.ID, "DEPOSIT", decimal.NewFromInt(100))
	f.createAccount(t, bob.ID, "MAIN", decimal.NewFromInt(100))

	resp, err := f.accounts.List(context.Background(), "MAIN", defaultPage())
	if err != nil {
		t.Fatalf("list accounts: %v", err)
	}
	if len(resp.Data.Items) != 2 {
		t.Fatalf("expected 2 MAIN accounts, got %d", len(resp.Data.Items))
	}
	for _, item := range resp.Data.Items {
		if item.Type != "MAIN" {
			t.Fatalf("expected only MAIN accounts, got %s", item.Type)
		}
	}

	_, err = f.accounts.List(context.Background(), "SAVINGS", defaultPage())
	if !errors.Is(err, domain.ErrNotAcceptable) {
		t.Fatalf("expected not acceptable for unknown filter, got %v", err)
	}
}
