package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/credistack/lending-ledger/internal/adapter/http/models"
	"github.com/credistack/lending-ledger/internal/domain"
)

func TestCreateUser(t *testing.T) {
	f := newFixture()

	resp, err := f.users.Create(context.Background(), models.CreateUserRequest{
		Email:    "carol@example.com",
		FullName: "Carol Dee",
		Password: "topsecret",
		Roles:    []string{"client"},
	}, adminActor)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	user := resp.Data
	if user.ID == "" {
		t.Fatal("expected user id to be assigned")
	}
	if len(user.Roles) != 1 || user.Roles[0] != "CLIENT" {
		t.Fatalf("expected roles [CLIENT], got %v", user.Roles)
	}

	getResp, err := f.users.Get(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if getResp.Data.Email != "carol@example.com" {
		t.Fatalf("expected email carol@example.com, got %s", getResp.Data.Email)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	f := newFixture()
	f.createClient(t, "carol@example.com")

	_, err := f.users.Create(context.Background(), models.CreateUserRequest{
		Email:    "carol@example.com",
		FullName: "Carol Dee",
		Password: "topsecret",
		Roles:    []string{"CLIENT"},
	}, adminActor)
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected already exists error, got %v", err)
	}
}

func TestCreateUserUnknownRole(t *testing.T) {
	f := newFixture()

	_, err := f.users.Create(context.Background(), models.CreateUserRequest{
		Email:    "carol@example.com",
		FullName: "Carol Dee",
		Password: "topsecret",
		Roles:    []string{"SUPERVISOR"},
	}, adminActor)
	if !errors.Is(err, domain.ErrNotAcceptable) {
		t.Fatalf("expected not acceptable error, got %v", err)
	}
}

func TestGetUserUnknownID(t *testing.T) {
	f := newFixture()

	_, err := f.users.Get(context.Background(), "missing-user")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}
