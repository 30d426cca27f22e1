package models

import (
	"errors"
	"strings"
	"time"

	"github.com/credistack/lending-ledger/internal/domain"
)

type CreateUserRequest struct {
	Email    string   `json:"email"`
	FullName string   `json:"fullName"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

func (r CreateUserRequest) Validate() error {
	var errs []string

	email := strings.TrimSpace(r.Email)
	if email == "" {
		errs = append(errs, "email is required")
	} else if !strings.Contains(email, "@") {
		errs = append(errs, "email must be a valid address")
	}
	if strings.TrimSpace(r.FullName) == "" {
		errs = append(errs, "fullName is required")
	}
	if len(strings.TrimSpace(r.Password)) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}
	if len(r.Roles) == 0 {
		errs = append(errs, "roles is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type UserResponse struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	FullName  string   `json:"fullName"`
	Roles     []string `json:"roles"`
	CreatedAt string   `json:"createdAt"`
}

func UserResponseFrom(user domain.User) UserResponse {
	roles := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, string(role))
	}

	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Roles:     roles,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}
