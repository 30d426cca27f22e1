package domain

import "time"

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleUser   Role = "USER"
	RoleClient Role = "CLIENT"
)

type User struct {
	ID           string
	Email        string
	FullName     string
	Roles        []Role
	PasswordHash string
	Provenance
	DeletionState
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
