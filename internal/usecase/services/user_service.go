package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/credistack/lending-ledger/internal/adapter/http/models"
	"github.com/credistack/lending-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/credistack/lending-ledger/internal/commons"
	"github.com/credistack/lending-ledger/internal/domain"
	"github.com/credistack/lending-ledger/internal/logger"
)

// UserService covers only what the ledger needs from users: creating
// owners with a role set and resolving them by id. Credential handling
// beyond hashing at rest lives outside the core.
type UserService struct {
	userRepo repo_interfaces.UserRepository
}

func NewUserService(userRepo repo_interfaces.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) Create(ctx context.Context, req models.CreateUserRequest, actor domain.Actor) (commons.Response[models.UserResponse], error) {
	logger.Info("user service create request", logger.Fields{
		"payload": logger.SanitizePayload(req),
		"actorId": actor.ID,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.UserResponse]("validation failed", err.Error()), err
	}

	roles := make([]domain.Role, 0, len(req.Roles))
	for _, raw := range req.Roles {
		switch role := domain.Role(strings.ToUpper(strings.TrimSpace(raw))); role {
		case domain.RoleAdmin, domain.RoleUser, domain.RoleClient:
			roles = append(roles, role)
		default:
			err := domain.NotAcceptable("unknown role %q", raw)
			return commons.ErrorResponse[models.UserResponse]("validation failed", err.Error()), err
		}
	}

	email := strings.TrimSpace(req.Email)
	taken, err := s.userRepo.HasActiveEmail(ctx, email)
	if err != nil {
		logger.Error("user service create email check failed", err, nil)
		return commons.ErrorResponse[models.UserResponse]("failed to create user", "unable to create user right now"), err
	}
	if taken {
		err := domain.AlreadyExists("email %s is already registered", email)
		return commons.ErrorResponse[models.UserResponse]("user already exists", err.Error()), err
	}

	hash, err := hashPassword(strings.TrimSpace(req.Password))
	if err != nil {
		logger.Error("user service create password hash failed", err, nil)
		return commons.ErrorResponse[models.UserResponse]("failed to create user", "unable to create user right now"), err
	}

	user := domain.User{
		Email:        email,
		FullName:     strings.TrimSpace(req.FullName),
		Roles:        roles,
		PasswordHash: hash,
		Provenance:   domain.Provenance{CreatedBy: actor.ID},
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		logger.Error("user service create repository failed", err, nil)
		return commons.ErrorResponse[models.UserResponse]("failed to create user", "unable to create user right now"), err
	}

	return commons.SuccessResponse("user created", models.UserResponseFrom(created)), nil
}

func (s *UserService) Get(ctx context.Context, id string) (commons.Response[models.UserResponse], error) {
	user, err := s.userRepo.GetActiveByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return commons.ErrorResponse[models.UserResponse]("failed to get user", err.Error()), err
	}

	return commons.SuccessResponse("this is user", models.UserResponseFrom(user)), nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hashed), nil
}
