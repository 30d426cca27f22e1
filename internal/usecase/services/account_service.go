package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/credistack/lending-ledger/internal/adapter/http/models"
	"github.com/credistack/lending-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/credistack/lending-ledger/internal/clock"
	"github.com/credistack/lending-ledger/internal/commons"
	"github.com/credistack/lending-ledger/internal/domain"
	"github.com/credistack/lending-ledger/internal/logger"
)

type AccountService struct {
	accountRepo repo_interfaces.AccountRepository
	userRepo    repo_interfaces.UserRepository
	clk         clock.Clock
}

func NewAccountService(
	accountRepo repo_interfaces.AccountRepository,
	userRepo repo_interfaces.UserRepository,
	clk clock.Clock,
) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		userRepo:    userRepo,
		clk:         clk,
	}
}

func (s *AccountService) Create(ctx context.Context, req models.CreateAccountRequest, actor domain.Actor) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service create request", logger.Fields{
		"payload": logger.SanitizePayload(req),
		"actorId": actor.ID,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}
	if err := requireLedgerWrite(actor); err != nil {
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	owner, err := s.userRepo.GetActiveByID(ctx, strings.TrimSpace(req.OwnerID))
	if err != nil {
		logger.Error("account service create owner lookup failed", err, logger.Fields{
			"ownerId": req.OwnerID,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to create account", err.Error()), err
	}
	if err := requireClientOwner(owner); err != nil {
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	accountType, err := domain.ParseAccountType(req.Type)
	if err != nil {
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}
	if !validInterestRate(req.InterestRate) {
		err := domain.NotAcceptable("interest rate must be between 0 and 100")
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}
	if req.Balance.LessThan(decimal.Zero) {
		err := domain.NotAcceptable("balance cannot be negative")
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	hasAccount, err := s.accountRepo.HasActiveForOwnerAndType(ctx, owner.ID, accountType)
	if err != nil {
		logger.Error("account service create duplicate check failed", err, logger.Fields{
			"ownerId": owner.ID,
			"type":    string(accountType),
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to create account", "unable to create account right now"), err
	}
	if hasAccount {
		err := domain.AlreadyExists("owner %s already holds a %s account", owner.ID, accountType)
		return commons.ErrorResponse[models.AccountResponse]("account already exists", err.Error()), err
	}

	account := domain.Account{
		Balance:      req.Balance,
		Type:         accountType,
		InterestRate: req.InterestRate,
		OwnerID:      owner.ID,
		Provenance:   domain.Provenance{CreatedBy: actor.ID},
	}

	created, err := s.accountRepo.Create(ctx, account)
	if err != nil {
		logger.Error("account service create repository failed", err, logger.Fields{
			"ownerId": owner.ID,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to create account", "unable to create account right now"), err
	}

	logger.Info("account service create success", logger.Fields{
		"accountId": created.ID,
		"ownerId":   created.OwnerID,
		"type":      string(created.Type),
	})

	return commons.SuccessResponse("account created", models.AccountResponseFrom(created)), nil
}

func (s *AccountService) Get(ctx context.Context, id string) (commons.Response[models.AccountResponse], error) {
	account, err := s.accountRepo.GetActiveByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return commons.ErrorResponse[models.AccountResponse]("failed to get account", err.Error()), err
	}

	return commons.SuccessResponse("this is account", models.AccountResponseFrom(account)), nil
}

func (s *AccountService) GetOwnerAccount(ctx context.Context, ownerID string, typeFilter string) (commons.Response[models.AccountResponse], error) {
	var filter *domain.AccountType
	if strings.TrimSpace(typeFilter) != "" {
		parsed, err := domain.ParseAccountType(typeFilter)
		if err != nil {
			return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
		}
		filter = &parsed
	}

	account, err := s.accountRepo.GetActiveByOwner(ctx, strings.TrimSpace(ownerID), filter)
	if err != nil {
		return commons.ErrorResponse[models.AccountResponse]("failed to get account", err.Error()), err
	}

	return commons.SuccessResponse("this is account", models.AccountResponseFrom(account)), nil
}

func (s *AccountService) Delete(ctx context.Context, id string, actor domain.Actor) (commons.Response[string], error) {
	if err := requireLedgerWrite(actor); err != nil {
		return commons.ErrorResponse[string]("validation failed", err.Error()), err
	}

	account, err := s.accountRepo.GetActiveByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return commons.ErrorResponse[string]("failed to delete account", err.Error()), err
	}

	if err := s.accountRepo.MarkDeleted(ctx, account.ID, actor.ID, s.clk.Now()); err != nil {
		logger.Error("account service delete repository failed", err, logger.Fields{
			"accountId": account.ID,
		})
		return commons.ErrorResponse[string]("failed to delete account", "unable to delete account right now"), err
	}

	logger.Info("account service delete success", logger.Fields{
		"accountId": account.ID,
		"actorId":   actor.ID,
	})

	return commons.SuccessResponse("account deleted", "DELETED"), nil
}

// MultiDelete deletes accounts in order and stops at the first failure;
// deletions already applied stay committed.
func (s *AccountService) MultiDelete(ctx context.Context, ids []string, actor domain.Actor) (commons.Response[string], error) {
	for _, id := range ids {
		if _, err := s.Delete(ctx, id, actor); err != nil {
			return commons.ErrorResponse[string]("failed to delete accounts", err.Error()), err
		}
	}

	return commons.SuccessResponse("accounts deleted", "DELETED"), nil
}

func (s *AccountService) List(ctx context.Context, typeFilter string, page commons.PageRequest) (commons.Response[commons.Page[models.AccountResponse]], error) {
	var filter *domain.AccountType
	if strings.TrimSpace(typeFilter) != "" {
		parsed, err := domain.ParseAccountType(typeFilter)
		if err != nil {
			return commons.ErrorResponse[commons.Page[models.AccountResponse]]("validation failed", err.Error()), err
		}
		filter = &parsed
	}

	page = page.Normalize()
	accounts, total, err := s.accountRepo.ListActive(ctx, filter, page)
	if err != nil {
		logger.Error("account service list repository failed", err, nil)
		return commons.ErrorResponse[commons.Page[models.AccountResponse]]("failed to list accounts", "unable to list accounts right now"), err
	}

	items := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		items = append(items, models.AccountResponseFrom(account))
	}

	return commons.PagedResponse("these are accounts", items, page, total), nil
}
