package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/credistack/lending-ledger/internal/adapter/http/models"
	"github.com/credistack/lending-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/credistack/lending-ledger/internal/clock"
	"github.com/credistack/lending-ledger/internal/commons"
	"github.com/credistack/lending-ledger/internal/domain"
	"github.com/credistack/lending-ledger/internal/events"
	"github.com/credistack/lending-ledger/internal/logger"
)

const loanStatusChangedTopic = "ledger.loan.status_changed"

type LoanService struct {
	loanRepo  repo_interfaces.LoanRepository
	userRepo  repo_interfaces.UserRepository
	publisher events.Publisher
	clk       clock.Clock
}

func NewLoanService(
	loanRepo repo_interfaces.LoanRepository,
	userRepo repo_interfaces.UserRepository,
	publisher events.Publisher,
	clk clock.Clock,
) *LoanService {
	return &LoanService{
		loanRepo:  loanRepo,
		userRepo:  userRepo,
		publisher: publisher,
		clk:       clk,
	}
}

func (s *LoanService) Create(ctx context.Context, req models.CreateLoanRequest, actor domain.Actor) (commons.Response[models.LoanResponse], error) {
	logger.Info("loan service create request", logger.Fields{
		"payload": logger.SanitizePayload(req),
		"actorId": actor.ID,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.LoanResponse]("validation failed", err.Error()), err
	}
	if err := requireLedgerWrite(actor); err != nil {
		return commons.ErrorResponse[models.LoanResponse]("validation failed", err.Error()), err
	}

	owner, err := s.userRepo.GetActiveByID(ctx, strings.TrimSpace(req.OwnerID))
	if err != nil {
		logger.Error("loan service create owner lookup failed", err, logger.Fields{
			"ownerId": req.OwnerID,
		})
		return commons.ErrorResponse[models.LoanResponse]("failed to create loan", err.Error()), err
	}
	if err := requireClientOwner(owner); err != nil {
		return commons.ErrorResponse[models.LoanResponse]("validation failed", err.Error()), err
	}

	if req.Amount.LessThan(decimal.Zero) {
		err := domain.NotAcceptable("amount cannot be negative")
		return commons.ErrorResponse[models.LoanResponse]("validation failed", err.Error()), err
	}
	if !validInterestRate(req.InterestRate) {
		err := domain.NotAcceptable("interest rate must be between 0 and 100")
		return commons.ErrorResponse[models.LoanResponse]("validation failed", err.Error()), err
	}

	today := s.clk.Now()
	dueDate := today.AddDate(0, req.Months, 0)
	if !dueDate.After(today) {
		err := domain.NotAcceptable("due date must be in the future")
		return commons.ErrorResponse[models.LoanResponse]("validation failed", err.Error()), err
	}

	mustBePay, payPerMonth := domain.AmortizeSimpleInterest(req.Amount, req.InterestRate, req.Months)

	loan := domain.Loan{
		Amount:       req.Amount,
		InterestRate: req.InterestRate,
		Status:       domain.LoanStatusActive,
		DueDate:      dueDate,
		PayPerMonth:  payPerMonth,
		MustBePay:    mustBePay,
		PaidEver:     decimal.Zero,
		OwnerID:      owner.ID,
		Provenance:   domain.Provenance{CreatedBy: actor.ID},
	}

	created, err := s.loanRepo.Create(ctx, loan)
	if err != nil {
		logger.Error("loan service create repository failed", err, logger.Fields{
			"ownerId": owner.ID,
		})
		return commons.ErrorResponse[models.LoanResponse]("failed to create loan", "unable to create loan right now"), err
	}

	logger.Info("loan service create success", logger.Fields{
		"loanId":    created.ID,
		"ownerId":   created.OwnerID,
		"mustBePay": created.MustBePay,
	})

	return commons.SuccessResponse("loan created", models.LoanResponseFrom(created)), nil
}

// Get returns the loan whether or not it has been soft-deleted: deleted
// loans disappear from listings but stay retrievable for audit.
func (s *LoanService) Get(ctx context.Context, id string) (commons.Response[models.LoanResponse], error) {
	loan, err := s.loanRepo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return commons.ErrorResponse[models.LoanResponse]("failed to get loan", err.Error()), err
	}

	return commons.SuccessResponse("this is loan", models.LoanResponseFrom(loan)), nil
}

func (s *LoanService) Pay(ctx context.Context, id string, req models.PayLoanRequest) (commons.Response[models.LoanResponse], error) {
	if req.Amount.LessThan(decimal.Zero) {
		err := domain.NotAcceptable("payment amount cannot be negative")
		return commons.ErrorResponse[models.LoanResponse]("validation failed", err.Error()), err
	}

	// The overpayment check lives in the repository, under the store's
	// write serialization: checking here against a loaded copy would let
	// two concurrent payments both pass against the same stale total.
	// Paying the loan down to zero does not complete it; the status is
	// changed explicitly through ChangeStatus.
	updated, err := s.loanRepo.Pay(ctx, strings.TrimSpace(id), req.Amount)
	if err != nil {
		if errors.Is(err, domain.ErrNotAcceptable) {
			return commons.ErrorResponse[models.LoanResponse]("validation failed", err.Error()), err
		}
		return commons.ErrorResponse[models.LoanResponse]("failed to pay loan", err.Error()), err
	}

	logger.Info("loan service pay success", logger.Fields{
		"loanId":    updated.ID,
		"paid":      req.Amount,
		"remaining": updated.MustBePay,
	})

	return commons.SuccessResponse("loan paid", models.LoanResponseFrom(updated)), nil
}

func (s *LoanService) ChangeStatus(ctx context.Context, id string, req models.ChangeLoanStatusRequest, actor domain.Actor) (commons.Response[models.LoanResponse], error) {
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.LoanResponse]("validation failed", err.Error()), err
	}
	if err := requireLedgerWrite(actor); err != nil {
		return commons.ErrorResponse[models.LoanResponse]("validation failed", err.Error()), err
	}

	loan, err := s.loanRepo.GetActiveByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return commons.ErrorResponse[models.LoanResponse]("failed to change loan status", err.Error()), err
	}

	newStatus, err := domain.ParseLoanStatus(req.Status)
	if err != nil {
		return commons.ErrorResponse[models.LoanResponse]("validation failed", err.Error()), err
	}
	if !loan.Status.CanTransitionTo(newStatus) {
		err := domain.NotAcceptable("cannot change loan status from %s to %s", loan.Status, newStatus)
		return commons.ErrorResponse[models.LoanResponse]("validation failed", err.Error()), err
	}

	oldStatus := loan.Status

	updated, err := s.loanRepo.UpdateStatus(ctx, loan.ID, newStatus, actor.ID)
	if err != nil {
		logger.Error("loan service change status repository failed", err, logger.Fields{
			"loanId": loan.ID,
		})
		return commons.ErrorResponse[models.LoanResponse]("failed to change loan status", "unable to change loan status right now"), err
	}

	if err := s.publisher.Publish(ctx, loanStatusChangedTopic, events.LoanStatusChanged{
		LoanID:     updated.ID,
		OldStatus:  string(oldStatus),
		NewStatus:  string(updated.Status),
		ChangedBy:  actor.ID,
		OccurredAt: s.clk.Now(),
	}); err != nil {
		logger.Error("loan service change status event publish failed", err, logger.Fields{
			"loanId": updated.ID,
		})
	}

	return commons.SuccessResponse("status changed", models.LoanResponseFrom(updated)), nil
}

func (s *LoanService) Delete(ctx context.Context, id string, actor domain.Actor) (commons.Response[string], error) {
	if err := requireLedgerWrite(actor); err != nil {
		return commons.ErrorResponse[string]("validation failed", err.Error()), err
	}

	loan, err := s.loanRepo.GetActiveByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return commons.ErrorResponse[string]("failed to delete loan", err.Error()), err
	}

	if loan.Status == domain.LoanStatusActive || loan.Status == domain.LoanStatusFreeze {
		err := domain.NotAcceptable("cannot delete loan while status is %s", loan.Status)
		return commons.ErrorResponse[string]("validation failed", err.Error()), err
	}

	if err := s.loanRepo.MarkDeleted(ctx, loan.ID, actor.ID, s.clk.Now()); err != nil {
		logger.Error("loan service delete repository failed", err, logger.Fields{
			"loanId": loan.ID,
		})
		return commons.ErrorResponse[string]("failed to delete loan", "unable to delete loan right now"), err
	}

	logger.Info("loan service delete success", logger.Fields{
		"loanId":  loan.ID,
		"actorId": actor.ID,
	})

	return commons.SuccessResponse("loan deleted", "DELETED"), nil
}

// MultiDelete deletes loans in order and stops at the first failure.
// There is no compensation: loans deleted before the failure stay deleted.
func (s *LoanService) MultiDelete(ctx context.Context, ids []string, actor domain.Actor) (commons.Response[string], error) {
	for _, id := range ids {
		if _, err := s.Delete(ctx, id, actor); err != nil {
			return commons.ErrorResponse[string]("failed to delete loans", err.Error()), err
		}
	}

	return commons.SuccessResponse("loans deleted", "DELETED"), nil
}

func (s *LoanService) List(ctx context.Context, statusFilter string, page commons.PageRequest) (commons.Response[commons.Page[models.LoanResponse]], error) {
	var filter *domain.LoanStatus
	if strings.TrimSpace(statusFilter) != "" {
		parsed, err := domain.ParseLoanStatus(statusFilter)
		if err != nil {
			return commons.ErrorResponse[commons.Page[models.LoanResponse]]("validation failed", err.Error()), err
		}
		filter = &parsed
	}

	page = page.Normalize()
	loans, total, err := s.loanRepo.ListActive(ctx, filter, page)
	if err != nil {
		logger.Error("loan service list repository failed", err, nil)
		return commons.ErrorResponse[commons.Page[models.LoanResponse]]("failed to list loans", "unable to list loans right now"), err
	}

	return commons.PagedResponse("these are loans", loanResponses(loans), page, total), nil
}

func (s *LoanService) ListByOwner(ctx context.Context, ownerID string, page commons.PageRequest) (commons.Response[commons.Page[models.LoanResponse]], error) {
	page = page.Normalize()
	loans, total, err := s.loanRepo.ListActiveByOwner(ctx, strings.TrimSpace(ownerID), page)
	if err != nil {
		logger.Error("loan service list by owner repository failed", err, logger.Fields{
			"ownerId": ownerID,
		})
		return commons.ErrorResponse[commons.Page[models.LoanResponse]]("failed to list loans", "unable to list loans right now"), err
	}

	return commons.PagedResponse("these are loans", loanResponses(loans), page, total), nil
}

func loanResponses(loans []domain.Loan) []models.LoanResponse {
	items := make([]models.LoanResponse, 0, len(loans))
	for _, loan := range loans {
		items = append(items, models.LoanResponseFrom(loan))
	}
	return items
}
