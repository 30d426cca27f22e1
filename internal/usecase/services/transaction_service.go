package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/credistack/lending-ledger/internal/adapter/http/models"
	"github.com/credistack/lending-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/credistack/lending-ledger/internal/clock"
	"github.com/credistack/lending-ledger/internal/commons"
	"github.com/credistack/lending-ledger/internal/domain"
	"github.com/credistack/lending-ledger/internal/events"
	"github.com/credistack/lending-ledger/internal/logger"
)

const transactionRecordedTopic = "ledger.transaction.recorded"

type TransactionService struct {
	transactionRepo repo_interfaces.TransactionRepository
	accountRepo     repo_interfaces.AccountRepository
	publisher       events.Publisher
	clk             clock.Clock
}

func NewTransactionService(
	transactionRepo repo_interfaces.TransactionRepository,
	accountRepo repo_interfaces.AccountRepository,
	publisher events.Publisher,
	clk clock.Clock,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		publisher:       publisher,
		clk:             clk,
	}
}

func (s *TransactionService) Create(ctx context.Context, req models.CreateTransactionRequest, actor domain.Actor) (commons.Response[models.TransactionResponse], error) {
	logger.Info("transaction service create request", logger.Fields{
		"payload": logger.SanitizePayload(req),
		"actorId": actor.ID,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}
	if err := requireLedgerWrite(actor); err != nil {
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}

	account, err := s.accountRepo.GetActiveByID(ctx, strings.TrimSpace(req.AccountID))
	if err != nil {
		return commons.ErrorResponse[models.TransactionResponse]("failed to create transaction", err.Error()), err
	}

	txnType, err := domain.ParseTransactionType(req.Type)
	if err != nil {
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}
	if err := txnType.CompatibleWith(account.Type); err != nil {
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}
	if req.Amount.LessThan(decimal.Zero) {
		err := domain.NotAcceptable("amount cannot be negative")
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}

	// The amount is debited uniformly, whatever the declared type says.
	// A DEPOSIT transaction therefore also lowers the balance; the type
	// only classifies the event against the compatibility matrix.
	if account.Balance.Sub(req.Amount).LessThan(decimal.Zero) {
		err := domain.NotAcceptable("insufficient funds in account %s", account.ID)
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}

	txn := domain.Transaction{
		Amount:     req.Amount,
		Type:       txnType,
		AccountID:  account.ID,
		Provenance: domain.Provenance{CreatedBy: actor.ID},
	}

	recorded, newBalance, err := s.transactionRepo.Record(ctx, txn)
	if err != nil {
		logger.Error("transaction service create record failed", err, logger.Fields{
			"accountId": account.ID,
		})
		return commons.ErrorResponse[models.TransactionResponse]("failed to create transaction", err.Error()), err
	}

	if err := s.publisher.Publish(ctx, transactionRecordedTopic, events.TransactionRecorded{
		TransactionID: recorded.ID,
		AccountID:     recorded.AccountID,
		Type:          string(recorded.Type),
		Amount:        recorded.Amount,
		NewBalance:    newBalance,
		RecordedBy:    actor.ID,
		OccurredAt:    s.clk.Now(),
	}); err != nil {
		logger.Error("transaction service create event publish failed", err, logger.Fields{
			"transactionId": recorded.ID,
		})
	}

	logger.Info("transaction service create success", logger.Fields{
		"transactionId": recorded.ID,
		"accountId":     recorded.AccountID,
		"type":          string(recorded.Type),
	})

	return commons.SuccessResponse("transaction created", models.TransactionResponseFrom(recorded)), nil
}

func (s *TransactionService) Get(ctx context.Context, id string) (commons.Response[models.TransactionResponse], error) {
	txn, err := s.transactionRepo.GetActiveByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return commons.ErrorResponse[models.TransactionResponse]("failed to get transaction", err.Error()), err
	}

	return commons.SuccessResponse("this is transaction", models.TransactionResponseFrom(txn)), nil
}

func (s *TransactionService) Delete(ctx context.Context, id string, actor domain.Actor) (commons.Response[string], error) {
	if err := requireLedgerWrite(actor); err != nil {
		return commons.ErrorResponse[string]("validation failed", err.Error()), err
	}

	txn, err := s.transactionRepo.GetActiveByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return commons.ErrorResponse[string]("failed to delete transaction", err.Error()), err
	}

	txn.MarkDeleted(actor.ID, s.clk.Now())
	if _, err := s.transactionRepo.Update(ctx, txn); err != nil {
		logger.Error("transaction service delete repository failed", err, logger.Fields{
			"transactionId": txn.ID,
		})
		return commons.ErrorResponse[string]("failed to delete transaction", "unable to delete transaction right now"), err
	}

	return commons.SuccessResponse("transaction deleted", "DELETED"), nil
}

// MultiDelete deletes transactions in order and stops at the first failure;
// deletions already applied stay committed.
func (s *TransactionService) MultiDelete(ctx context.Context, ids []string, actor domain.Actor) (commons.Response[string], error) {
	for _, id := range ids {
		if _, err := s.Delete(ctx, id, actor); err != nil {
			return commons.ErrorResponse[string]("failed to delete transactions", err.Error()), err
		}
	}

	return commons.SuccessResponse("transactions deleted", "DELETED"), nil
}

func (s *TransactionService) List(ctx context.Context, accountFilter string, typeFilter string, page commons.PageRequest) (commons.Response[commons.Page[models.TransactionResponse]], error) {
	var accFilter *string
	if trimmed := strings.TrimSpace(accountFilter); trimmed != "" {
		// Reject malformed ids here so the postgres uuid cast never sees
		// them.
		if _, err := uuid.Parse(trimmed); err != nil {
			err := domain.NotAcceptable("accountId filter must be a valid id")
			return commons.ErrorResponse[commons.Page[models.TransactionResponse]]("validation failed", err.Error()), err
		}
		accFilter = &trimmed
	}

	var tFilter *domain.TransactionType
	if strings.TrimSpace(typeFilter) != "" {
		parsed, err := domain.ParseTransactionType(typeFilter)
		if err != nil {
			return commons.ErrorResponse[commons.Page[models.TransactionResponse]]("validation failed", err.Error()), err
		}
		tFilter = &parsed
	}

	page = page.Normalize()
	txns, total, err := s.transactionRepo.ListActive(ctx, accFilter, tFilter, page)
	if err != nil {
		logger.Error("transaction service list repository failed", err, nil)
		return commons.ErrorResponse[commons.Page[models.TransactionResponse]]("failed to list transactions", "unable to list transactions right now"), err
	}

	items := make([]models.TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		items = append(items, models.TransactionResponseFrom(txn))
	}

	return commons.PagedResponse("these are transactions", items, page, total), nil
}
