package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/credistack/lending-ledger/internal/adapter/http/middleware"
	"github.com/credistack/lending-ledger/internal/adapter/http/models"
	"github.com/credistack/lending-ledger/internal/commons"
	"github.com/credistack/lending-ledger/internal/domain"
)

type TransactionService interface {
	Create(ctx context.Context, req models.CreateTransactionRequest, actor domain.Actor) (commons.Response[models.TransactionResponse], error)
	Get(ctx context.Context, id string) (commons.Response[models.TransactionResponse], error)
	Delete(ctx context.Context, id string, actor domain.Actor) (commons.Response[string], error)
	MultiDelete(ctx context.Context, ids []string, actor domain.Actor) (commons.Response[string], error)
	List(ctx context.Context, accountFilter string, typeFilter string, page commons.PageRequest) (commons.Response[commons.Page[models.TransactionResponse]], error)
}

type TransactionController struct {
	service TransactionService
}

func NewTransactionController(service TransactionService) *TransactionController {
	return &TransactionController{service: service}
}

func (c *TransactionController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(middleware.WithActor(h))
		}
		return middleware.WithActor(h)
	}

	mux.Handle("POST /transactions", wrap(c.create))
	mux.Handle("GET /transactions", wrap(c.list))
	mux.Handle("GET /transactions/{id}", wrap(c.get))
	mux.Handle("DELETE /transactions/{id}", wrap(c.delete))
	mux.Handle("POST /transactions/multi-delete", wrap(c.multiDelete))
}

func (c *TransactionController) create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.Create(r.Context(), req, middleware.ActorFrom(r.Context()))
	if err != nil {
		logHandlerError(r, err)
		writeJSON(w, statusFor(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

func (c *TransactionController) get(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		logHandlerError(r, err)
		writeJSON(w, statusFor(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *TransactionController) delete(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.Delete(r.Context(), r.PathValue("id"), middleware.ActorFrom(r.Context()))
	if err != nil {
		logHandlerError(r, err)
		writeJSON(w, statusFor(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *TransactionController) multiDelete(w http.ResponseWriter, r *http.Request) {
	var req models.MultiDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[string]("invalid request body", err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[string]("validation failed", err.Error()))
		return
	}

	response, err := c.service.MultiDelete(r.Context(), req.IDs, middleware.ActorFrom(r.Context()))
	if err != nil {
		logHandlerError(r, err)
		writeJSON(w, statusFor(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *TransactionController) list(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	response, err := c.service.List(r.Context(), query.Get("accountId"), query.Get("type"), pageFrom(r))
	if err != nil {
		logHandlerError(r, err)
		writeJSON(w, statusFor(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
