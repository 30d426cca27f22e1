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

type LoanService interface {
	Create(ctx context.Context, req models.CreateLoanRequest, actor domain.Actor) (commons.Response[models.LoanResponse], error)
	Get(ctx context.Context, id string) (commons.Response[models.LoanResponse], error)
	Pay(ctx context.Context, id string, req models.PayLoanRequest) (commons.Response[models.LoanResponse], error)
	ChangeStatus(ctx context.Context, id string, req models.ChangeLoanStatusRequest, actor domain.Actor) (commons.Response[models.LoanResponse], error)
	Delete(ctx context.Context, id string, actor domain.Actor) (commons.Response[string], error)
	MultiDelete(ctx context.Context, ids []string, actor domain.Actor) (commons.Response[string], error)
	List(ctx context.Context, statusFilter string, page commons.PageRequest) (commons.Response[commons.Page[models.LoanResponse]], error)
	ListByOwner(ctx context.Context, ownerID string, page commons.PageRequest) (commons.Response[commons.Page[models.LoanResponse]], error)
}

type LoanController struct {
	service LoanService
}

func NewLoanController(service LoanService) *LoanController {
	return &LoanController{service: service}
}

func (c *LoanController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(middleware.WithActor(h))
		}
		return middleware.WithActor(h)
	}

	mux.Handle("POST /loans", wrap(c.create))
	mux.Handle("GET /loans", wrap(c.list))
	mux.Handle("GET /loans/{id}", wrap(c.get))
	mux.Handle("POST /loans/{id}/pay", wrap(c.pay))
	mux.Handle("PUT /loans/{id}/status", wrap(c.changeStatus))
	mux.Handle("DELETE /loans/{id}", wrap(c.delete))
	mux.Handle("POST /loans/multi-delete", wrap(c.multiDelete))
	mux.Handle("GET /owners/{ownerId}/loans", wrap(c.listByOwner))
}

func (c *LoanController) create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.LoanResponse]("invalid request body", err.Error()))
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

func (c *LoanController) get(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		logHandlerError(r, err)
		writeJSON(w, statusFor(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *LoanController) pay(w http.ResponseWriter, r *http.Request) {
	var req models.PayLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.LoanResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.Pay(r.Context(), r.PathValue("id"), req)
	if err != nil {
		logHandlerError(r, err)
		writeJSON(w, statusFor(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *LoanController) changeStatus(w http.ResponseWriter, r *http.Request) {
	var req models.ChangeLoanStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.LoanResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.ChangeStatus(r.Context(), r.PathValue("id"), req, middleware.ActorFrom(r.Context()))
	if err != nil {
		logHandlerError(r, err)
		writeJSON(w, statusFor(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *LoanController) delete(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.Delete(r.Context(), r.PathValue("id"), middleware.ActorFrom(r.Context()))
	if err != nil {
		logHandlerError(r, err)
		writeJSON(w, statusFor(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *LoanController) multiDelete(w http.ResponseWriter, r *http.Request) {
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

func (c *LoanController) list(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.List(r.Context(), r.URL.Query().Get("status"), pageFrom(r))
	if err != nil {
		logHandlerError(r, err)
		writeJSON(w, statusFor(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *LoanController) listByOwner(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.ListByOwner(r.Context(), r.PathValue("ownerId"), pageFrom(r))
	if err != nil {
		logHandlerError(r, err)
		writeJSON(w, statusFor(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
