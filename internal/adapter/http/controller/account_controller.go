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

type AccountService interface {
	Create(ctx context.Context, req models.CreateAccountRequest, actor domain.Actor) (commons.Response[models.AccountResponse], error)
	Get(ctx context.Context, id string) (commons.Response[models.AccountResponse], error)
	GetOwnerAccount(ctx context.Context, ownerID string, typeFilter string) (commons.Response[models.AccountResponse], error)
	Delete(ctx context.Context, id string, actor domain.Actor) (commons.Response[string], error)
	MultiDelete(ctx context.Context, ids []string, actor domain.Actor) (commons.Response[string], error)
	List(ctx context.Context, typeFilter string, page commons.PageRequest) (commons.Response[commons.Page[models.AccountResponse]], error)
}

type AccountController struct {
	service AccountService
}

func NewAccountController(service AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(middleware.WithActor(h))
		}
		return middleware.WithActor(h)
	}

	mux.Handle("POST /accounts", wrap(c.create))
	mux.Handle("GET /accounts", wrap(c.list))
	mux.Handle("GET /accounts/{id}", wrap(c.get))
	mux.Handle("DELETE /accounts/{id}", wrap(c.delete))
	mux.Handle("POST /accounts/multi-delete", wrap(c.multiDelete))
	mux.Handle("GET /owners/{ownerId}/account", wrap(c.getOwnerAccount))
}

func (c *AccountController) create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()))
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

func (c *AccountController) get(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		logHandlerError(r, err)
		writeJSON(w, statusFor(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) getOwnerAccount(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.GetOwnerAccount(r.Context(), r.PathValue("ownerId"), r.URL.Query().Get("type"))
	if err != nil {
		logHandlerError(r, err)
		writeJSON(w, statusFor(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) delete(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.Delete(r.Context(), r.PathValue("id"), middleware.ActorFrom(r.Context()))
	if err != nil {
		logHandlerError(r, err)
		writeJSON(w, statusFor(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) multiDelete(w http.ResponseWriter, r *http.Request) {
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

func (c *AccountController) list(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.List(r.Context(), r.URL.Query().Get("type"), pageFrom(r))
	if err != nil {
		logHandlerError(r, err)
		writeJSON(w, statusFor(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
