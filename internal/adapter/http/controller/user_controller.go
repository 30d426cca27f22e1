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

type UserService interface {
	Create(ctx context.Context, req models.CreateUserRequest, actor domain.Actor) (commons.Response[models.UserResponse], error)
	Get(ctx context.Context, id string) (commons.Response[models.UserResponse], error)
}

type UserController struct {
	service UserService
}

func NewUserController(service UserService) *UserController {
	return &UserController{service: service}
}

func (c *UserController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(middleware.WithActor(h))
		}
		return middleware.WithActor(h)
	}

	mux.Handle("POST /users", wrap(c.create))
	mux.Handle("GET /users/{id}", wrap(c.get))
}

func (c *UserController) create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.UserResponse]("invalid request body", err.Error()))
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

func (c *UserController) get(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		logHandlerError(r, err)
		writeJSON(w, statusFor(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
