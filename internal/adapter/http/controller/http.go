package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/credistack/lending-ledger/internal/commons"
	"github.com/credistack/lending-ledger/internal/domain"
	"github.com/credistack/lending-ledger/internal/logger"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// statusFor maps the business error kinds onto HTTP statuses. Anything
// unclassified is treated as a validation failure when the service said
// so, otherwise as a server-side failure.
func statusFor(err error, message string) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotAcceptable):
		return http.StatusNotAcceptable
	case message == "validation failed":
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func pageFrom(r *http.Request) commons.PageRequest {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	return commons.PageRequest{Page: page, Size: size}.Normalize()
}

func logHandlerError(r *http.Request, err error) {
	logger.Error("http handler error", err, logger.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"query":  r.URL.RawQuery,
	})
}
