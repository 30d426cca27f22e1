package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/credistack/lending-ledger/internal/domain"
)

// The gateway in front of this service authenticates callers and forwards
// the resolved identity in these headers. The core never sees credentials.
const (
	actorIDHeader    = "X-Actor-Id"
	actorRolesHeader = "X-Actor-Roles"
)

type actorContextKey struct{}

// WithActor lifts the resolved actor identity from the trusted headers
// into the request context.
func WithActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := domain.Actor{ID: strings.TrimSpace(r.Header.Get(actorIDHeader))}
		for _, raw := range strings.Split(r.Header.Get(actorRolesHeader), ",") {
			if role := strings.ToUpper(strings.TrimSpace(raw)); role != "" {
				actor.Roles = append(actor.Roles, domain.Role(role))
			}
		}

		ctx := context.WithValue(r.Context(), actorContextKey{}, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func ActorFrom(ctx context.Context) domain.Actor {
	actor, _ := ctx.Value(actorContextKey{}).(domain.Actor)
	return actor
}
