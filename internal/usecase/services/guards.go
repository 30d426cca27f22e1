package services

import "github.com/credistack/lending-ledger/internal/domain"

// requireLedgerWrite gates every mutating operation on the actor's role
// set. The actor arrives resolved from the boundary; there is no ambient
// security context to consult.
func requireLedgerWrite(actor domain.Actor) error {
	if actor.ID == "" {
		return domain.NotAcceptable("actor identity is required")
	}
	if !actor.HasRole(domain.RoleAdmin) {
		return domain.NotAcceptable("actor %s lacks permission to mutate ledger records", actor.ID)
	}
	return nil
}

// requireClientOwner checks the owner's CLIENT capability: accounts and
// loans are opened only on behalf of client users.
func requireClientOwner(owner domain.User) error {
	if !owner.HasRole(domain.RoleClient) {
		return domain.NotAcceptable("user %s is not a client", owner.ID)
	}
	return nil
}

func validInterestRate(rate int) bool {
	return rate >= 0 && rate <= 100
}
