package domain

import "time"

// Provenance records who created a record.
type Provenance struct {
	CreatedBy string
}

// DeletionState is the soft-delete marker shared by every aggregate.
// Deleted records stay in the store for audit and are only excluded
// from active listings.
type DeletionState struct {
	Deleted   bool
	DeletedAt *time.Time
	DeletedBy string
}

// MarkDeleted stamps the record as deleted. Calling it again only
// refreshes the timestamp and actor, it never corrupts state.
func (d *DeletionState) MarkDeleted(actorID string, at time.Time) {
	d.Deleted = true
	d.DeletedAt = &at
	d.DeletedBy = actorID
}

// Actor is the resolved identity performing an operation. Credentials
// are parsed upstream; the core only ever sees the id and role set.
type Actor struct {
	ID    string
	Roles []Role
}

func (a Actor) HasRole(role Role) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}
