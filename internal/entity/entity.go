// Package entity defines the base entity types for all Syllabus domain objects.
package entity

import "time"

// Entity is the base type embedded by all syllabus domain objects.
type Entity struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// New returns an Entity with both timestamps set to the current UTC time.
func New() Entity {
	now := time.Now().UTC()
	return Entity{CreatedAt: now, UpdatedAt: now}
}

// Touch refreshes UpdatedAt.
func (e *Entity) Touch() {
	e.UpdatedAt = time.Now().UTC()
}

// State is the two-valued lifecycle of a catalog record.
type State string

// Lifecycle states. The only legal transition is StateActive -> StateDeleted.
const (
	StateActive  State = "active"
	StateDeleted State = "deleted"
)

// Lifecycle tracks soft deletion. State is authoritative; DeletedAt is
// auxiliary metadata stamped when the record leaves StateActive.
type Lifecycle struct {
	State     State      `json:"state"`
	DeletedAt *time.Time `json:"deletedAt"`
}

// Active returns the lifecycle of a freshly created record.
func Active() Lifecycle {
	return Lifecycle{State: StateActive}
}

// IsDeleted reports whether the record has been soft-deleted.
func (l Lifecycle) IsDeleted() bool {
	return l.State == StateDeleted
}

// MarkDeleted moves the record to StateDeleted and stamps DeletedAt.
// It reports false, leaving the lifecycle untouched, if the record is
// already deleted.
func (l *Lifecycle) MarkDeleted(at time.Time) bool {
	if l.IsDeleted() {
		return false
	}
	at = at.UTC()
	l.State = StateDeleted
	l.DeletedAt = &at
	return true
}

// FromFlag rebuilds a Lifecycle from its persisted columns.
func FromFlag(isDeleted bool, deletedAt *time.Time) Lifecycle {
	if isDeleted {
		return Lifecycle{State: StateDeleted, DeletedAt: deletedAt}
	}
	return Lifecycle{State: StateActive}
}
