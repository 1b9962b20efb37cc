package models

import "time"

// ItemKind distinguishes household-scoped item types in sync bookkeeping.
type ItemKind string

const (
	ItemKindChore ItemKind = "chore"
	ItemKindNote  ItemKind = "note"
)

// PendingDeletion records a local delete that has not reached the remote yet.
type PendingDeletion struct {
	ID          int64
	ItemID      string
	Kind        ItemKind
	HouseholdID string
	CreatedAt   time.Time
}

// Path returns the remote document path the deletion targets.
func (p PendingDeletion) Path() (string, error) {
	return ItemPath(p.Kind, p.HouseholdID, p.ItemID)
}

// Rejection records an item the remote refused permanently. It is kept until
// the item is edited locally again so the worker does not resend it forever.
type Rejection struct {
	ItemID       string
	Kind         ItemKind
	HouseholdID  string
	Reason       string
	LastModified time.Time
	CreatedAt    time.Time
}
