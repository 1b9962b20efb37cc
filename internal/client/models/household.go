package models

import (
	"slices"
	"time"
)

// Household is a group of users sharing chores and notes.
type Household struct {
	ID         string
	Name       string
	InviteCode string
	CreatedBy  string
	MemberIDs  []string
	CreatedAt  time.Time
}

// HasMember reports whether userID belongs to the household.
func (h *Household) HasMember(userID string) bool {
	return slices.Contains(h.MemberIDs, userID)
}

// AddMember appends userID unless already present and reports whether it was added.
func (h *Household) AddMember(userID string) bool {
	if h.HasMember(userID) {
		return false
	}
	h.MemberIDs = append(h.MemberIDs, userID)
	return true
}

// Document converts the household to its remote representation.
func (h *Household) Document() Document {
	return Document{
		"id":         h.ID,
		"name":       h.Name,
		"inviteCode": h.InviteCode,
		"createdBy":  h.CreatedBy,
		"memberIds":  stringList(h.MemberIDs),
		"createdAt":  ToMillis(h.CreatedAt),
	}
}

// HouseholdFromDocument builds a household from a remote document.
func HouseholdFromDocument(d Document) (*Household, error) {
	id, err := d.requireID()
	if err != nil {
		return nil, err
	}
	h := &Household{
		ID:         id,
		Name:       d.String("name"),
		InviteCode: d.String("inviteCode"),
		CreatedBy:  d.String("createdBy"),
		MemberIDs:  d.Strings("memberIds"),
	}
	if ms, ok := d.Int64("createdAt"); ok {
		h.CreatedAt = FromMillis(ms)
	}
	return h, nil
}
