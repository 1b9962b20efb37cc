package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/housekeeper/internal/common"
)

// Frequency is the recurrence setting of a chore.
type Frequency string

const (
	FrequencyNone    Frequency = "none"
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// ParseFrequency accepts the five frequency names. An empty string means none.
func ParseFrequency(s string) (Frequency, error) {
	switch f := Frequency(s); f {
	case "":
		return FrequencyNone, nil
	case FrequencyNone, FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown frequency %q", common.ErrorValidation, s)
	}
}

// Recurring reports whether a completed chore spawns a follow-up instance.
func (f Frequency) Recurring() bool {
	return f != FrequencyNone && f != ""
}

// Chore is a household task, optionally recurring.
type Chore struct {
	ID          string
	HouseholdID string
	Title       string
	DueDate     time.Time
	AssignedTo  string
	IsCompleted bool
	CompletedAt *time.Time
	Frequency   Frequency
	CreatedBy   string
	CreatedAt   time.Time
	// LastModified is bumped on every local mutation.
	LastModified time.Time
	// Synced is true when the latest local state is known to be on the remote.
	Synced bool
}

// Document converts the chore to its remote representation.
func (c *Chore) Document() Document {
	d := Document{
		"id":           c.ID,
		"householdId":  c.HouseholdID,
		"title":        c.Title,
		"dueDate":      ToMillis(c.DueDate),
		"assignedTo":   c.AssignedTo,
		"isCompleted":  c.IsCompleted,
		"completedAt":  nil,
		"frequency":    string(c.Frequency),
		"createdBy":    c.CreatedBy,
		"createdAt":    ToMillis(c.CreatedAt),
		"lastModified": ToMillis(c.LastModified),
	}
	if c.CompletedAt != nil {
		d["completedAt"] = ToMillis(*c.CompletedAt)
	}
	return d
}

// ChoreFromDocument builds a chore from a remote document. The result is
// marked as synced since it mirrors the remote state.
func ChoreFromDocument(d Document) (*Chore, error) {
	id, err := d.requireID()
	if err != nil {
		return nil, err
	}
	freq, err := ParseFrequency(d.String("frequency"))
	if err != nil {
		freq = FrequencyNone
	}

	c := &Chore{
		ID:          id,
		HouseholdID: d.String("householdId"),
		Title:       d.String("title"),
		AssignedTo:  d.String("assignedTo"),
		IsCompleted: d.Bool("isCompleted"),
		Frequency:   freq,
		CreatedBy:   d.String("createdBy"),
		Synced:      true,
	}
	if ms, ok := d.Int64("dueDate"); ok {
		c.DueDate = FromMillis(ms)
	}
	if ms, ok := d.Int64("completedAt"); ok {
		t := FromMillis(ms)
		c.CompletedAt = &t
	}
	if ms, ok := d.Int64("createdAt"); ok {
		c.CreatedAt = FromMillis(ms)
	}
	if ms, ok := d.Int64("lastModified"); ok {
		c.LastModified = FromMillis(ms)
	}
	return c, nil
}
