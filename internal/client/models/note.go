package models

import "time"

// Note is a free-text household note.
type Note struct {
	ID           string
	HouseholdID  string
	Title        string
	Content      string
	CreatedBy    string
	CreatedAt    time.Time
	LastModified time.Time
	Synced       bool
}

// Document converts the note to its remote representation.
func (n *Note) Document() Document {
	return Document{
		"id":           n.ID,
		"householdId":  n.HouseholdID,
		"title":        n.Title,
		"content":      n.Content,
		"createdBy":    n.CreatedBy,
		"createdAt":    ToMillis(n.CreatedAt),
		"lastModified": ToMillis(n.LastModified),
	}
}

// NoteFromDocument builds a synced note from a remote document.
func NoteFromDocument(d Document) (*Note, error) {
	id, err := d.requireID()
	if err != nil {
		return nil, err
	}
	n := &Note{
		ID:          id,
		HouseholdID: d.String("householdId"),
		Title:       d.String("title"),
		Content:     d.String("content"),
		CreatedBy:   d.String("createdBy"),
		Synced:      true,
	}
	if ms, ok := d.Int64("createdAt"); ok {
		n.CreatedAt = FromMillis(ms)
	}
	if ms, ok := d.Int64("lastModified"); ok {
		n.LastModified = FromMillis(ms)
	}
	return n, nil
}
