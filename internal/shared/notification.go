package shared

import (
	"encoding/json"
	"time"
)

// Event names carried in Notification.Type.
const (
	EventChoreAssigned  = "chore_assigned"
	EventChoreCompleted = "chore_completed"
	EventNewMember      = "new_member"
	EventNewNote        = "new_note"
)

// Notification is the JSON payload pushed to a user over the websocket
// side channel. DueDate is epoch milliseconds.
type Notification struct {
	Type        string    `json:"type"`
	Recipient   string    `json:"recipient"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	HouseholdID string    `json:"household_id,omitempty"`
	ChoreID     string    `json:"chore_id,omitempty"`
	ChoreTitle  string    `json:"chore_title,omitempty"`
	DueDate     int64     `json:"due_date,omitempty"`
	NoteID      string    `json:"note_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (n Notification) Marshal() ([]byte, error) {
	return json.Marshal(n)
}

func ParseNotification(data []byte) (Notification, error) {
	var n Notification
	err := json.Unmarshal(data, &n)
	return n, err
}
