package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWipeByteArray(t *testing.T) {
	b := []byte("secret")
	WipeByteArray(b)
	assert.Equal(t, make([]byte, 6), b)
	WipeByteArray(nil)
}

func TestNotification_JSON(t *testing.T) {
	n := Notification{
		Type:        EventChoreAssigned,
		Recipient:   "u2",
		HouseholdID: "h1",
		ChoreID:     "c1",
		ChoreTitle:  "Dishes",
		DueDate:     1735689600000,
		Title:       "New chore",
		Message:     "Dishes is yours",
		CreatedAt:   time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	data, err := n.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"household_id":"h1"`)
	assert.Contains(t, string(data), `"chore_id":"c1"`)
	assert.NotContains(t, string(data), `"note_id"`)

	got, err := ParseNotification(data)
	require.NoError(t, err)
	assert.Equal(t, n, got)

	_, err = ParseNotification([]byte("{"))
	require.Error(t, err)
}
