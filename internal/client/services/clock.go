package services

import (
	"time"

	"github.com/dmitrijs2005/housekeeper/internal/client/models"
)

// nextModified returns a last-modified stamp strictly after prev so every
// local edit is distinguishable by the mark-synced latch.
func nextModified(now func() time.Time, prev time.Time) time.Time {
	t := now()
	if !t.After(prev) {
		t = prev.Add(time.Millisecond)
	}
	return t
}

var defaultClock = models.Now
