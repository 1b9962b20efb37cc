// Package metadata is a small key/value store for session state kept next to
// the cached data (signed-in user, access token, last sync time).
package metadata

import (
	"context"
	"time"
)

// Well-known keys.
const (
	KeyUserID      = "session.user_id"
	KeyEmail       = "session.email"
	KeyAccessToken = "session.access_token"
	KeyLastSync    = "sync.last_success"
	KeyDeviceID    = "device.id"
)

// SessionKeys are cleared on logout. The device id survives.
var SessionKeys = []string{KeyUserID, KeyEmail, KeyAccessToken}

type Repository interface {
	// GetString returns "" for a missing key.
	GetString(ctx context.Context, key string) (string, error)
	SetString(ctx context.Context, key, value string) error
	// SetStrings upserts all pairs in one statement.
	SetStrings(ctx context.Context, values map[string]string) error
	// GetTime returns the zero time for a missing or unparsable key.
	GetTime(ctx context.Context, key string) (time.Time, error)
	SetTime(ctx context.Context, key string, t time.Time) error
	Delete(ctx context.Context, keys ...string) error
}
