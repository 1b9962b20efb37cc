// Package models defines the client-side domain entities (households, users,
// chores, notes), the sync-control records kept in the local store, and their
// conversion to and from remote documents.
package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/housekeeper/internal/common"
)

// Document is a remote document as exchanged with the document store.
// Numbers may arrive as float64, int64 or json.Number depending on transport.
type Document map[string]any

// String returns the string stored under key or "".
func (d Document) String(key string) string {
	s, _ := d[key].(string)
	return s
}

// Bool returns the boolean stored under key or false.
func (d Document) Bool(key string) bool {
	b, _ := d[key].(bool)
	return b
}

// Int64 returns the integer stored under key. The second result is false when
// the key is missing or null.
func (d Document) Int64(key string) (int64, bool) {
	switch v := d[key].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	default:
		return 0, false
	}
}

// Strings returns the string list stored under key. Non-string elements are skipped.
func (d Document) Strings(key string) []string {
	switch v := d[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func (d Document) requireID() (string, error) {
	id := d.String("id")
	if id == "" {
		return "", fmt.Errorf("%w: document without id", common.ErrorValidation)
	}
	return id, nil
}

// stringList converts a string slice to the []any form accepted by structpb.
func stringList(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

// ToMillis converts t to epoch milliseconds. The zero time maps to 0.
func ToMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// FromMillis converts epoch milliseconds to UTC time. 0 maps to the zero time.
func FromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

// Now returns the current UTC time truncated to millisecond precision, which
// is what survives a round trip through the local store and the remote.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
