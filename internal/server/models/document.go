package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/housekeeper/internal/common"
)

// Document is the JSON object stored at a path.
type Document map[string]any

// StoredDocument is a document with its storage metadata.
type StoredDocument struct {
	Path       string
	Collection string
	Data       Document
	UpdatedAt  time.Time
}

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

// Strings returns the string list stored under key.
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

// Clone returns a shallow copy of d. Nil stays nil.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// SplitPath validates a document path and returns its collection and id.
// Paths alternate collection and id segments, so they have an even number of
// non-empty segments.
func SplitPath(path string) (collection, id string, err error) {
	segs := strings.Split(path, "/")
	if len(segs) < 2 || len(segs)%2 != 0 {
		return "", "", fmt.Errorf("%w: bad document path %q", common.ErrorValidation, path)
	}
	for _, s := range segs {
		if s == "" {
			return "", "", fmt.Errorf("%w: bad document path %q", common.ErrorValidation, path)
		}
	}
	i := strings.LastIndex(path, "/")
	return path[:i], path[i+1:], nil
}

// ValidCollection reports whether collection names a collection rather than a
// document.
func ValidCollection(collection string) bool {
	segs := strings.Split(collection, "/")
	if len(segs)%2 != 1 {
		return false
	}
	for _, s := range segs {
		if s == "" {
			return false
		}
	}
	return true
}
