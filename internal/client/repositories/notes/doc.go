// Package notes persists cached household notes in the local SQLite store.
package notes
