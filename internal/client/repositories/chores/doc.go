// Package chores persists cached chores in the local SQLite store.
//
// Every row carries a synced flag and a last-modified timestamp. Rows with
// synced = 0 form the outbound queue drained by the sync worker; MarkSynced
// only flips the flag when the row still holds the pushed version, so an edit
// made while a push was in flight stays queued.
package chores
