// Package models defines the server-side records: accounts and stored
// documents.
package models

import "time"

// Account is a registered user's credentials. The profile lives in the
// users/{ID} document.
type Account struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash []byte    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}
