package domain

import "time"

// User represents a registered account. Tokens holds every session
// currently valid for the account and is owned exclusively by the user
// record; it is read and written whole alongside the rest of the row.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash []byte
	Tokens       TokenSet
	CreatedAt    time.Time
}
