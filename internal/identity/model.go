package identity

import "time"

// User represents a registered identity that may submit and list transactions.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// Credentials carries a login or registration attempt.
type Credentials struct {
	Email    string
	Password string
}
