package models

import "time"

// User is the signed-in user as described by the session token.
type User struct {
	ID        string
	Email     string
	Name      string
	ExpiresAt time.Time
}
