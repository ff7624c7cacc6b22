// Package models defines server-side data models.
package models

import "time"

// Account is an entry in the server's account directory. Exactly one
// account at a time may be Canonical: it is the one the login endpoint
// serves.
type Account struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar,omitempty"`
	Canonical bool      `json:"canonical"`
	CreatedAt time.Time `json:"created_at"`
}
