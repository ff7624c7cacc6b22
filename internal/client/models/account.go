// Package models defines client-side data models used by the session store.
package models

import "time"

// Account is a locally known credential record.
//
// Password is kept in plaintext, exactly as entered; the persisted session
// file therefore contains it too.
type Account struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
	Avatar    string    `json:"avatar,omitempty"`
}

// Clone returns a copy of a; nil stays nil.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

// Snapshot is the persisted subset of the session state.
type Snapshot struct {
	Accounts    []Account `json:"accounts"`
	CurrentUser *Account  `json:"currentUser"`
}

// CloneAccounts copies src so the result shares no memory with it.
// The result is never nil, so it always encodes as a JSON array.
func CloneAccounts(src []Account) []Account {
	out := make([]Account, len(src))
	copy(out, src)
	return out
}
