package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_CloneIsIndependent(t *testing.T) {
	a := &Account{ID: "1", Email: "u@x.com", Avatar: "file:///a.png"}
	c := a.Clone()
	c.Avatar = "file:///b.png"

	assert.Equal(t, "file:///a.png", a.Avatar)
	assert.Nil(t, (*Account)(nil).Clone())
}

func TestCloneAccounts_NeverNil(t *testing.T) {
	out := CloneAccounts(nil)
	require.NotNil(t, out)

	b, err := json.Marshal(Snapshot{Accounts: out})
	require.NoError(t, err)
	assert.JSONEq(t, `{"accounts":[],"currentUser":null}`, string(b))
}

func TestSnapshot_DecodesISOTimestamps(t *testing.T) {
	// createdAt as written by a JavaScript toISOString() call.
	raw := `{
		"accounts":[{"id":"1700000000000","email":"A@x.com","password":"pw","createdAt":"2025-01-02T03:04:05.678Z"}],
		"currentUser":{"id":"1700000000000","email":"A@x.com","password":"pw","createdAt":"2025-01-02T03:04:05Z","avatar":"file:///p.jpg"}
	}`

	var s Snapshot
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	require.Len(t, s.Accounts, 1)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 678_000_000, time.UTC), s.Accounts[0].CreatedAt.UTC())
	require.NotNil(t, s.CurrentUser)
	assert.Equal(t, "file:///p.jpg", s.CurrentUser.Avatar)
}

func TestAccount_AvatarOmittedWhenEmpty(t *testing.T) {
	b, err := json.Marshal(Account{ID: "1", Email: "e", Password: "p", CreatedAt: time.Unix(0, 0).UTC()})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "avatar")
	assert.Contains(t, string(b), `"createdAt":"1970-01-01T00:00:00Z"`)
}
