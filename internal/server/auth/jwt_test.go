package auth

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/bmic/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse_Success(t *testing.T) {
	secret := []byte("super-secret")
	accountID := "8f14e45f-ceea-4e67-a2b5-3c1f2d9a0b11"

	tok, err := GenerateToken(accountID, secret, time.Hour)
	require.NoError(t, err)

	got, err := GetAccountIDFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, accountID, got)
}

func TestGenerateToken_SubjectIsAccountID(t *testing.T) {
	tok, err := GenerateToken("acc-1", []byte("k"), time.Hour)
	require.NoError(t, err)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, claims)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.Subject)
	assert.Equal(t, "acc-1", claims.AccountID)
}

func TestGetAccountIDFromToken_Expired(t *testing.T) {
	tok, err := GenerateToken("u1", []byte("secret"), -1*time.Second)
	require.NoError(t, err)

	_, err = GetAccountIDFromToken(tok, []byte("secret"))
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestGetAccountIDFromToken_ExpiresLater(t *testing.T) {
	orig := timeNow
	t.Cleanup(func() { timeNow = orig })

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return start }

	tok, err := GenerateToken("u1", []byte("secret"), time.Minute)
	require.NoError(t, err)

	timeNow = func() time.Time { return start.Add(30 * time.Second) }
	_, err = GetAccountIDFromToken(tok, []byte("secret"))
	require.NoError(t, err)

	timeNow = func() time.Time { return start.Add(2 * time.Minute) }
	_, err = GetAccountIDFromToken(tok, []byte("secret"))
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestGetAccountIDFromToken_WrongSecret(t *testing.T) {
	tok, err := GenerateToken("u2", []byte("right-secret"), time.Hour)
	require.NoError(t, err)

	_, err = GetAccountIDFromToken(tok, []byte("wrong-secret"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestGetAccountIDFromToken_WrongAlgorithm(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{AccountID: "u3"}).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = GetAccountIDFromToken(tok, []byte("k"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestGetAccountIDFromToken_MalformedString(t *testing.T) {
	_, err := GetAccountIDFromToken("not.a.jwt", []byte("k"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
