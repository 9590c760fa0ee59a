package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	tm := NewTokenManager("super-secret", "ong-backend").WithClock(func() time.Time { return start })

	tok, err := tm.Issue("user-123", "alice")
	require.NoError(t, err)

	claims, err := tm.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.True(t, claims.IssuedAtTime().Equal(start))
	assert.True(t, claims.ExpiresAtTime().Equal(start.Add(7*24*time.Hour)))
}

func TestVerify_ExpiresAfterSevenDays(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	now := start
	tm := NewTokenManager("secret", "ong-backend").WithClock(func() time.Time { return now })

	tok, err := tm.Issue("u1", "bob")
	require.NoError(t, err)

	now = start.Add(TokenTTL - time.Minute)
	_, err = tm.Verify(tok)
	require.NoError(t, err, "still inside the window")

	now = start.Add(TokenTTL + time.Second)
	_, err = tm.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenManager("right-secret", "ong-backend").Issue("u2", "carol")
	require.NoError(t, err)

	_, err = NewTokenManager("wrong-secret", "ong-backend").Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongIssuer(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenManager("k", "someone-else").Issue("u2", "carol")
	require.NoError(t, err)

	_, err = NewTokenManager("k", "ong-backend").Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("k", "ong-backend")
	for _, s := range []string{"", "not.a.jwt", "abc"} {
		_, err := tm.Verify(s)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", s)
	}
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("k", "ong-backend")
	claims := Claims{
		UserID:   "u1",
		Username: "mallory",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "ong-backend",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = tm.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tm.Verify(none)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
