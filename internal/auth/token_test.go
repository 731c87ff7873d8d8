package auth

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	tok, err := tm.Generate("64b7f0c2a1b2c3d4e5f60718", "ann@example.com")
	require.NoError(t, err)

	claims, err := tm.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", claims.UserID)
	assert.Equal(t, "ann@example.com", claims.Email)
	assert.Equal(t, claims.IssuedAt+int64(time.Hour/time.Second), claims.ExpiresAt)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tok, err := NewTokenManager("one", time.Hour).Generate("u1", "a@b.c")
	require.NoError(t, err)

	_, err = NewTokenManager("two", time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute)
	tm.now = func() time.Time { return time.Now().Add(-time.Hour) }

	tok, err := tm.Generate("u1", "a@b.c")
	require.NoError(t, err)

	_, err = tm.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsUnsignedToken(t *testing.T) {
	claims := Claims{UserID: "u1", StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix()}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenManager("secret", time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordRoundTrip(t *testing.T) {
	hashed, err := HashPassword("hunter2")
	require.NoError(t, err)

	assert.NotEqual(t, "hunter2", hashed)
	assert.True(t, CheckPassword(hashed, "hunter2"))
	assert.False(t, CheckPassword(hashed, "hunter3"))
}
