package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signedJWT(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return signed
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()

	t.Run("past exp", func(t *testing.T) {
		exp := now.Add(-time.Hour)
		token := signedJWT(t, jwt.MapClaims{"sub": "u1", "exp": exp.Unix()})

		expired, at := tokenExpired(token, now)
		require.True(t, expired)
		require.WithinDuration(t, exp, at, time.Second)
	})

	t.Run("future exp", func(t *testing.T) {
		token := signedJWT(t, jwt.MapClaims{"sub": "u1", "exp": now.Add(time.Hour).Unix()})

		expired, _ := tokenExpired(token, now)
		require.False(t, expired)
	})

	t.Run("no exp claim", func(t *testing.T) {
		token := signedJWT(t, jwt.MapClaims{"sub": "u1"})

		expired, _ := tokenExpired(token, now)
		require.False(t, expired)
	})

	t.Run("opaque token", func(t *testing.T) {
		expired, _ := tokenExpired("not-a-jwt", now)
		require.False(t, expired)
	})
}
