package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired peeks at a stored token's exp claim without verifying the
// signature. A token that is not a JWT, or carries no exp claim, is not
// treated as expired here; the backend remains the authority and will
// answer 401 if it disagrees. This only short-circuits the startup
// verification call when it is guaranteed to fail.
func tokenExpired(token string, now time.Time) (bool, time.Time) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false, time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false, time.Time{}
	}
	return exp.Before(now), exp.Time
}
