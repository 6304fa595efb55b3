// Package auth inspects access tokens on the client side. Tokens are never
// verified here: the client holds no signing key, so only the registered
// claims are read to skip a server round trip for an obviously stale token.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ExpiresAt returns the exp claim of a JWT without verifying its signature.
// ok is false when the token is not a JWT or carries no exp claim.
func ExpiresAt(tokenString string) (exp time.Time, ok bool) {
	claims := &jwt.RegisteredClaims{}

	_, _, err := jwt.NewParser().ParseUnverified(tokenString, claims)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}

	return claims.ExpiresAt.Time, true
}

// Expired reports whether the token's exp claim lies before now. Opaque
// tokens are never considered expired; the server decides for them.
func Expired(tokenString string, now time.Time) bool {
	exp, ok := ExpiresAt(tokenString)
	if !ok {
		return false
	}
	return exp.Before(now)
}
