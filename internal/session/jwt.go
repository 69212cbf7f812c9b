package session

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v4"
)

// TokenExpiry peeks at the expiry claim of the issued token. The token
// is treated as opaque for every decision the portal makes; the server
// signed it and the server judges it. This is an unverified parse used
// only for display and logging, so no secret is needed.
func TokenExpiry(token string) (time.Time, bool) {
	claims := new(jwt.RegisteredClaims)

	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}

	return claims.ExpiresAt.Time, true
}
