package model

import "github.com/golang-jwt/jwt/v5"

// AppClaims is the payload of an access token: identity plus role.
type AppClaims struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

// RefreshClaims carries identity only. Refresh tokens deliberately omit the
// role so a rotated token cannot be replayed to assert stale permissions.
type RefreshClaims struct {
	jwt.RegisteredClaims
}
