// file: model/token.go

package model

import "time"

// ResetToken holds the data for a one-time password-reset token.
// TokenHash is the SHA-256 digest of the plaintext secret; the digest doubles
// as the lookup key, so redemption stays unambiguous even with tokens
// outstanding for several users at once.
type ResetToken struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"-"` // The hash is not exposed in JSON responses.
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the token can no longer be redeemed.
func (t *ResetToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// TokenPair bundles the credentials issued on signup, login and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
