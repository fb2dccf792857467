package models

import "time"

// TokenValidityMargin is subtracted from a token's expiry when checking validity.
const TokenValidityMargin = 60 * time.Second

// SessionToken is the bearer token issued by the identity provider.
//
// ExpiresAt is computed from ExpiresIn when the token is issued and is always set before the token is cached.
type SessionToken struct {
	TokenType   string    `json:"token_type"`
	AccessToken string    `json:"access_token"`
	Scope       string    `json:"scope"`
	IDToken     string    `json:"id_token"`
	ExpiresIn   int64     `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// IsValid reports whether now plus [TokenValidityMargin] is strictly before ExpiresAt.
func (t *SessionToken) IsValid(now time.Time) bool {
	if t == nil || t.AccessToken == "" || t.ExpiresAt.IsZero() {
		return false
	}
	return now.Add(TokenValidityMargin).Before(t.ExpiresAt)
}

// Remaining returns the time left before the token stops being valid.
func (t *SessionToken) Remaining(now time.Time) time.Duration {
	if !t.IsValid(now) {
		return 0
	}
	return t.ExpiresAt.Sub(now.Add(TokenValidityMargin))
}
