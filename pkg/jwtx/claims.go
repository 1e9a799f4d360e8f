package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the fields carried by every token class: subject (the account
// email), issue and expiry times, the scope tag, and a lineage id shared by
// all tokens minted in one login event.
type Claims struct {
	jwt.RegisteredClaims

	// Scope tags the token class. Checked against the presenting context by
	// the session resolver, not by the codec.
	Scope Scope `json:"scope"`

	// Lineage is the id of the login event that minted this token. All three
	// sibling tokens of one login share it, which lets the revocation
	// registry kill a refresh token it has never literally seen.
	Lineage string `json:"lid,omitempty"`
}

// NewClaims builds claims for one token. expiresAt must be strictly after
// issuedAt; the minter guarantees it by construction.
func NewClaims(subject string, scope Scope, lineage string, issuedAt time.Time, lifetime time.Duration) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(lifetime)),
		},
		Scope:   scope,
		Lineage: lineage,
	}
}

// Expired reports whether the token's expiry has passed at the given time.
func (c Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(c.ExpiresAt.Time)
}
