package jwtx

import (
	"fmt"
	"time"

	"github.com/snapvault/snapvault/pkg/idx"
)

// Default token lifetimes. RefreshTTL is typically overridden from
// configuration.
const (
	DefaultAccessTokenTTL  = 24 * time.Hour
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
	DefaultEmailTokenTTL   = 12 * time.Hour
)

// TokenSet is the triple returned by a login or registration event. All
// three tokens share one issuedAt and one lineage id.
type TokenSet struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	EmailToken   string `json:"email_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"` // access token lifetime, seconds
}

// TokenType is the fixed marker returned with every token set.
const TokenType = "bearer"

// Minter builds tokens of each class with class-specific lifetimes on top of
// a Codec. Construct once at startup; immutable.
type Minter struct {
	Codec      *Codec
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	EmailTTL   time.Duration
}

func (m *Minter) MintAccess(subject, lineage string, issuedAt time.Time) (string, error) {
	return m.Codec.Encode(NewClaims(subject, ScopeAccess, lineage, issuedAt, m.AccessTTL))
}

func (m *Minter) MintRefresh(subject, lineage string, issuedAt time.Time) (string, error) {
	return m.Codec.Encode(NewClaims(subject, ScopeRefresh, lineage, issuedAt, m.RefreshTTL))
}

func (m *Minter) MintEmail(subject, lineage string, issuedAt time.Time) (string, error) {
	return m.Codec.Encode(NewClaims(subject, ScopeEmail, lineage, issuedAt, m.EmailTTL))
}

// MintSet mints all three token classes from one captured issuedAt and a
// freshly drawn lineage id, so the triple forms one traceable login event.
func (m *Minter) MintSet(subject string, issuedAt time.Time) (TokenSet, error) {
	lineage := idx.New().String()

	access, err := m.MintAccess(subject, lineage, issuedAt)
	if err != nil {
		return TokenSet{}, fmt.Errorf("mint access token: %w", err)
	}
	refresh, err := m.MintRefresh(subject, lineage, issuedAt)
	if err != nil {
		return TokenSet{}, fmt.Errorf("mint refresh token: %w", err)
	}
	email, err := m.MintEmail(subject, lineage, issuedAt)
	if err != nil {
		return TokenSet{}, fmt.Errorf("mint email token: %w", err)
	}

	return TokenSet{
		AccessToken:  access,
		RefreshToken: refresh,
		EmailToken:   email,
		TokenType:    TokenType,
		ExpiresIn:    int64(m.AccessTTL.Seconds()),
	}, nil
}
