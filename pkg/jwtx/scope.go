package jwtx

// Scope is the class of a token. It determines the signing key, the default
// lifetime and where the token may be presented. The set is closed: anything
// outside these three values fails decoding.
type Scope string

const (
	// ScopeAccess marks short-lived tokens presented on normal API calls.
	ScopeAccess Scope = "access_token"

	// ScopeRefresh marks long-lived tokens accepted only by the refresh
	// endpoint. Signed with a separate, stronger key so a compromised
	// access-token key cannot forge one.
	ScopeRefresh Scope = "refresh_token"

	// ScopeEmail marks the email-confirmation token.
	ScopeEmail Scope = "email_token"
)

// Valid reports whether s is one of the three known scopes.
func (s Scope) Valid() bool {
	switch s {
	case ScopeAccess, ScopeRefresh, ScopeEmail:
		return true
	}
	return false
}

func (s Scope) String() string { return string(s) }
