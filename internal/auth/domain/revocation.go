package domain

import "time"

// RevocationEntry records one blacklisted token. Only the access token is in
// hand at logout, so the entry also carries the lineage id and the computed
// refresh expiry; either lets the registry recognise the sibling refresh
// token it has never literally seen.
type RevocationEntry struct {
	ID               string // ULID
	Subject          string // account email
	TokenFingerprint string // SHA-256 of the raw token, unique
	LineageID        string // login-event id shared by sibling tokens
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
	CreatedAt        time.Time
}

// Dead reports whether the entry no longer guards anything: once the refresh
// expiry has passed, every token in the lineage is dead on its own and the
// entry may be pruned.
func (e RevocationEntry) Dead(now time.Time) bool {
	return now.After(e.RefreshExpiresAt)
}
