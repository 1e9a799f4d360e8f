package domain

import "time"

// User is the account record backing every identity decision. The subject
// carried in tokens is the email; LoggedIn and IsBanned are the two flags the
// session resolver consults on every protected request.
type User struct {
	ID            int64
	Email         string
	Username      string
	PasswordHash  string // argon2id PHC encoded
	LoggedIn      bool
	IsBanned      bool
	EmailVerified bool
	Role          Role
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
