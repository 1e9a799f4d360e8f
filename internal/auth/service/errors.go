package service

import "errors"

// Sentinel errors shared by the auth services. Handlers map these onto HTTP
// status codes; anything not in this list is treated as an internal error.
var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidToken       = errors.New("invalid_token")
	ErrInvalidScope       = errors.New("invalid_scope")
	ErrTokenRevoked       = errors.New("token_revoked")
	ErrUserNotFound       = errors.New("user_not_found")
	ErrAccountBanned      = errors.New("account_banned")
	ErrSessionExpired     = errors.New("session_expired")
	ErrNotLoggedIn        = errors.New("not_logged_in")
	ErrInsufficientRole   = errors.New("insufficient_role")
)
