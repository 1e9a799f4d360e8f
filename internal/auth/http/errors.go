package http

import (
	"errors"
	"net/http"

	"github.com/snapvault/snapvault/internal/auth/service"
	"github.com/snapvault/snapvault/pkg/httpx"
)

// writeServiceError maps the service sentinels onto HTTP responses. Token
// failures carry an RFC 6750 challenge; everything unrecognized is a 500
// without detail.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "email or password incorrect")
	case errors.Is(err, service.ErrAlreadyRegistered):
		httpx.WriteError(w, http.StatusConflict, "already_registered", "email or username already taken")
	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteError(w, http.StatusNotFound, "user_not_found", "no account for this subject")
	case errors.Is(err, service.ErrAccountBanned):
		httpx.WriteError(w, http.StatusForbidden, "account_banned", "account is banned")
	case errors.Is(err, service.ErrInsufficientRole):
		httpx.WriteError(w, http.StatusForbidden, "insufficient_role", "role not permitted for this operation")
	case errors.Is(err, service.ErrInvalidToken):
		httpx.WriteBearerError(w, http.StatusUnauthorized, "token invalid")
	case errors.Is(err, service.ErrInvalidScope):
		httpx.WriteBearerError(w, http.StatusUnauthorized, "token scope not valid here")
	case errors.Is(err, service.ErrTokenRevoked):
		httpx.WriteBearerError(w, http.StatusUnauthorized, "token has been revoked")
	case errors.Is(err, service.ErrSessionExpired):
		httpx.WriteBearerError(w, http.StatusUnauthorized, "session expired, log in again")
	case errors.Is(err, service.ErrNotLoggedIn):
		httpx.WriteBearerError(w, http.StatusUnauthorized, "no active session")
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "")
	}
}
