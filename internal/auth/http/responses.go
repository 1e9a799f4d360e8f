package http

import (
	"time"

	"github.com/snapvault/snapvault/internal/auth/domain"
)

// UserResponse is the public projection of an account.
type UserResponse struct {
	ID            int64  `json:"id"`
	Email         string `json:"email"`
	Username      string `json:"username"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"email_verified"`
	IsBanned      bool   `json:"is_banned"`
	CreatedAt     string `json:"created_at"`
}

func newUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Username:      u.Username,
		Role:          u.Role.String(),
		EmailVerified: u.EmailVerified,
		IsBanned:      u.IsBanned,
		CreatedAt:     u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// RegisterResponse returns the new account plus its email confirmation
// token. Mail delivery is an external collaborator; handing the token back
// lets the caller drive it.
type RegisterResponse struct {
	User       UserResponse `json:"user"`
	EmailToken string       `json:"email_token"`
}

// HealthResponse is shared by the liveness and readiness probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
}
