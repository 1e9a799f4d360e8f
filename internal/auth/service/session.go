package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/snapvault/snapvault/internal/auth/domain"
	"github.com/snapvault/snapvault/internal/auth/store"
	"github.com/snapvault/snapvault/pkg/jwtx"
	"github.com/snapvault/snapvault/pkg/slogx"
)

// SessionService is the verification state machine behind every protected
// endpoint. Given a raw bearer token and the scope the endpoint expects, it
// decodes the token, consults the revocation registry, resolves the subject
// and returns an authenticated identity or a precise failure.
type SessionService struct {
	Codec       *jwtx.Codec
	Store       store.Store
	Revocations *RevocationService
}

// Resolve verifies rawToken against the expected scope.
//
// The checks run in a fixed order: decode, scope, revocation, subject lookup,
// ban status, login state. Revocation is checked before any claim is trusted,
// and ban status before scope-specific expiry logic, so a banned user cannot
// extend their session by hitting refresh.
func (s *SessionService) Resolve(ctx context.Context, rawToken string, scope jwtx.Scope) (domain.User, jwtx.Claims, error) {
	l := slogx.FromContext(ctx)

	// Refresh tokens are allowed to arrive expired; expiry becomes a login
	// state transition below rather than a decode failure.
	enforceExpiry := scope != jwtx.ScopeRefresh

	claims, err := s.Codec.Decode(rawToken, scope, enforceExpiry)
	if err != nil {
		if errors.Is(err, jwtx.ErrExpired) {
			return domain.User{}, jwtx.Claims{}, ErrSessionExpired
		}
		return domain.User{}, jwtx.Claims{}, ErrInvalidToken
	}

	if claims.Scope != scope {
		l.Info("token scope mismatch",
			slog.String("want", scope.String()),
			slog.String("got", claims.Scope.String()),
		)
		return domain.User{}, jwtx.Claims{}, ErrInvalidScope
	}

	revoked, err := s.Revocations.IsRevoked(ctx, rawToken, claims)
	if err != nil {
		return domain.User{}, jwtx.Claims{}, err
	}
	if revoked {
		return domain.User{}, jwtx.Claims{}, ErrTokenRevoked
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, jwtx.Claims{}, ErrUserNotFound
		}
		return domain.User{}, jwtx.Claims{}, err
	}

	if user.IsBanned {
		return domain.User{}, jwtx.Claims{}, ErrAccountBanned
	}

	now := time.Now().UTC()

	switch scope {
	case jwtx.ScopeRefresh:
		if claims.Expired(now) {
			// The session is over; persist the logout before failing so
			// a lingering access token cannot be replayed either.
			if err := s.Store.Users().SetLoggedIn(ctx, user.ID, false); err != nil {
				return domain.User{}, jwtx.Claims{}, err
			}
			l.Info("refresh token expired, session closed", slog.String("subject", user.Email))
			return domain.User{}, jwtx.Claims{}, ErrSessionExpired
		}
	case jwtx.ScopeAccess:
		// A structurally valid access token is not enough after an
		// explicit logout that failed to blacklist it.
		if !user.LoggedIn {
			return domain.User{}, jwtx.Claims{}, ErrNotLoggedIn
		}
	}

	return user, claims, nil
}
