package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/snapvault/snapvault/internal/auth/domain"
	"github.com/snapvault/snapvault/internal/auth/store"
	"github.com/snapvault/snapvault/pkg/cryptox"
	"github.com/snapvault/snapvault/pkg/idx"
	"github.com/snapvault/snapvault/pkg/jwtx"
	"github.com/snapvault/snapvault/pkg/slogx"
)

// RevocationService maintains the token blacklist. Revoking one token kills
// the whole login event it belongs to: the entry carries the lineage id, and
// lookups match siblings through it.
type RevocationService struct {
	Codec      *jwtx.Codec
	Store      store.Store
	RefreshTTL time.Duration
}

// Revoke blacklists the given access token and, through its lineage, the
// refresh and email tokens minted alongside it. Only the access token is in
// hand at logout, so the refresh expiry is derived from the issue time.
// Returns already=true when the token was on the blacklist before this call.
func (s *RevocationService) Revoke(ctx context.Context, rawToken string) (already bool, err error) {
	l := slogx.FromContext(ctx)

	// Expiry is not enforced here: a stale access token still identifies
	// the login event, and its refresh sibling may have life left.
	claims, err := s.Codec.Decode(rawToken, jwtx.ScopeAccess, false)
	if err != nil {
		return false, ErrInvalidToken
	}
	if claims.Scope != jwtx.ScopeAccess {
		return false, ErrInvalidScope
	}

	now := time.Now().UTC()
	accessExpiry := claims.ExpiresAt.Time

	ttl := s.RefreshTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultRefreshTokenTTL
	}
	refreshExpiry := claims.IssuedAt.Time.Add(ttl)

	if now.After(refreshExpiry) {
		// Nothing minted in this lineage can still be alive.
		return false, ErrSessionExpired
	}

	entry := domain.RevocationEntry{
		ID:               idx.New().String(),
		Subject:          claims.Subject,
		TokenFingerprint: cryptox.FingerprintToken(rawToken),
		LineageID:        claims.Lineage,
		AccessExpiresAt:  accessExpiry,
		RefreshExpiresAt: refreshExpiry,
		CreatedAt:        now,
	}

	err = s.Store.Revocations().CreateRevocation(ctx, entry)
	if errors.Is(err, store.ErrAlreadyExists) {
		return true, nil
	}
	if err != nil {
		return false, err
	}

	l.Info("token revoked",
		slog.String("subject", claims.Subject),
		slog.String("lineage", claims.Lineage),
	)
	return false, nil
}

// IsRevoked reports whether the token, or any sibling from the same login
// event, has been blacklisted. Dead entries are pruned opportunistically
// before the lookup so the table never needs a sweeper.
func (s *RevocationService) IsRevoked(ctx context.Context, rawToken string, claims jwtx.Claims) (bool, error) {
	now := time.Now().UTC()
	if err := s.Store.Revocations().DeleteExpiredRevocations(ctx, now); err != nil {
		return false, err
	}

	// Exact fingerprint match first, the cheap path for refresh tokens.
	_, err := s.Store.Revocations().GetRevocationByFingerprint(ctx, cryptox.FingerprintToken(rawToken))
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return false, err
	}

	// Siblings share a lineage id with the revoked refresh token.
	refreshExpiry := s.refreshExpiryFor(claims)
	return s.Store.Revocations().MatchRevokedLineage(ctx, claims.Subject, claims.Lineage, refreshExpiry)
}

// ListBySubject returns the live blacklist entries for a subject.
func (s *RevocationService) ListBySubject(ctx context.Context, subject string) ([]domain.RevocationEntry, error) {
	if err := s.Store.Revocations().DeleteExpiredRevocations(ctx, time.Now().UTC()); err != nil {
		return nil, err
	}
	return s.Store.Revocations().ListRevocationsBySubject(ctx, subject)
}

// refreshExpiryFor reconstructs the refresh expiry of the login event a token
// belongs to. For refresh tokens it is the token's own expiry; for access and
// email tokens it is derived from the issue time and the configured TTL.
func (s *RevocationService) refreshExpiryFor(claims jwtx.Claims) time.Time {
	if claims.Scope == jwtx.ScopeRefresh {
		return claims.ExpiresAt.Time
	}

	ttl := s.RefreshTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultRefreshTokenTTL
	}
	return claims.IssuedAt.Time.Add(ttl)
}
