package service

import (
	"context"
	"testing"
	"time"

	"github.com/snapvault/snapvault/internal/auth/domain"
	"github.com/snapvault/snapvault/pkg/cryptox"
	"github.com/snapvault/snapvault/pkg/idx"
	"github.com/snapvault/snapvault/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestRevoke(t *testing.T) {
	ctx := context.Background()

	t.Run("blacklists a live access token", func(t *testing.T) {
		f := newFixture(t)
		seeded := f.seedUser(t, "alice@example.com", domain.RoleUser)
		set := f.mintSetAt(t, seeded.Email, time.Now().UTC())

		already, err := f.Revoker.Revoke(ctx, set.AccessToken)
		require.NoError(t, err)
		require.False(t, already)

		entries, err := f.Revoker.ListBySubject(ctx, seeded.Email)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, cryptox.FingerprintToken(set.AccessToken), entries[0].TokenFingerprint)
		require.NotEmpty(t, entries[0].LineageID)
	})

	t.Run("double revoke is idempotent", func(t *testing.T) {
		f := newFixture(t)
		seeded := f.seedUser(t, "alice@example.com", domain.RoleUser)
		set := f.mintSetAt(t, seeded.Email, time.Now().UTC())

		_, err := f.Revoker.Revoke(ctx, set.AccessToken)
		require.NoError(t, err)

		already, err := f.Revoker.Revoke(ctx, set.AccessToken)
		require.NoError(t, err)
		require.True(t, already)

		entries, err := f.Revoker.ListBySubject(ctx, seeded.Email)
		require.NoError(t, err)
		require.Len(t, entries, 1)
	})

	t.Run("rejects refresh tokens", func(t *testing.T) {
		f := newFixture(t)
		seeded := f.seedUser(t, "alice@example.com", domain.RoleUser)
		set := f.mintSetAt(t, seeded.Email, time.Now().UTC())

		_, err := f.Revoker.Revoke(ctx, set.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("lineage fully past its refresh window is refused", func(t *testing.T) {
		f := newFixture(t)
		seeded := f.seedUser(t, "alice@example.com", domain.RoleUser)
		set := f.mintSetAt(t, seeded.Email, time.Now().UTC().Add(-jwtx.DefaultRefreshTokenTTL-time.Second))

		_, err := f.Revoker.Revoke(ctx, set.AccessToken)
		require.ErrorIs(t, err, ErrSessionExpired)
	})
}

func TestIsRevoked(t *testing.T) {
	ctx := context.Background()

	t.Run("sibling refresh token is revoked by lineage", func(t *testing.T) {
		f := newFixture(t)
		seeded := f.seedUser(t, "alice@example.com", domain.RoleUser)
		set := f.mintSetAt(t, seeded.Email, time.Now().UTC())

		// Only the access token is in hand at logout; the refresh token
		// was never literally stored.
		_, err := f.Revoker.Revoke(ctx, set.AccessToken)
		require.NoError(t, err)

		claims, err := f.Codec.Decode(set.RefreshToken, jwtx.ScopeRefresh, false)
		require.NoError(t, err)

		revoked, err := f.Revoker.IsRevoked(ctx, set.RefreshToken, claims)
		require.NoError(t, err)
		require.True(t, revoked)
	})

	t.Run("tokens from another login event are unaffected", func(t *testing.T) {
		f := newFixture(t)
		seeded := f.seedUser(t, "alice@example.com", domain.RoleUser)

		older := f.mintSetAt(t, seeded.Email, time.Now().UTC().Add(-time.Hour))
		newer := f.mintSetAt(t, seeded.Email, time.Now().UTC())

		_, err := f.Revoker.Revoke(ctx, older.AccessToken)
		require.NoError(t, err)

		claims, err := f.Codec.Decode(newer.RefreshToken, jwtx.ScopeRefresh, false)
		require.NoError(t, err)

		revoked, err := f.Revoker.IsRevoked(ctx, newer.RefreshToken, claims)
		require.NoError(t, err)
		require.False(t, revoked)
	})

	t.Run("same-second login events do not cross-revoke", func(t *testing.T) {
		f := newFixture(t)
		seeded := f.seedUser(t, "alice@example.com", domain.RoleUser)

		// Two logins inside the same unix second share refresh_expires_at,
		// so only the lineage id can tell them apart.
		issuedAt := time.Now().UTC().Truncate(time.Second)
		setA := f.mintSetAt(t, seeded.Email, issuedAt)
		setB := f.mintSetAt(t, seeded.Email, issuedAt)

		claimsA, err := f.Codec.Decode(setA.RefreshToken, jwtx.ScopeRefresh, false)
		require.NoError(t, err)
		claimsB, err := f.Codec.Decode(setB.RefreshToken, jwtx.ScopeRefresh, false)
		require.NoError(t, err)
		require.NotEqual(t, claimsA.Lineage, claimsB.Lineage)

		_, err = f.Revoker.Revoke(ctx, setA.AccessToken)
		require.NoError(t, err)

		revoked, err := f.Revoker.IsRevoked(ctx, setB.RefreshToken, claimsB)
		require.NoError(t, err)
		require.False(t, revoked)

		revoked, err = f.Revoker.IsRevoked(ctx, setA.RefreshToken, claimsA)
		require.NoError(t, err)
		require.True(t, revoked)
	})

	t.Run("entry without lineage id matches by refresh expiry", func(t *testing.T) {
		f := newFixture(t)
		seeded := f.seedUser(t, "alice@example.com", domain.RoleUser)

		issuedAt := time.Now().UTC().Truncate(time.Second)
		set := f.mintSetAt(t, seeded.Email, issuedAt)

		// Simulate an entry written before lineage ids existed.
		require.NoError(t, f.Store.Revocations().CreateRevocation(ctx, domain.RevocationEntry{
			ID:               idx.New().String(),
			Subject:          seeded.Email,
			TokenFingerprint: cryptox.FingerprintToken("legacy-access-token"),
			AccessExpiresAt:  issuedAt.Add(jwtx.DefaultAccessTokenTTL),
			RefreshExpiresAt: issuedAt.Add(jwtx.DefaultRefreshTokenTTL),
			CreatedAt:        issuedAt,
		}))

		claims, err := f.Codec.Decode(set.RefreshToken, jwtx.ScopeRefresh, false)
		require.NoError(t, err)

		revoked, err := f.Revoker.IsRevoked(ctx, set.RefreshToken, claims)
		require.NoError(t, err)
		require.True(t, revoked)
	})

	t.Run("dead entries are pruned on lookup", func(t *testing.T) {
		f := newFixture(t)
		seeded := f.seedUser(t, "alice@example.com", domain.RoleUser)

		past := time.Now().UTC().Add(-2 * jwtx.DefaultRefreshTokenTTL)
		require.NoError(t, f.Store.Revocations().CreateRevocation(ctx, domain.RevocationEntry{
			ID:               idx.New().String(),
			Subject:          seeded.Email,
			TokenFingerprint: cryptox.FingerprintToken("long-dead-token"),
			AccessExpiresAt:  past.Add(jwtx.DefaultAccessTokenTTL),
			RefreshExpiresAt: past.Add(jwtx.DefaultRefreshTokenTTL),
			CreatedAt:        past,
		}))

		set := f.mintSetAt(t, seeded.Email, time.Now().UTC())
		claims, err := f.Codec.Decode(set.AccessToken, jwtx.ScopeAccess, false)
		require.NoError(t, err)

		revoked, err := f.Revoker.IsRevoked(ctx, set.AccessToken, claims)
		require.NoError(t, err)
		require.False(t, revoked)

		entries, err := f.Store.Revocations().ListRevocationsBySubject(ctx, seeded.Email)
		require.NoError(t, err)
		require.Empty(t, entries)
	})
}
