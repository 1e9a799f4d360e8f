package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec(CodecConfig{
		AccessKey:  KeyConfig{Secret: []byte("access-secret-256-bit-class-key!"), Algorithm: "HS256"},
		RefreshKey: KeyConfig{Secret: []byte(strings.Repeat("refresh-secret!!", 4)), Algorithm: "HS512"},
	})
	require.NoError(t, err)
	return c
}

func TestNewCodec_ConfigValidation(t *testing.T) {
	access := KeyConfig{Secret: []byte("a-key"), Algorithm: "HS256"}
	refresh := KeyConfig{Secret: []byte("r-key"), Algorithm: "HS512"}

	t.Run("missing secret", func(t *testing.T) {
		_, err := NewCodec(CodecConfig{AccessKey: KeyConfig{Algorithm: "HS256"}, RefreshKey: refresh})
		require.ErrorIs(t, err, ErrMissingKey)
	})

	t.Run("non-HMAC algorithm", func(t *testing.T) {
		_, err := NewCodec(CodecConfig{
			AccessKey:  KeyConfig{Secret: []byte("a-key"), Algorithm: "RS256"},
			RefreshKey: refresh,
		})
		require.ErrorIs(t, err, ErrBadAlgorithm)
	})

	t.Run("unknown algorithm", func(t *testing.T) {
		_, err := NewCodec(CodecConfig{
			AccessKey:  KeyConfig{Secret: []byte("a-key"), Algorithm: "HS123"},
			RefreshKey: refresh,
		})
		require.ErrorIs(t, err, ErrBadAlgorithm)
	})

	t.Run("shared key rejected", func(t *testing.T) {
		_, err := NewCodec(CodecConfig{
			AccessKey:  access,
			RefreshKey: KeyConfig{Secret: access.Secret, Algorithm: "HS512"},
		})
		require.ErrorIs(t, err, ErrSharedKey)
	})
}

func TestCodec_RoundTrip(t *testing.T) {
	c := testCodec(t)
	issued := time.Now().UTC().Truncate(time.Second)

	for _, scope := range []Scope{ScopeAccess, ScopeRefresh, ScopeEmail} {
		t.Run(scope.String(), func(t *testing.T) {
			lifetime := 30 * time.Minute
			raw, err := c.Encode(NewClaims("user@example.com", scope, "lineage-1", issued, lifetime))
			require.NoError(t, err)

			claims, err := c.Decode(raw, scope, true)
			require.NoError(t, err)
			require.Equal(t, "user@example.com", claims.Subject)
			require.Equal(t, scope, claims.Scope)
			require.Equal(t, "lineage-1", claims.Lineage)
			// NumericDate decodes into the local zone; compare instants.
			require.True(t, issued.Equal(claims.IssuedAt.Time))
			require.Equal(t, lifetime, claims.ExpiresAt.Sub(claims.IssuedAt.Time),
				"expiry minus issue time must equal the lifetime")
		})
	}
}

func TestCodec_CrossKeyRejection(t *testing.T) {
	c := testCodec(t)
	now := time.Now().UTC()

	access, err := c.Encode(NewClaims("user@example.com", ScopeAccess, "", now, time.Hour))
	require.NoError(t, err)
	refresh, err := c.Encode(NewClaims("user@example.com", ScopeRefresh, "", now, time.Hour))
	require.NoError(t, err)

	t.Run("access token under refresh key", func(t *testing.T) {
		_, err := c.Decode(access, ScopeRefresh, false)
		require.Error(t, err)
	})

	t.Run("refresh token under access key", func(t *testing.T) {
		_, err := c.Decode(refresh, ScopeAccess, false)
		require.Error(t, err)
	})

	t.Run("email token shares the access key", func(t *testing.T) {
		email, err := c.Encode(NewClaims("user@example.com", ScopeEmail, "", now, time.Hour))
		require.NoError(t, err)

		// Decodes under the access context; scope mismatch is the
		// resolver's concern, not the codec's.
		claims, err := c.Decode(email, ScopeAccess, false)
		require.NoError(t, err)
		require.Equal(t, ScopeEmail, claims.Scope)
	})
}

func TestCodec_ExpiryEnforcement(t *testing.T) {
	c := testCodec(t)
	stale := time.Now().UTC().Add(-2 * time.Hour)

	raw, err := c.Encode(NewClaims("user@example.com", ScopeAccess, "", stale, time.Hour))
	require.NoError(t, err)

	_, err = c.Decode(raw, ScopeAccess, true)
	require.ErrorIs(t, err, ErrExpired)

	// Without enforcement the expired token still yields its claims.
	claims, err := c.Decode(raw, ScopeAccess, false)
	require.NoError(t, err)
	require.True(t, claims.Expired(time.Now().UTC()))
}

func TestCodec_MalformedInput(t *testing.T) {
	c := testCodec(t)

	for _, raw := range []string{"", "garbage", "a.b.c", "e30.e30."} {
		_, err := c.Decode(raw, ScopeAccess, false)
		require.Error(t, err, "input %q", raw)
	}
}

func TestCodec_TamperedTokenRejected(t *testing.T) {
	c := testCodec(t)

	raw, err := c.Encode(NewClaims("user@example.com", ScopeAccess, "", time.Now().UTC(), time.Hour))
	require.NoError(t, err)

	tampered := raw[:len(raw)-2] + "xx"
	_, err = c.Decode(tampered, ScopeAccess, false)
	require.Error(t, err)
}

func TestMinter_SetSharesLineage(t *testing.T) {
	c := testCodec(t)
	m := &Minter{
		Codec:      c,
		AccessTTL:  DefaultAccessTokenTTL,
		RefreshTTL: DefaultRefreshTokenTTL,
		EmailTTL:   DefaultEmailTokenTTL,
	}

	issued := time.Now().UTC().Truncate(time.Second)
	set, err := m.MintSet("user@example.com", issued)
	require.NoError(t, err)
	require.Equal(t, TokenType, set.TokenType)
	require.Equal(t, int64(DefaultAccessTokenTTL.Seconds()), set.ExpiresIn)

	access, err := c.Decode(set.AccessToken, ScopeAccess, true)
	require.NoError(t, err)
	refresh, err := c.Decode(set.RefreshToken, ScopeRefresh, true)
	require.NoError(t, err)
	email, err := c.Decode(set.EmailToken, ScopeEmail, true)
	require.NoError(t, err)

	// One login event: same subject, same issuedAt, same lineage.
	for _, claims := range []Claims{access, refresh, email} {
		require.Equal(t, "user@example.com", claims.Subject)
		require.True(t, issued.Equal(claims.IssuedAt.Time))
		require.Equal(t, access.Lineage, claims.Lineage)
		require.NotEmpty(t, claims.Lineage)
	}

	// Distinct classes, distinct expiries.
	require.Equal(t, ScopeAccess, access.Scope)
	require.Equal(t, ScopeRefresh, refresh.Scope)
	require.Equal(t, ScopeEmail, email.Scope)
	require.True(t, issued.Add(DefaultAccessTokenTTL).Equal(access.ExpiresAt.Time))
	require.True(t, issued.Add(DefaultRefreshTokenTTL).Equal(refresh.ExpiresAt.Time))
	require.True(t, issued.Add(DefaultEmailTokenTTL).Equal(email.ExpiresAt.Time))
}
