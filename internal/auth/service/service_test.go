package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/snapvault/snapvault/internal/auth/domain"
	"github.com/snapvault/snapvault/internal/auth/store"
	"github.com/snapvault/snapvault/internal/auth/store/drivers/sqlite"
	"github.com/snapvault/snapvault/pkg/cryptox"
	"github.com/snapvault/snapvault/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	pepperPath := filepath.Join(os.TempDir(), "snapvault-service-test-pepper")
	cryptox.SetPepperPath(pepperPath)

	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	os.Exit(m.Run())
}

// fixture bundles the full service stack over an in-memory store.
type fixture struct {
	Store    store.Store
	Codec    *jwtx.Codec
	Minter   *jwtx.Minter
	Sessions *SessionService
	Revoker  *RevocationService
	Accounts *AccountService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())

	codec, err := jwtx.NewCodec(jwtx.CodecConfig{
		AccessKey:  jwtx.KeyConfig{Secret: []byte("access-test-secret-access-test-secret"), Algorithm: "HS256"},
		RefreshKey: jwtx.KeyConfig{Secret: []byte("refresh-test-secret-refresh-test-secret"), Algorithm: "HS512"},
	})
	require.NoError(t, err)

	minter := &jwtx.Minter{
		Codec:      codec,
		AccessTTL:  jwtx.DefaultAccessTokenTTL,
		RefreshTTL: jwtx.DefaultRefreshTokenTTL,
		EmailTTL:   jwtx.DefaultEmailTokenTTL,
	}

	revoker := &RevocationService{Codec: codec, Store: st, RefreshTTL: minter.RefreshTTL}
	sessions := &SessionService{Codec: codec, Store: st, Revocations: revoker}
	accounts := &AccountService{Store: st, Minter: minter, Sessions: sessions, Revocations: revoker}

	return &fixture{
		Store:    st,
		Codec:    codec,
		Minter:   minter,
		Sessions: sessions,
		Revoker:  revoker,
		Accounts: accounts,
	}
}

// seedUser inserts a logged-in user with the given role and returns it.
func (f *fixture) seedUser(t *testing.T, email string, role domain.Role) domain.User {
	t.Helper()
	ctx := context.Background()

	hash, err := cryptox.HashPassword("correct horse battery staple")
	require.NoError(t, err)

	user, err := f.Store.Users().CreateUser(ctx, domain.User{
		Email:        email,
		Username:     email[:len(email)-len("@example.com")],
		PasswordHash: hash,
		Role:         role,
	})
	require.NoError(t, err)

	require.NoError(t, f.Store.Users().SetLoggedIn(ctx, user.ID, true))
	user.LoggedIn = true
	return user
}

// mintSetAt mints a full token set back-dated to issuedAt, for expiry cases.
func (f *fixture) mintSetAt(t *testing.T, subject string, issuedAt time.Time) jwtx.TokenSet {
	t.Helper()

	set, err := f.Minter.MintSet(subject, issuedAt)
	require.NoError(t, err)
	return set
}
