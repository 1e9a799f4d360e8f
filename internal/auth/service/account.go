package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/snapvault/snapvault/internal/auth/domain"
	"github.com/snapvault/snapvault/internal/auth/store"
	"github.com/snapvault/snapvault/pkg/cryptox"
	"github.com/snapvault/snapvault/pkg/idx"
	"github.com/snapvault/snapvault/pkg/jwtx"
	"github.com/snapvault/snapvault/pkg/slogx"
)

// AccountService owns the credentialed flows: registration, login, logout,
// refresh and email confirmation. It composes the minter, the session
// resolver and the revocation registry.
type AccountService struct {
	Store       store.Store
	Minter      *jwtx.Minter
	Sessions    *SessionService
	Revocations *RevocationService
}

// ErrAlreadyRegistered reports a taken email or username.
var ErrAlreadyRegistered = errors.New("already_registered")

// Register creates a new account and mints its email confirmation token.
// The account starts logged out with role user; it only becomes usable for
// login, confirmation is advisory.
func (s *AccountService) Register(ctx context.Context, email, username, password string) (domain.User, string, error) {
	l := slogx.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)
	if email == "" || username == "" || password == "" {
		return domain.User{}, "", ErrInvalidCredentials
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, "", err
	}

	// Pre-check both unique columns and insert in one transaction, so the
	// caller gets already_registered rather than a raw constraint error and
	// concurrent registrations cannot interleave.
	var user domain.User
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().GetUserByEmail(ctx, email); err == nil {
			return ErrAlreadyRegistered
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if _, err := tx.Users().GetUserByUsername(ctx, username); err == nil {
			return ErrAlreadyRegistered
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		created, err := tx.Users().CreateUser(ctx, domain.User{
			Email:        email,
			Username:     username,
			PasswordHash: hash,
			Role:         domain.RoleUser,
		})
		if err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrAlreadyRegistered
			}
			return err
		}
		user = created
		return nil
	})
	if err != nil {
		return domain.User{}, "", err
	}

	emailToken, err := s.Minter.MintEmail(user.Email, idx.New().String(), time.Now().UTC())
	if err != nil {
		return domain.User{}, "", err
	}

	l.Info("account registered",
		slog.String("subject", user.Email),
		slog.String("username", user.Username),
	)
	return user, emailToken, nil
}

// Login verifies the credentials and opens a session: one issue timestamp and
// one lineage id shared by all three minted tokens.
func (s *AccountService) Login(ctx context.Context, email, password string) (jwtx.TokenSet, error) {
	l := slogx.FromContext(ctx)
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn comparable time so missing accounts are not an oracle.
			_ = cryptox.VerifyPassword(password, decoyHash)
			return jwtx.TokenSet{}, ErrInvalidCredentials
		}
		return jwtx.TokenSet{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("login failed", slog.String("subject", email))
		return jwtx.TokenSet{}, ErrInvalidCredentials
	}

	if user.IsBanned {
		return jwtx.TokenSet{}, ErrAccountBanned
	}

	set, err := s.Minter.MintSet(user.Email, time.Now().UTC())
	if err != nil {
		return jwtx.TokenSet{}, err
	}

	if err := s.Store.Users().SetLoggedIn(ctx, user.ID, true); err != nil {
		return jwtx.TokenSet{}, err
	}

	l.Info("login succeeded", slog.String("subject", user.Email))
	return set, nil
}

// Logout resolves the presented access token, blacklists it (and through the
// lineage its sibling refresh and email tokens) and closes the session. A
// token that is already on the blacklist still logs the user out.
func (s *AccountService) Logout(ctx context.Context, rawAccessToken string) error {
	l := slogx.FromContext(ctx)

	user, _, err := s.Sessions.Resolve(ctx, rawAccessToken, jwtx.ScopeAccess)
	if err != nil {
		return err
	}

	already, err := s.Revocations.Revoke(ctx, rawAccessToken)
	if err != nil {
		return err
	}
	if already {
		l.Info("token already revoked", slog.String("subject", user.Email))
	}

	return s.Store.Users().SetLoggedIn(ctx, user.ID, false)
}

// Refresh exchanges a live refresh token for a fresh access and email token.
// The refresh token itself is reused, not rotated; the lineage id carries
// over so a later logout still kills everything minted here.
func (s *AccountService) Refresh(ctx context.Context, rawRefreshToken string) (jwtx.TokenSet, error) {
	user, claims, err := s.Sessions.Resolve(ctx, rawRefreshToken, jwtx.ScopeRefresh)
	if err != nil {
		return jwtx.TokenSet{}, err
	}

	// Resolve already ran the registry check, but a revocation racing this
	// call may have landed since. Re-check against the live entries.
	entries, err := s.Revocations.ListBySubject(ctx, user.Email)
	if err != nil {
		return jwtx.TokenSet{}, err
	}
	for _, e := range entries {
		if sameLineage(e, claims) {
			return jwtx.TokenSet{}, ErrTokenRevoked
		}
	}

	now := time.Now().UTC()
	access, err := s.Minter.MintAccess(user.Email, claims.Lineage, now)
	if err != nil {
		return jwtx.TokenSet{}, err
	}
	email, err := s.Minter.MintEmail(user.Email, claims.Lineage, now)
	if err != nil {
		return jwtx.TokenSet{}, err
	}

	return jwtx.TokenSet{
		AccessToken:  access,
		RefreshToken: rawRefreshToken,
		EmailToken:   email,
		TokenType:    jwtx.TokenType,
		ExpiresIn:    int64(s.Minter.AccessTTL.Seconds()),
	}, nil
}

// ConfirmEmail resolves an email-scope token and marks the account verified.
// Confirming twice is harmless.
func (s *AccountService) ConfirmEmail(ctx context.Context, rawEmailToken string) (domain.User, error) {
	user, _, err := s.Sessions.Resolve(ctx, rawEmailToken, jwtx.ScopeEmail)
	if err != nil {
		return domain.User{}, err
	}

	if !user.EmailVerified {
		if err := s.Store.Users().SetEmailVerified(ctx, user.ID); err != nil {
			return domain.User{}, err
		}
		user.EmailVerified = true
	}
	return user, nil
}

// SetBanned toggles the administrative ban flag on the target account. The
// caller is expected to have passed the role gate already. Banning does not
// clear the logged-in flag; the resolver's ban check blocks every request
// regardless.
func (s *AccountService) SetBanned(ctx context.Context, email string, banned bool) (domain.User, error) {
	l := slogx.FromContext(ctx)
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}

	if user.IsBanned != banned {
		if err := s.Store.Users().SetBanned(ctx, user.ID, banned); err != nil {
			return domain.User{}, err
		}
		user.IsBanned = banned
	}

	l.Info("ban flag updated",
		slog.String("subject", user.Email),
		slog.Bool("banned", banned),
	)
	return user, nil
}

// sameLineage reports whether a blacklist entry belongs to the login event
// the claims came from. The lineage id is authoritative; only entries written
// without one fall back to the refresh expiry at unix-second precision.
func sameLineage(e domain.RevocationEntry, claims jwtx.Claims) bool {
	if e.LineageID != "" {
		return claims.Lineage != "" && e.LineageID == claims.Lineage
	}
	return e.RefreshExpiresAt.Unix() == claims.ExpiresAt.Time.Unix()
}

// decoyHash is a syntactically valid argon2id hash of a random value, kept
// only to equalise response timing when the email does not exist.
const decoyHash = "$argon2id$v=19$m=19456,t=2,p=1$AAAAAAAAAAAAAAAAAAAAAA$mZ4IYUvoIEhvs4TDkvpXI/9aVLSMcSvi2stEDmHsJ9g"
