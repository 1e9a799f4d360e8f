package store

import (
	"context"
	"errors"
	"time"

	"github.com/snapvault/snapvault/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Revocations() Revocations

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByEmail resolves the token subject to an account.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByUsername is used to reject duplicate registrations.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user and returns it with the assigned id.
	// Returns ErrAlreadyExists when the email or username is taken.
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)

	// SetLoggedIn flips the session flag and bumps updated_at.
	SetLoggedIn(ctx context.Context, userID int64, loggedIn bool) error

	// SetBanned flips the administrative ban flag.
	SetBanned(ctx context.Context, userID int64, banned bool) error

	// SetEmailVerified marks the account email as confirmed.
	SetEmailVerified(ctx context.Context, userID int64) error

	// UpdateRole reassigns the account's role. Used by operator tooling;
	// no public endpoint changes roles.
	UpdateRole(ctx context.Context, userID int64, role domain.Role) error
}

type Revocations interface {
	// CreateRevocation stores a new blacklist entry. Returns
	// ErrAlreadyExists when the token fingerprint is already present, which
	// callers treat as success (revocation is idempotent).
	CreateRevocation(ctx context.Context, e domain.RevocationEntry) error

	// GetRevocationByFingerprint looks up an entry by exact token
	// fingerprint.
	GetRevocationByFingerprint(ctx context.Context, fingerprint string) (domain.RevocationEntry, error)

	// MatchRevokedLineage reports whether any entry for the subject matches
	// the lineage id or, for entries predating lineage ids, the refresh
	// expiry timestamp.
	MatchRevokedLineage(ctx context.Context, subject, lineageID string, refreshExpiresAt time.Time) (bool, error)

	// ListRevocationsBySubject returns all live entries for a subject.
	ListRevocationsBySubject(ctx context.Context, subject string) ([]domain.RevocationEntry, error)

	// DeleteExpiredRevocations prunes entries whose refresh expiry has
	// passed. Invoked opportunistically on lookups, not on a timer.
	DeleteExpiredRevocations(ctx context.Context, now time.Time) error
}
