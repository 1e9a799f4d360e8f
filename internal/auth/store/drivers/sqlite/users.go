package sqlite

import (
	"context"
	"time"

	"github.com/snapvault/snapvault/internal/auth/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, email, username, password_hash, logged_in, is_banned, email_verified, role, created_at, updated_at`

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, username, password_hash, logged_in, is_banned, email_verified, role, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Email, u.Username, u.PasswordHash,
		boolToInt(u.LoggedIn), boolToInt(u.IsBanned), boolToInt(u.EmailVerified),
		string(u.Role), now.Unix(), now.Unix(),
	)
	if err != nil {
		return domain.User{}, mapConflict(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.User{}, err
	}

	u.ID = id
	u.CreatedAt = now
	u.UpdatedAt = now
	return u, nil
}

func (r *usersRepo) SetLoggedIn(ctx context.Context, userID int64, loggedIn bool) error {
	return r.updateFlag(ctx, `logged_in`, userID, loggedIn)
}

func (r *usersRepo) SetBanned(ctx context.Context, userID int64, banned bool) error {
	return r.updateFlag(ctx, `is_banned`, userID, banned)
}

func (r *usersRepo) SetEmailVerified(ctx context.Context, userID int64) error {
	return r.updateFlag(ctx, `email_verified`, userID, true)
}

func (r *usersRepo) UpdateRole(ctx context.Context, userID int64, role domain.Role) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET role = ?, updated_at = ? WHERE id = ?`,
		string(role), time.Now().UTC().Unix(), userID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

// updateFlag writes one boolean column. The column name is always one of the
// fixed literals above, never caller input.
func (r *usersRepo) updateFlag(ctx context.Context, column string, userID int64, value bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET `+column+` = ?, updated_at = ? WHERE id = ?`,
		boolToInt(value), time.Now().UTC().Unix(), userID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		user                         domain.User
		loggedIn, banned, verified   int
		role                         string
		createdAtUnix, updatedAtUnix int64
	)

	err := row.Scan(
		&user.ID, &user.Email, &user.Username, &user.PasswordHash,
		&loggedIn, &banned, &verified, &role,
		&createdAtUnix, &updatedAtUnix,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	user.LoggedIn = loggedIn != 0
	user.IsBanned = banned != 0
	user.EmailVerified = verified != 0
	user.Role = domain.Role(role)
	user.CreatedAt = time.Unix(createdAtUnix, 0).UTC()
	user.UpdatedAt = time.Unix(updatedAtUnix, 0).UTC()
	return user, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
