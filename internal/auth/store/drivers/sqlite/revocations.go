package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/snapvault/snapvault/internal/auth/domain"
)

type revocationsRepo struct {
	db dbtx
}

const revocationColumns = `id, subject, token_fingerprint, lineage_id, access_expires_at, refresh_expires_at, created_at`

func (r *revocationsRepo) CreateRevocation(ctx context.Context, e domain.RevocationEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO revocations (id, subject, token_fingerprint, lineage_id, access_expires_at, refresh_expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Subject, e.TokenFingerprint, e.LineageID,
		e.AccessExpiresAt.UTC().Unix(), e.RefreshExpiresAt.UTC().Unix(),
		e.CreatedAt.UTC().Unix(),
	)
	return mapConflict(err)
}

func (r *revocationsRepo) GetRevocationByFingerprint(ctx context.Context, fingerprint string) (domain.RevocationEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+revocationColumns+` FROM revocations WHERE token_fingerprint = ?`, fingerprint)
	return scanRevocation(row)
}

func (r *revocationsRepo) MatchRevokedLineage(ctx context.Context, subject, lineageID string, refreshExpiresAt time.Time) (bool, error) {
	// Lineage id is the primary join key; the refresh-expiry equality match
	// (unix-second precision) covers only entries written without one, so
	// distinct lineages issued in the same second stay independent.
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM revocations
		 WHERE subject = ?
		   AND ((lineage_id != '' AND lineage_id = ?)
		     OR (lineage_id = '' AND refresh_expires_at = ?))`,
		subject, lineageID, refreshExpiresAt.UTC().Unix(),
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *revocationsRepo) ListRevocationsBySubject(ctx context.Context, subject string) ([]domain.RevocationEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+revocationColumns+` FROM revocations WHERE subject = ? ORDER BY created_at DESC`, subject)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RevocationEntry
	for rows.Next() {
		e, err := scanRevocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *revocationsRepo) DeleteExpiredRevocations(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM revocations WHERE refresh_expires_at < ?`, now.UTC().Unix())
	return err
}

func scanRevocation(row rowScanner) (domain.RevocationEntry, error) {
	var (
		e                                    domain.RevocationEntry
		accessUnix, refreshUnix, createdUnix int64
	)

	err := row.Scan(
		&e.ID, &e.Subject, &e.TokenFingerprint, &e.LineageID,
		&accessUnix, &refreshUnix, &createdUnix,
	)
	if err != nil {
		return domain.RevocationEntry{}, mapNotFound(err)
	}

	e.AccessExpiresAt = time.Unix(accessUnix, 0).UTC()
	e.RefreshExpiresAt = time.Unix(refreshUnix, 0).UTC()
	e.CreatedAt = time.Unix(createdUnix, 0).UTC()
	return e, nil
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}
