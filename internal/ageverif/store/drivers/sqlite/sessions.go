package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/ageverif/internal/ageverif/domain"
	"github.com/aussiebroadwan/ageverif/internal/ageverif/store"
)

type sessionsRepo struct {
	db       *sql.DB
	capacity int
}

const upsertSession = `
INSERT INTO verification_sessions (id, surname, order_number, postcode, created_at, expires_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    surname      = excluded.surname,
    order_number = excluded.order_number,
    postcode     = excluded.postcode,
    created_at   = excluded.created_at,
    expires_at   = excluded.expires_at`

const trimSessions = `
DELETE FROM verification_sessions WHERE id IN (
    SELECT id FROM verification_sessions
    ORDER BY created_at DESC, rowid DESC
    LIMIT -1 OFFSET ?
)`

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.VerificationSession) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, upsertSession,
		s.ID, s.Surname, s.OrderNumber, s.Postcode, toMillis(s.CreatedAt), toMillis(s.ExpiresAt),
	); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, trimSessions, r.capacity); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *sessionsRepo) GetSession(ctx context.Context, id string) (domain.VerificationSession, error) {
	var (
		s                    domain.VerificationSession
		createdAt, expiresAt int64
	)

	err := r.db.QueryRowContext(ctx, `
SELECT id, surname, order_number, postcode, created_at, expires_at
FROM verification_sessions WHERE id = ?`, id,
	).Scan(&s.ID, &s.Surname, &s.OrderNumber, &s.Postcode, &createdAt, &expiresAt)
	if err != nil {
		return domain.VerificationSession{}, mapNotFound(err)
	}

	s.CreatedAt = fromMillis(createdAt)
	s.ExpiresAt = fromMillis(expiresAt)
	if s.Expired(time.Now()) {
		return domain.VerificationSession{}, store.ErrNotFound
	}
	return s, nil
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM verification_sessions WHERE expires_at > 0 AND expires_at <= ?`, toMillis(now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *sessionsRepo) CountSessions(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM verification_sessions`).Scan(&n)
	return n, err
}
