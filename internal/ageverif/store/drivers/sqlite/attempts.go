package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/aussiebroadwan/ageverif/internal/ageverif/domain"
	"github.com/aussiebroadwan/ageverif/internal/ageverif/store"
)

type attemptsRepo struct {
	db *sql.DB
}

func (r *attemptsRepo) RecordAttempt(ctx context.Context, a domain.Attempt) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO verification_attempts
    (id, customer_gid, order_number, uid, outcome, source, token_fingerprint, sealed_token, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.CustomerGID, a.OrderNumber, a.UID, string(a.Outcome), a.Source,
		a.TokenFingerprint, a.SealedToken, toMillis(a.CreatedAt),
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

const selectAttempt = `
SELECT id, customer_gid, order_number, uid, outcome, source, token_fingerprint, sealed_token, created_at
FROM verification_attempts`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAttempt(row rowScanner) (domain.Attempt, error) {
	var (
		a         domain.Attempt
		outcome   string
		createdAt int64
	)
	if err := row.Scan(&a.ID, &a.CustomerGID, &a.OrderNumber, &a.UID, &outcome, &a.Source,
		&a.TokenFingerprint, &a.SealedToken, &createdAt); err != nil {
		return domain.Attempt{}, err
	}
	a.Outcome = domain.Outcome(outcome)
	a.CreatedAt = fromMillis(createdAt)
	return a, nil
}

func (r *attemptsRepo) GetAttempt(ctx context.Context, id string) (domain.Attempt, error) {
	a, err := scanAttempt(r.db.QueryRowContext(ctx, selectAttempt+` WHERE id = ?`, id))
	if err != nil {
		return domain.Attempt{}, mapNotFound(err)
	}
	return a, nil
}

func (r *attemptsRepo) ListAttemptsByCustomer(ctx context.Context, customerGID string, limit int) ([]domain.Attempt, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.QueryContext(ctx, selectAttempt+`
WHERE customer_gid = ?
ORDER BY created_at DESC, id DESC
LIMIT ?`, customerGID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Attempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) {
		// SQLITE_CONSTRAINT_PRIMARYKEY, SQLITE_CONSTRAINT_UNIQUE
		return coder.Code() == 1555 || coder.Code() == 2067
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
