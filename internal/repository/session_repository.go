package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// SessionRepo tracks the refresh tokens that keep desk operators signed
// in. A row is addressed by the SHA-256 of the raw token; the raw value is
// only ever seen by the client.
type SessionRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db, now: func() time.Time { return time.Now().UTC() }}
}

const liveSession = "token_hash = ? AND revoked_at IS NULL AND expires_at > ?"

// Open records a new session for userID.
func (r *SessionRepo) Open(ctx context.Context, userID uint64, tokenHash string, expires time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?, ?, ?)",
		userID, tokenHash, expires)
	return err
}

// Owner returns the user behind a live session. Unknown, revoked and
// expired hashes all report ErrNotFound.
func (r *SessionRepo) Owner(ctx context.Context, tokenHash string) (uint64, error) {
	var userID uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT user_id FROM refresh_tokens WHERE "+liveSession,
		tokenHash, r.now()).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return userID, err
}

// Rotate retires the session behind oldHash and opens one under newHash
// for the same user, in one transaction. A refresh token replayed after
// rotation finds no live row and gets ErrNotFound.
func (r *SessionRepo) Rotate(ctx context.Context, oldHash, newHash string, expires time.Time) (uint64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var userID uint64
	err = tx.QueryRowContext(ctx,
		"SELECT user_id FROM refresh_tokens WHERE "+liveSession+" FOR UPDATE",
		oldHash, r.now()).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at = ? WHERE token_hash = ?",
		r.now(), oldHash); err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?, ?, ?)",
		userID, newHash, expires); err != nil {
		return 0, err
	}
	return userID, tx.Commit()
}

// Close ends one live session belonging to userID, or returns
// ErrNotFound when userID holds no such session.
func (r *SessionRepo) Close(ctx context.Context, userID uint64, tokenHash string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at = ? WHERE user_id = ? AND "+liveSession,
		r.now(), userID, tokenHash, r.now())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CloseAll ends every live session of userID and reports how many there were.
func (r *SessionRepo) CloseAll(ctx context.Context, userID uint64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at = ? WHERE user_id = ? AND revoked_at IS NULL",
		r.now(), userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
