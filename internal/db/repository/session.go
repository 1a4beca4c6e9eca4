// Package repository implements SQLite persistence for sessions, the admin
// roster, and interview feedback.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"talentboard/internal/domain"
)

// SessionRepo persists serialized session payloads. The payload column is
// opaque JSON owned by the session store; this repo never interprets it, so
// a malformed payload survives to be detected (and discarded) on restore.
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo creates a SessionRepo on the given (write) pool.
func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Save upserts a session payload under the given ID.
func (r *SessionRepo) Save(ctx context.Context, id string, payload []byte, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, payload, expires_at)
		VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET payload = excluded.payload, expires_at = excluded.expires_at`,
		id, string(payload), expiresAt.UTC())
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// GetPayload returns the stored payload for id. Absent or expired sessions
// yield a NotFoundError.
func (r *SessionRepo) GetPayload(ctx context.Context, id string) ([]byte, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM sessions WHERE id = ? AND expires_at > ?`,
		id, time.Now().UTC()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("session %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return []byte(payload), nil
}

// ListActive returns every unexpired payload keyed by session ID, used to
// rehydrate the in-memory store at startup.
func (r *SessionRepo) ListActive(ctx context.Context) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, payload FROM sessions WHERE expires_at > ?`, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	out := make(map[string][]byte)
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out[id] = []byte(payload)
	}
	return out, rows.Err()
}

// Delete removes a session. Deleting a missing session is a no-op.
func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired prunes expired rows and reports how many were removed.
func (r *SessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
