package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/samrambhak/community-server-go/internal/database"
	"github.com/samrambhak/community-server-go/internal/model"
)

type SessionRepository interface {
	// FindActiveByTokenHash returns the session only while it is active and unexpired.
	FindActiveByTokenHash(ctx context.Context, tokenHash string) (*model.Session, error)
	Create(ctx context.Context, params model.CreateSessionParams) (*model.Session, error)
	Extend(ctx context.Context, tokenHash string, expiresAt time.Time) (bool, error)
	Deactivate(ctx context.Context, tokenHash string) error
	DeleteExpired(ctx context.Context) (int64, error)
	// WithTx returns a new repository that uses the given transaction
	WithTx(tx *sqlx.Tx) SessionRepository
}

type sessionRepo struct {
	db database.DBTX
}

func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) WithTx(tx *sqlx.Tx) SessionRepository {
	return &sessionRepo{db: tx}
}

func (r *sessionRepo) FindActiveByTokenHash(ctx context.Context, tokenHash string) (*model.Session, error) {
	var session model.Session
	err := r.db.GetContext(ctx, &session, `
		SELECT id, user_id, session_token_hash, is_active, expires_at, last_refreshed_at, created_at
		FROM user_sessions
		WHERE session_token_hash = $1
		AND is_active = true
		AND expires_at > NOW()
	`, tokenHash)
	return HandleNotFound(&session, err)
}

func (r *sessionRepo) Create(ctx context.Context, params model.CreateSessionParams) (*model.Session, error) {
	var session model.Session
	err := r.db.GetContext(ctx, &session, `
		INSERT INTO user_sessions (user_id, session_token_hash, expires_at, is_active)
		VALUES ($1, $2, $3, true)
		RETURNING id, user_id, session_token_hash, is_active, expires_at, last_refreshed_at, created_at
	`, params.UserID, params.SessionTokenHash, params.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) Extend(ctx context.Context, tokenHash string, expiresAt time.Time) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE user_sessions SET
			expires_at = $2,
			last_refreshed_at = NOW()
		WHERE session_token_hash = $1
		AND is_active = true
		AND expires_at > NOW()
	`, tokenHash, expiresAt)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *sessionRepo) Deactivate(ctx context.Context, tokenHash string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE user_sessions SET is_active = false
		WHERE session_token_hash = $1
	`, tokenHash)
	return err
}

func (r *sessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM user_sessions
		WHERE expires_at < NOW() OR is_active = false
	`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
