package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/samrambhak/community-server-go/internal/database"
	"github.com/samrambhak/community-server-go/internal/model"
)

type DeletionRequestRepository interface {
	FindPendingByUserID(ctx context.Context, userID string) (*model.DeletionRequest, error)
	Create(ctx context.Context, userID string, requestedAt, scheduledAt time.Time) (*model.DeletionRequest, error)
	Cancel(ctx context.Context, id string) error
	ListPending(ctx context.Context) ([]model.PendingDeletion, error)
	// ListDue returns pending requests whose grace period has elapsed.
	ListDue(ctx context.Context, now time.Time) ([]model.DeletionRequest, error)
	MarkCompleted(ctx context.Context, id string) error
	WithTx(tx *sqlx.Tx) DeletionRequestRepository
}

type deletionRequestRepo struct {
	db database.DBTX
}

func NewDeletionRequestRepository(db *sqlx.DB) DeletionRequestRepository {
	return &deletionRequestRepo{db: db}
}

func (r *deletionRequestRepo) WithTx(tx *sqlx.Tx) DeletionRequestRepository {
	return &deletionRequestRepo{db: tx}
}

func (r *deletionRequestRepo) FindPendingByUserID(ctx context.Context, userID string) (*model.DeletionRequest, error) {
	var req model.DeletionRequest
	err := r.db.GetContext(ctx, &req, `
		SELECT id, user_id, requested_at, scheduled_deletion_at, status, cancelled_at, deleted_at
		FROM account_deletion_requests
		WHERE user_id = $1 AND status = 'pending'
		ORDER BY requested_at DESC
		LIMIT 1
	`, userID)
	return HandleNotFound(&req, err)
}

func (r *deletionRequestRepo) Create(ctx context.Context, userID string, requestedAt, scheduledAt time.Time) (*model.DeletionRequest, error) {
	var req model.DeletionRequest
	err := r.db.GetContext(ctx, &req, `
		INSERT INTO account_deletion_requests (user_id, requested_at, scheduled_deletion_at, status)
		VALUES ($1, $2, $3, 'pending')
		RETURNING id, user_id, requested_at, scheduled_deletion_at, status, cancelled_at, deleted_at
	`, userID, requestedAt, scheduledAt)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *deletionRequestRepo) Cancel(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE account_deletion_requests SET
			status = 'cancelled',
			cancelled_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`, id)
	return err
}

func (r *deletionRequestRepo) ListPending(ctx context.Context) ([]model.PendingDeletion, error) {
	var reqs []model.PendingDeletion
	err := r.db.SelectContext(ctx, &reqs, `
		SELECT r.id, r.user_id, r.requested_at, r.scheduled_deletion_at, r.status,
			r.cancelled_at, r.deleted_at,
			COALESCE(p.id, r.user_id) AS "profiles.id",
			p.full_name AS "profiles.full_name",
			p.username AS "profiles.username",
			p.avatar_url AS "profiles.avatar_url",
			p.email AS "profiles.email",
			p.mobile_number AS "profiles.mobile_number"
		FROM account_deletion_requests r
		LEFT JOIN profiles p ON p.id = r.user_id
		WHERE r.status = 'pending'
		ORDER BY r.scheduled_deletion_at ASC
	`)
	return reqs, err
}

func (r *deletionRequestRepo) ListDue(ctx context.Context, now time.Time) ([]model.DeletionRequest, error) {
	var reqs []model.DeletionRequest
	err := r.db.SelectContext(ctx, &reqs, `
		SELECT id, user_id, requested_at, scheduled_deletion_at, status, cancelled_at, deleted_at
		FROM account_deletion_requests
		WHERE status = 'pending' AND scheduled_deletion_at <= $1
		ORDER BY scheduled_deletion_at ASC
	`, now)
	return reqs, err
}

func (r *deletionRequestRepo) MarkCompleted(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE account_deletion_requests SET
			status = 'completed',
			deleted_at = NOW()
		WHERE id = $1
	`, id)
	return err
}
