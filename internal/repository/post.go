package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/samrambhak/community-server-go/internal/database"
	"github.com/samrambhak/community-server-go/internal/model"
)

type PostRepository interface {
	FindByID(ctx context.Context, id string) (*model.Post, error)
	HasLike(ctx context.Context, userID, postID string) (bool, error)
	// AddLike is idempotent; a concurrent duplicate insert is a no-op.
	AddLike(ctx context.Context, userID, postID string) error
	RemoveLike(ctx context.Context, userID, postID string) error
	SetReportCount(ctx context.Context, postID string, count int) error
	// Hide marks a visible post hidden and reports whether this call hid it.
	Hide(ctx context.Context, postID, reason string, at time.Time) (bool, error)
	WithTx(tx *sqlx.Tx) PostRepository
}

type postRepo struct {
	db database.DBTX
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepo{db: db}
}

func (r *postRepo) WithTx(tx *sqlx.Tx) PostRepository {
	return &postRepo{db: tx}
}

func (r *postRepo) FindByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := r.db.GetContext(ctx, &post, `
		SELECT id, user_id, content, report_count, is_hidden, hidden_at, hidden_reason, created_at
		FROM posts WHERE id = $1
	`, id)
	return HandleNotFound(&post, err)
}

func (r *postRepo) HasLike(ctx context.Context, userID, postID string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS(SELECT 1 FROM post_likes WHERE user_id = $1 AND post_id = $2)
	`, userID, postID)
	return exists, err
}

func (r *postRepo) AddLike(ctx context.Context, userID, postID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO post_likes (user_id, post_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, post_id) DO NOTHING
	`, userID, postID)
	return err
}

func (r *postRepo) RemoveLike(ctx context.Context, userID, postID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM post_likes WHERE user_id = $1 AND post_id = $2
	`, userID, postID)
	return err
}

func (r *postRepo) SetReportCount(ctx context.Context, postID string, count int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE posts SET report_count = $2 WHERE id = $1
	`, postID, count)
	return err
}

func (r *postRepo) Hide(ctx context.Context, postID, reason string, at time.Time) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE posts SET
			is_hidden = true,
			hidden_at = $3,
			hidden_reason = $2
		WHERE id = $1 AND is_hidden = false
	`, postID, reason, at)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
