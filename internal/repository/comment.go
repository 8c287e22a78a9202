package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/samrambhak/community-server-go/internal/database"
	"github.com/samrambhak/community-server-go/internal/model"
)

type CommentRepository interface {
	Create(ctx context.Context, params model.CreateCommentParams) (*model.Comment, error)
}

type commentRepo struct {
	db database.DBTX
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepo{db: db}
}

// commentRow flattens the comment and its author for a single scan.
type commentRow struct {
	model.Comment
	AuthorID       *string `db:"author_id"`
	AuthorFullName *string `db:"author_full_name"`
	AuthorUsername *string `db:"author_username"`
	AuthorAvatar   *string `db:"author_avatar_url"`
	AuthorIsOnline *bool   `db:"author_is_online"`
}

func (r *commentRepo) Create(ctx context.Context, params model.CreateCommentParams) (*model.Comment, error) {
	var row commentRow
	err := r.db.GetContext(ctx, &row, `
		WITH inserted AS (
			INSERT INTO comments (user_id, post_id, content)
			VALUES ($1, $2, $3)
			RETURNING id, user_id, post_id, content, created_at
		)
		SELECT i.id, i.user_id, i.post_id, i.content, i.created_at,
			p.id AS author_id,
			p.full_name AS author_full_name,
			p.username AS author_username,
			p.avatar_url AS author_avatar_url,
			p.is_online AS author_is_online
		FROM inserted i
		LEFT JOIN profiles p ON p.id = i.user_id
	`, params.UserID, params.PostID, params.Content)
	if err != nil {
		return nil, err
	}

	comment := row.Comment
	if row.AuthorID != nil {
		comment.Author = &model.ProfileSummary{
			ID:        *row.AuthorID,
			FullName:  row.AuthorFullName,
			Username:  row.AuthorUsername,
			AvatarURL: row.AuthorAvatar,
			IsOnline:  row.AuthorIsOnline != nil && *row.AuthorIsOnline,
		}
	}
	return &comment, nil
}
