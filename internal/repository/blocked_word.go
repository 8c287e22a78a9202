package repository

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/samrambhak/community-server-go/internal/database"
	"github.com/samrambhak/community-server-go/internal/model"
)

type BlockedWordRepository interface {
	List(ctx context.Context) ([]model.BlockedWord, error)
	// CreateMany inserts all words or none; a duplicate fails the whole batch.
	CreateMany(ctx context.Context, words []string, createdBy string) ([]model.BlockedWord, error)
	Update(ctx context.Context, id string, params model.UpdateBlockedWordParams) (*model.BlockedWord, error)
	Delete(ctx context.Context, id string) (bool, error)
	// ContainsBlocked reports whether content contains any active word,
	// case-insensitively.
	ContainsBlocked(ctx context.Context, content string) (bool, error)
}

type blockedWordRepo struct {
	db database.DBTX
}

func NewBlockedWordRepository(db *sqlx.DB) BlockedWordRepository {
	return &blockedWordRepo{db: db}
}

func (r *blockedWordRepo) List(ctx context.Context) ([]model.BlockedWord, error) {
	var words []model.BlockedWord
	err := r.db.SelectContext(ctx, &words, `
		SELECT id, word, is_active, created_by, created_at
		FROM blocked_words
		ORDER BY created_at DESC
	`)
	return words, err
}

func (r *blockedWordRepo) CreateMany(ctx context.Context, words []string, createdBy string) ([]model.BlockedWord, error) {
	var created []model.BlockedWord
	err := r.db.SelectContext(ctx, &created, `
		INSERT INTO blocked_words (word, created_by, is_active)
		SELECT w, $2, true FROM unnest($1::text[]) AS w
		RETURNING id, word, is_active, created_by, created_at
	`, pq.Array(words), createdBy)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *blockedWordRepo) Update(ctx context.Context, id string, params model.UpdateBlockedWordParams) (*model.BlockedWord, error) {
	var word model.BlockedWord
	err := r.db.GetContext(ctx, &word, `
		UPDATE blocked_words SET
			word = COALESCE($2, word),
			is_active = COALESCE($3, is_active)
		WHERE id = $1
		RETURNING id, word, is_active, created_by, created_at
	`, id, params.Word, params.IsActive)
	return HandleNotFound(&word, err)
}

func (r *blockedWordRepo) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM blocked_words WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *blockedWordRepo) ContainsBlocked(ctx context.Context, content string) (bool, error) {
	var found bool
	err := r.db.GetContext(ctx, &found, `
		SELECT EXISTS(
			SELECT 1 FROM blocked_words
			WHERE is_active = true
			AND position(word IN $1) > 0
		)
	`, strings.ToLower(content))
	return found, err
}
