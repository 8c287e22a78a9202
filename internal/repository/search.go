package repository

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/samrambhak/community-server-go/internal/database"
	"github.com/samrambhak/community-server-go/internal/model"
)

type SearchRepository interface {
	Users(ctx context.Context, query string, limit int) ([]model.UserSearchResult, error)
	Businesses(ctx context.Context, query, category string, limit int) ([]model.BusinessSearchResult, error)
	Communities(ctx context.Context, query string, limit int) ([]model.CommunitySearchResult, error)
}

type searchRepo struct {
	db database.DBTX
}

func NewSearchRepository(db *sqlx.DB) SearchRepository {
	return &searchRepo{db: db}
}

// likePattern escapes LIKE metacharacters and wraps the term for substring matching.
func likePattern(query string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(query) + "%"
}

func (r *searchRepo) Users(ctx context.Context, query string, limit int) ([]model.UserSearchResult, error) {
	var users []model.UserSearchResult
	err := r.db.SelectContext(ctx, &users, `
		SELECT id, full_name, username, avatar_url, bio, location
		FROM profiles
		WHERE full_name ILIKE $1 OR username ILIKE $1 OR bio ILIKE $1
		LIMIT $2
	`, likePattern(query), limit)
	return users, err
}

func (r *searchRepo) Businesses(ctx context.Context, query, category string, limit int) ([]model.BusinessSearchResult, error) {
	var businesses []model.BusinessSearchResult
	err := r.db.SelectContext(ctx, &businesses, `
		SELECT id, name, description, logo_url, category, location
		FROM businesses
		WHERE (name ILIKE $1 OR description ILIKE $1)
		AND ($2 = '' OR category = $2)
		LIMIT $3
	`, likePattern(query), category, limit)
	return businesses, err
}

func (r *searchRepo) Communities(ctx context.Context, query string, limit int) ([]model.CommunitySearchResult, error) {
	var communities []model.CommunitySearchResult
	err := r.db.SelectContext(ctx, &communities, `
		SELECT id, name, description, cover_image_url
		FROM communities
		WHERE name ILIKE $1 OR description ILIKE $1
		LIMIT $2
	`, likePattern(query), limit)
	return communities, err
}
