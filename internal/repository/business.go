package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/samrambhak/community-server-go/internal/database"
	"github.com/samrambhak/community-server-go/internal/model"
)

// BusinessOwnerColumns are the columns an owner may change.
var BusinessOwnerColumns = map[string]bool{
	"name":            true,
	"description":     true,
	"category":        true,
	"location":        true,
	"logo_url":        true,
	"cover_image_url": true,
	"website_url":     true,
	"instagram_link":  true,
	"youtube_link":    true,
}

const businessColumns = `id, owner_id, name, description, category, location, logo_url,
	cover_image_url, website_url, instagram_link, youtube_link, approval_status, is_featured,
	created_at, updated_at`

type BusinessRepository interface {
	FindByID(ctx context.Context, id string) (*model.Business, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.BusinessWithFollowers, error)
	// Update applies the given columns; callers filter them first.
	Update(ctx context.Context, id string, updates model.Updates, allowed map[string]bool) (*model.Business, error)
	Delete(ctx context.Context, id string) error
	Follow(ctx context.Context, businessID, userID string) error
	Unfollow(ctx context.Context, businessID, userID string) error
}

type businessRepo struct {
	db database.DBTX
}

func NewBusinessRepository(db *sqlx.DB) BusinessRepository {
	return &businessRepo{db: db}
}

func (r *businessRepo) FindByID(ctx context.Context, id string) (*model.Business, error) {
	var business model.Business
	err := r.db.GetContext(ctx, &business, `SELECT `+businessColumns+` FROM businesses WHERE id = $1`, id)
	return HandleNotFound(&business, err)
}

func (r *businessRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.BusinessWithFollowers, error) {
	var businesses []model.BusinessWithFollowers
	err := r.db.SelectContext(ctx, &businesses, `
		SELECT b.id, b.owner_id, b.name, b.description, b.category, b.location, b.logo_url,
			b.cover_image_url, b.website_url, b.instagram_link, b.youtube_link,
			b.approval_status, b.is_featured, b.created_at, b.updated_at,
			(SELECT COUNT(*) FROM business_follows f WHERE f.business_id = b.id) AS follower_count
		FROM businesses b
		WHERE b.owner_id = $1
		ORDER BY b.created_at DESC
	`, ownerID)
	return businesses, err
}

func (r *businessRepo) Update(ctx context.Context, id string, updates model.Updates, allowed map[string]bool) (*model.Business, error) {
	sets, args := buildUpdate(updates, allowed, 1)
	if sets == "" {
		return r.FindByID(ctx, id)
	}

	query := fmt.Sprintf(`
		UPDATE businesses SET %s, updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, sets, businessColumns)

	var business model.Business
	err := r.db.GetContext(ctx, &business, query, append([]any{id}, args...)...)
	return HandleNotFound(&business, err)
}

func (r *businessRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM businesses WHERE id = $1`, id)
	return err
}

func (r *businessRepo) Follow(ctx context.Context, businessID, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO business_follows (business_id, user_id) VALUES ($1, $2)
	`, businessID, userID)
	return err
}

func (r *businessRepo) Unfollow(ctx context.Context, businessID, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM business_follows WHERE business_id = $1 AND user_id = $2
	`, businessID, userID)
	return err
}
