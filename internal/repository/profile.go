package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/samrambhak/community-server-go/internal/database"
	"github.com/samrambhak/community-server-go/internal/model"
)

// ProfileUpdatableColumns are the columns a user may change on their own profile.
var ProfileUpdatableColumns = map[string]bool{
	"full_name":     true,
	"username":      true,
	"avatar_url":    true,
	"bio":           true,
	"location":      true,
	"is_online":     true,
	"last_seen":     true,
	"show_email":    true,
	"show_mobile":   true,
	"show_location": true,
}

const profileColumns = `id, full_name, username, avatar_url, bio, location, email, mobile_number,
	is_online, last_seen, show_email, show_mobile, show_location, is_verified, email_verified,
	email_verification_token, email_verification_sent_at, created_at, updated_at`

type ProfileRepository interface {
	FindByID(ctx context.Context, id string) (*model.Profile, error)
	FindSummary(ctx context.Context, id string) (*model.ProfileSummary, error)
	FindByVerificationToken(ctx context.Context, token string) (*model.Profile, error)
	// Update applies whitelisted fields and returns the updated profile, or nil
	// when no profile has the id.
	Update(ctx context.Context, id string, updates model.Updates) (*model.Profile, error)
	MarkEmailVerified(ctx context.Context, id string) error
	WithTx(tx *sqlx.Tx) ProfileRepository
}

type profileRepo struct {
	db database.DBTX
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) WithTx(tx *sqlx.Tx) ProfileRepository {
	return &profileRepo{db: tx}
}

func (r *profileRepo) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.GetContext(ctx, &profile, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	return HandleNotFound(&profile, err)
}

func (r *profileRepo) FindSummary(ctx context.Context, id string) (*model.ProfileSummary, error) {
	var summary model.ProfileSummary
	err := r.db.GetContext(ctx, &summary, `
		SELECT id, full_name, username, avatar_url, is_online
		FROM profiles WHERE id = $1
	`, id)
	return HandleNotFound(&summary, err)
}

func (r *profileRepo) FindByVerificationToken(ctx context.Context, token string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.GetContext(ctx, &profile, `
		SELECT `+profileColumns+` FROM profiles WHERE email_verification_token = $1
	`, token)
	return HandleNotFound(&profile, err)
}

func (r *profileRepo) Update(ctx context.Context, id string, updates model.Updates) (*model.Profile, error) {
	sets, args := buildUpdate(updates, ProfileUpdatableColumns, 1)
	if sets == "" {
		return r.FindByID(ctx, id)
	}

	query := fmt.Sprintf(`
		UPDATE profiles SET %s, updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, sets, profileColumns)

	var profile model.Profile
	err := r.db.GetContext(ctx, &profile, query, append([]any{id}, args...)...)
	return HandleNotFound(&profile, err)
}

func (r *profileRepo) MarkEmailVerified(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE profiles SET
			email_verified = true,
			is_verified = true,
			email_verification_token = NULL,
			updated_at = NOW()
		WHERE id = $1
	`, id)
	return err
}
