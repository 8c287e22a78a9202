package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/samrambhak/community-server-go/internal/database"
	"github.com/samrambhak/community-server-go/internal/model"
)

// Columns an administrator may change, per table.
var (
	AdminBusinessColumns = map[string]bool{
		"name": true, "description": true, "category": true, "location": true,
		"approval_status": true, "is_featured": true,
	}
	AdminCommunityColumns = map[string]bool{
		"name": true, "description": true, "cover_image_url": true, "approval_status": true,
	}
	AdminJobColumns = map[string]bool{
		"title": true, "description": true, "location": true, "approval_status": true,
	}
)

type AdminDataRepository interface {
	ListBusinesses(ctx context.Context) ([]model.BusinessWithOwner, error)
	ListCommunities(ctx context.Context) ([]model.CommunityWithMembers, error)
	ListJobs(ctx context.Context) ([]model.JobWithApplications, error)
	UpdateCommunity(ctx context.Context, id string, updates model.Updates) (bool, error)
	UpdateJob(ctx context.Context, id string, updates model.Updates) (bool, error)
	Stats(ctx context.Context, topCategories int) (*model.AdminStats, error)
}

type adminDataRepo struct {
	db database.DBTX
}

func NewAdminDataRepository(db *sqlx.DB) AdminDataRepository {
	return &adminDataRepo{db: db}
}

func (r *adminDataRepo) ListBusinesses(ctx context.Context) ([]model.BusinessWithOwner, error) {
	var businesses []model.BusinessWithOwner
	err := r.db.SelectContext(ctx, &businesses, `
		SELECT b.id, b.owner_id, b.name, b.description, b.category, b.location, b.logo_url,
			b.cover_image_url, b.website_url, b.instagram_link, b.youtube_link,
			b.approval_status, b.is_featured, b.created_at, b.updated_at,
			p.full_name AS "owner.full_name",
			p.username AS "owner.username"
		FROM businesses b
		LEFT JOIN profiles p ON p.id = b.owner_id
		ORDER BY b.created_at DESC
	`)
	return businesses, err
}

func (r *adminDataRepo) ListCommunities(ctx context.Context) ([]model.CommunityWithMembers, error) {
	var communities []model.CommunityWithMembers
	err := r.db.SelectContext(ctx, &communities, `
		SELECT c.id, c.created_by, c.name, c.description, c.cover_image_url,
			c.approval_status, c.created_at,
			p.full_name AS "creator.full_name",
			p.username AS "creator.username",
			(SELECT COUNT(*) FROM community_members m WHERE m.community_id = c.id) AS member_count
		FROM communities c
		LEFT JOIN profiles p ON p.id = c.created_by
		ORDER BY c.created_at DESC
	`)
	return communities, err
}

func (r *adminDataRepo) ListJobs(ctx context.Context) ([]model.JobWithApplications, error) {
	var jobs []model.JobWithApplications
	err := r.db.SelectContext(ctx, &jobs, `
		SELECT j.id, j.creator_id, j.title, j.description, j.location,
			j.approval_status, j.created_at,
			p.full_name AS "creator.full_name",
			p.username AS "creator.username",
			(SELECT COUNT(*) FROM job_applications a WHERE a.job_id = j.id) AS application_count
		FROM jobs j
		LEFT JOIN profiles p ON p.id = j.creator_id
		ORDER BY j.created_at DESC
	`)
	return jobs, err
}

func (r *adminDataRepo) UpdateCommunity(ctx context.Context, id string, updates model.Updates) (bool, error) {
	return r.update(ctx, "communities", id, updates, AdminCommunityColumns)
}

func (r *adminDataRepo) UpdateJob(ctx context.Context, id string, updates model.Updates) (bool, error) {
	return r.update(ctx, "jobs", id, updates, AdminJobColumns)
}

// update is only called with the fixed table names above.
func (r *adminDataRepo) update(ctx context.Context, table, id string, updates model.Updates, allowed map[string]bool) (bool, error) {
	sets, args := buildUpdate(updates, allowed, 1)
	if sets == "" {
		return false, nil
	}
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $1`, table, sets)
	result, err := r.db.ExecContext(ctx, query, append([]any{id}, args...)...)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *adminDataRepo) Stats(ctx context.Context, topCategories int) (*model.AdminStats, error) {
	var stats model.AdminStats

	err := r.db.GetContext(ctx, &stats.PendingApprovals, `
		SELECT
			(SELECT COUNT(*) FROM communities WHERE approval_status = 'pending') AS communities,
			(SELECT COUNT(*) FROM businesses WHERE approval_status = 'pending') AS businesses,
			(SELECT COUNT(*) FROM jobs WHERE approval_status = 'pending') AS jobs
	`)
	if err != nil {
		return nil, fmt.Errorf("pending approvals: %w", err)
	}

	err = r.db.SelectContext(ctx, &stats.TopCategories, `
		SELECT category, COUNT(*) AS count
		FROM businesses
		GROUP BY category
		ORDER BY count DESC, category ASC
		LIMIT $1
	`, topCategories)
	if err != nil {
		return nil, fmt.Errorf("top categories: %w", err)
	}

	err = r.db.SelectContext(ctx, &stats.WeeklyPosts, `
		SELECT EXTRACT(DOW FROM created_at)::int AS weekday, COUNT(*) AS posts
		FROM posts
		WHERE created_at >= NOW() - INTERVAL '7 days'
		GROUP BY weekday
		ORDER BY weekday
	`)
	if err != nil {
		return nil, fmt.Errorf("weekly posts: %w", err)
	}

	return &stats, nil
}
