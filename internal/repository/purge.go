package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/samrambhak/community-server-go/internal/database"
)

// purgeSteps lists the account purge statements in dependency order. Each
// takes the user id as $1. The deletion request is completed and the profile
// removed separately so callers control those rows.
var purgeSteps = []struct {
	table string
	query string
}{
	{"messages", `DELETE FROM messages WHERE sender_id = $1`},
	{"conversations", `DELETE FROM conversations WHERE participant_one = $1 OR participant_two = $1`},
	{"post_likes", `DELETE FROM post_likes WHERE user_id = $1`},
	{"comments", `DELETE FROM comments WHERE user_id = $1`},
	{"posts", `DELETE FROM posts WHERE user_id = $1`},
	{"follows", `DELETE FROM follows WHERE follower_id = $1 OR following_id = $1`},
	{"business_follows", `DELETE FROM business_follows WHERE user_id = $1`},
	{"community_members", `DELETE FROM community_members WHERE user_id = $1`},
	{"community_discussions", `DELETE FROM community_discussions WHERE user_id = $1`},
	{"job_applications", `DELETE FROM job_applications WHERE applicant_id = $1`},
	{"jobs", `DELETE FROM jobs WHERE creator_id = $1`},
	{"businesses", `DELETE FROM businesses WHERE owner_id = $1`},
	{"communities", `DELETE FROM communities WHERE created_by = $1`},
	{"notifications", `DELETE FROM notifications WHERE user_id = $1`},
	{"user_skills", `DELETE FROM user_skills WHERE user_id = $1`},
	{"user_sessions", `DELETE FROM user_sessions WHERE user_id = $1`},
	{"user_credentials", `DELETE FROM user_credentials WHERE id = $1`},
}

// PurgeTables returns the tables purged by PurgeUserData, in order.
func PurgeTables() []string {
	tables := make([]string, len(purgeSteps))
	for i, step := range purgeSteps {
		tables[i] = step.table
	}
	return tables
}

type AccountPurgeRepository interface {
	// PurgeUserData removes everything the user owns except the profile row.
	PurgeUserData(ctx context.Context, userID string) error
	DeleteProfile(ctx context.Context, userID string) error
	WithTx(tx *sqlx.Tx) AccountPurgeRepository
}

type accountPurgeRepo struct {
	db database.DBTX
}

func NewAccountPurgeRepository(db *sqlx.DB) AccountPurgeRepository {
	return &accountPurgeRepo{db: db}
}

func (r *accountPurgeRepo) WithTx(tx *sqlx.Tx) AccountPurgeRepository {
	return &accountPurgeRepo{db: tx}
}

func (r *accountPurgeRepo) PurgeUserData(ctx context.Context, userID string) error {
	for _, step := range purgeSteps {
		if _, err := r.db.ExecContext(ctx, step.query, userID); err != nil {
			return fmt.Errorf("purge %s: %w", step.table, err)
		}
	}
	return nil
}

func (r *accountPurgeRepo) DeleteProfile(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, userID)
	return err
}
