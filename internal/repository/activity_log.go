package repository

import (
	"context"
	"encoding/json"

	"github.com/jmoiron/sqlx"

	"github.com/samrambhak/community-server-go/internal/database"
	"github.com/samrambhak/community-server-go/internal/model"
)

type ActivityLogRepository interface {
	Create(ctx context.Context, params model.CreateActivityLogParams) error
	WithTx(tx *sqlx.Tx) ActivityLogRepository
}

type activityLogRepo struct {
	db database.DBTX
}

func NewActivityLogRepository(db *sqlx.DB) ActivityLogRepository {
	return &activityLogRepo{db: db}
}

func (r *activityLogRepo) WithTx(tx *sqlx.Tx) ActivityLogRepository {
	return &activityLogRepo{db: tx}
}

func (r *activityLogRepo) Create(ctx context.Context, params model.CreateActivityLogParams) error {
	var details []byte
	if params.Details != nil {
		var err error
		details, err = json.Marshal(params.Details)
		if err != nil {
			return err
		}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO admin_activity_logs (admin_id, action, target_type, target_id, details)
		VALUES ($1, $2, $3, $4, $5)
	`, params.AdminID, params.Action, params.TargetType, params.TargetID, nullableJSON(details))
	return err
}

func nullableJSON(b []byte) any {
	if b == nil {
		return nil
	}
	return string(b)
}
