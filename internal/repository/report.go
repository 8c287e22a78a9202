package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/samrambhak/community-server-go/internal/database"
	"github.com/samrambhak/community-server-go/internal/model"
)

type ReportRepository interface {
	ExistsForReporter(ctx context.Context, reporterID, reportedID string, reportedType model.ReportedType) (bool, error)
	Create(ctx context.Context, params model.CreateReportParams) (*model.Report, error)
	// Count recounts every report row for the target.
	Count(ctx context.Context, reportedID string, reportedType model.ReportedType) (int, error)
	WithTx(tx *sqlx.Tx) ReportRepository
}

type reportRepo struct {
	db database.DBTX
}

func NewReportRepository(db *sqlx.DB) ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) WithTx(tx *sqlx.Tx) ReportRepository {
	return &reportRepo{db: tx}
}

func (r *reportRepo) ExistsForReporter(ctx context.Context, reporterID, reportedID string, reportedType model.ReportedType) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS(
			SELECT 1 FROM reports
			WHERE reporter_id = $1 AND reported_id = $2 AND reported_type = $3
		)
	`, reporterID, reportedID, reportedType)
	return exists, err
}

func (r *reportRepo) Create(ctx context.Context, params model.CreateReportParams) (*model.Report, error) {
	var report model.Report
	err := r.db.GetContext(ctx, &report, `
		INSERT INTO reports (reporter_id, reported_id, reported_type, reason, description, status)
		VALUES ($1, $2, $3, $4, $5, 'pending')
		RETURNING id, reporter_id, reported_id, reported_type, reason, description, status, created_at
	`, params.ReporterID, params.ReportedID, params.ReportedType, params.Reason, params.Description)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepo) Count(ctx context.Context, reportedID string, reportedType model.ReportedType) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM reports WHERE reported_id = $1 AND reported_type = $2
	`, reportedID, reportedType)
	return count, err
}
