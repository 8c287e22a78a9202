package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/samrambhak/community-server-go/internal/audit"
	"github.com/samrambhak/community-server-go/internal/database"
	apperrors "github.com/samrambhak/community-server-go/internal/errors"
	"github.com/samrambhak/community-server-go/internal/metrics"
	"github.com/samrambhak/community-server-go/internal/model"
	"github.com/samrambhak/community-server-go/internal/repository"
)

type ReportPostParams struct {
	PostID      string  `json:"post_id" validate:"required"`
	Reason      string  `json:"reason" validate:"required"`
	Description *string `json:"description"`
}

type ReportPostResult struct {
	ReportCount int  `json:"report_count"`
	Hidden      bool `json:"hidden"`
}

type ReportService struct {
	db        database.Transactor
	reports   repository.ReportRepository
	posts     repository.PostRepository
	threshold int
	now       nowFunc
}

func NewReportService(
	db database.Transactor,
	reports repository.ReportRepository,
	posts repository.PostRepository,
	threshold int,
) *ReportService {
	return &ReportService{
		db:        db,
		reports:   reports,
		posts:     posts,
		threshold: threshold,
		now:       time.Now,
	}
}

func (s *ReportService) hiddenReason() string {
	return fmt.Sprintf("Auto-hidden due to %d+ user reports", s.threshold)
}

// ReportPost files a report, recounts the post's reports and hides the post
// once the count reaches the threshold. The steps share one transaction so
// the stored count always matches the report rows.
func (s *ReportService) ReportPost(ctx context.Context, userID string, params ReportPostParams) (*ReportPostResult, error) {
	if params.PostID == "" || params.Reason == "" {
		return nil, apperrors.ValidationError("Post ID and reason are required")
	}

	already, err := s.reports.ExistsForReporter(ctx, userID, params.PostID, model.ReportedTypePost)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if already {
		return nil, apperrors.Conflict("You have already reported this post")
	}

	var result ReportPostResult
	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		reports := s.reports.WithTx(tx)
		posts := s.posts.WithTx(tx)

		reporter := userID
		if _, err := reports.Create(ctx, model.CreateReportParams{
			ReporterID:   &reporter,
			ReportedID:   params.PostID,
			ReportedType: model.ReportedTypePost,
			Reason:       params.Reason,
			Description:  params.Description,
		}); err != nil {
			return err
		}

		count, err := reports.Count(ctx, params.PostID, model.ReportedTypePost)
		if err != nil {
			return err
		}
		result.ReportCount = count

		if err := posts.SetReportCount(ctx, params.PostID, count); err != nil {
			return err
		}

		if count >= s.threshold {
			hidden, err := posts.Hide(ctx, params.PostID, s.hiddenReason(), s.now())
			if err != nil {
				return err
			}
			result.Hidden = hidden
		}
		return nil
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("You have already reported this post")
		}
		return nil, apperrors.Database(err)
	}

	if result.Hidden {
		metrics.PostsAutoHiddenTotal.Inc()
		audit.Log(ctx, audit.Event{
			Type:     audit.EventContentAutoHidden,
			TargetID: params.PostID,
			Details:  map[string]interface{}{"report_count": result.ReportCount},
		})
		log.Info().Str("postId", params.PostID).Int("reports", result.ReportCount).Msg("post auto-hidden")
	}

	return &result, nil
}
