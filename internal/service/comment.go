package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	apperrors "github.com/samrambhak/community-server-go/internal/errors"
	"github.com/samrambhak/community-server-go/internal/metrics"
	"github.com/samrambhak/community-server-go/internal/model"
	"github.com/samrambhak/community-server-go/internal/repository"
)

const (
	autoFlagReason      = "Blocked words detected"
	autoFlagDescription = "This comment was automatically flagged for containing blocked/monitored words."
)

type CommentService struct {
	comments     repository.CommentRepository
	reports      repository.ReportRepository
	blockedWords repository.BlockedWordRepository
}

func NewCommentService(
	comments repository.CommentRepository,
	reports repository.ReportRepository,
	blockedWords repository.BlockedWordRepository,
) *CommentService {
	return &CommentService{
		comments:     comments,
		reports:      reports,
		blockedWords: blockedWords,
	}
}

type CreateCommentResult struct {
	Comment *model.Comment `json:"comment"`
	Flagged bool           `json:"flagged"`
}

// Create stores the comment. When the content contains an active blocked
// word a system report is filed against it; moderation failures never fail
// the comment itself.
func (s *CommentService) Create(ctx context.Context, userID, postID, content string) (*CreateCommentResult, error) {
	content = strings.TrimSpace(content)
	if postID == "" || content == "" {
		return nil, apperrors.ValidationError("Post ID and content are required")
	}

	comment, err := s.comments.Create(ctx, model.CreateCommentParams{
		UserID:  userID,
		PostID:  postID,
		Content: content,
	})
	if err != nil {
		return nil, apperrors.Database(err)
	}

	return &CreateCommentResult{
		Comment: comment,
		Flagged: s.autoFlag(ctx, comment),
	}, nil
}

func (s *CommentService) autoFlag(ctx context.Context, comment *model.Comment) bool {
	blocked, err := s.blockedWords.ContainsBlocked(ctx, comment.Content)
	if err != nil {
		log.Error().Err(err).Str("commentId", comment.ID).Msg("blocked word check failed")
		return false
	}
	if !blocked {
		return false
	}

	description := autoFlagDescription
	if _, err := s.reports.Create(ctx, model.CreateReportParams{
		ReportedID:   comment.ID,
		ReportedType: model.ReportedTypeComment,
		Reason:       autoFlagReason,
		Description:  &description,
	}); err != nil {
		log.Error().Err(err).Str("commentId", comment.ID).Msg("failed to file automatic report")
		return false
	}

	metrics.CommentsAutoFlaggedTotal.Inc()
	log.Info().Str("commentId", comment.ID).Msg("comment flagged for blocked words")
	return true
}
