package service

import (
	"context"

	"github.com/samrambhak/community-server-go/internal/audit"
	apperrors "github.com/samrambhak/community-server-go/internal/errors"
	"github.com/samrambhak/community-server-go/internal/model"
	"github.com/samrambhak/community-server-go/internal/repository"
	"github.com/samrambhak/community-server-go/internal/util"
)

// BlockedWordService manages the moderation word list. Callers are gated
// to moderators at the route level.
type BlockedWordService struct {
	words repository.BlockedWordRepository
}

func NewBlockedWordService(words repository.BlockedWordRepository) *BlockedWordService {
	return &BlockedWordService{words: words}
}

func (s *BlockedWordService) List(ctx context.Context) ([]model.BlockedWord, error) {
	words, err := s.words.List(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if words == nil {
		words = []model.BlockedWord{}
	}
	return words, nil
}

// Add normalizes and inserts the words as one batch.
func (s *BlockedWordService) Add(ctx context.Context, adminID string, words []string) ([]model.BlockedWord, error) {
	normalized := make([]string, 0, len(words))
	for _, w := range words {
		if n := util.NormalizeWord(w); n != "" {
			normalized = append(normalized, n)
		}
	}
	if len(normalized) == 0 {
		return nil, apperrors.ValidationError("Words array required")
	}

	created, err := s.words.CreateMany(ctx, normalized, adminID)
	if repository.IsUniqueViolation(err) {
		return nil, apperrors.Conflict("One or more words already exist")
	}
	if err != nil {
		return nil, apperrors.Database(err)
	}

	audit.Log(ctx, audit.Event{
		Type:    audit.EventBlockedWordsChanged,
		UserID:  adminID,
		Details: map[string]interface{}{"op": "add", "count": len(created)},
	})
	return created, nil
}

func (s *BlockedWordService) Update(ctx context.Context, adminID, id string, params model.UpdateBlockedWordParams) (*model.BlockedWord, error) {
	if id == "" {
		return nil, apperrors.ValidationError("Word ID required")
	}
	if params.Word != nil {
		w := util.NormalizeWord(*params.Word)
		if w == "" {
			return nil, apperrors.ValidationError("Word cannot be empty")
		}
		params.Word = &w
	}

	word, err := s.words.Update(ctx, id, params)
	if repository.IsUniqueViolation(err) {
		return nil, apperrors.Conflict("One or more words already exist")
	}
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if word == nil {
		return nil, apperrors.NotFound("Blocked word")
	}

	audit.Log(ctx, audit.Event{
		Type:     audit.EventBlockedWordsChanged,
		UserID:   adminID,
		TargetID: id,
		Details:  map[string]interface{}{"op": "update"},
	})
	return word, nil
}

func (s *BlockedWordService) Delete(ctx context.Context, adminID, id string) error {
	if id == "" {
		return apperrors.ValidationError("Word ID required")
	}
	deleted, err := s.words.Delete(ctx, id)
	if err != nil {
		return apperrors.Database(err)
	}
	if !deleted {
		return apperrors.NotFound("Blocked word")
	}

	audit.Log(ctx, audit.Event{
		Type:     audit.EventBlockedWordsChanged,
		UserID:   adminID,
		TargetID: id,
		Details:  map[string]interface{}{"op": "delete"},
	})
	return nil
}
