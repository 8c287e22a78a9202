package service

import (
	"context"

	apperrors "github.com/samrambhak/community-server-go/internal/errors"
	"github.com/samrambhak/community-server-go/internal/repository"
)

type LikeService struct {
	posts repository.PostRepository
}

func NewLikeService(posts repository.PostRepository) *LikeService {
	return &LikeService{posts: posts}
}

// Toggle flips the user's like on the post and returns the new state.
func (s *LikeService) Toggle(ctx context.Context, userID, postID string) (bool, error) {
	if postID == "" {
		return false, apperrors.MissingRequired("Post ID")
	}

	liked, err := s.posts.HasLike(ctx, userID, postID)
	if err != nil {
		return false, apperrors.Database(err)
	}

	if liked {
		if err := s.posts.RemoveLike(ctx, userID, postID); err != nil {
			return false, apperrors.Database(err)
		}
		return false, nil
	}

	if err := s.posts.AddLike(ctx, userID, postID); err != nil {
		return false, apperrors.Database(err)
	}
	return true, nil
}
