package service

import (
	"context"
	"strings"

	apperrors "github.com/samrambhak/community-server-go/internal/errors"
	"github.com/samrambhak/community-server-go/internal/model"
	"github.com/samrambhak/community-server-go/internal/repository"
)

type SearchService struct {
	search repository.SearchRepository
	limit  int
}

func NewSearchService(search repository.SearchRepository, limit int) *SearchService {
	return &SearchService{search: search, limit: limit}
}

// Search runs substring matches over users, businesses and communities.
// A blank query returns empty results without touching the database.
func (s *SearchService) Search(ctx context.Context, query, category string) (*model.SearchResults, error) {
	results := &model.SearchResults{
		Users:       []model.UserSearchResult{},
		Businesses:  []model.BusinessSearchResult{},
		Communities: []model.CommunitySearchResult{},
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return results, nil
	}

	users, err := s.search.Users(ctx, query, s.limit)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	businesses, err := s.search.Businesses(ctx, query, category, s.limit)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	communities, err := s.search.Communities(ctx, query, s.limit)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	if users != nil {
		results.Users = users
	}
	if businesses != nil {
		results.Businesses = businesses
	}
	if communities != nil {
		results.Communities = communities
	}
	return results, nil
}
