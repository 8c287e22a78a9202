package service

import (
	"context"

	"github.com/rs/zerolog/log"

	apperrors "github.com/samrambhak/community-server-go/internal/errors"
	"github.com/samrambhak/community-server-go/internal/model"
	"github.com/samrambhak/community-server-go/internal/repository"
)

type BusinessService struct {
	businesses repository.BusinessRepository
}

func NewBusinessService(businesses repository.BusinessRepository) *BusinessService {
	return &BusinessService{businesses: businesses}
}

// List returns every business the user owns, whatever its approval status.
func (s *BusinessService) List(ctx context.Context, ownerID string) ([]model.BusinessWithFollowers, error) {
	businesses, err := s.businesses.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if businesses == nil {
		businesses = []model.BusinessWithFollowers{}
	}
	return businesses, nil
}

// owned loads the business and checks the caller owns it.
func (s *BusinessService) owned(ctx context.Context, userID, businessID string) (*model.Business, error) {
	if businessID == "" {
		return nil, apperrors.MissingRequired("Business ID")
	}
	business, err := s.businesses.FindByID(ctx, businessID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if business == nil {
		return nil, apperrors.NotFound("Business")
	}
	if business.OwnerID != userID {
		return nil, apperrors.Forbidden("You don't have permission to manage this business")
	}
	return business, nil
}

// Update applies the owner-editable fields; other keys are ignored.
func (s *BusinessService) Update(ctx context.Context, userID, businessID string, updates model.Updates) (*model.Business, error) {
	if _, err := s.owned(ctx, userID, businessID); err != nil {
		return nil, err
	}

	business, err := s.businesses.Update(ctx, businessID, repository.FilterUpdates(updates, repository.BusinessOwnerColumns), repository.BusinessOwnerColumns)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if business == nil {
		return nil, apperrors.NotFound("Business")
	}
	return business, nil
}

func (s *BusinessService) Delete(ctx context.Context, userID, businessID string) error {
	if _, err := s.owned(ctx, userID, businessID); err != nil {
		return err
	}
	if err := s.businesses.Delete(ctx, businessID); err != nil {
		return apperrors.Database(err)
	}
	log.Info().Str("businessId", businessID).Str("userId", userID).Msg("business deleted")
	return nil
}

// Follow returns true when the user already followed the business.
func (s *BusinessService) Follow(ctx context.Context, userID, businessID string) (bool, error) {
	if businessID == "" {
		return false, apperrors.MissingRequired("Business ID")
	}
	err := s.businesses.Follow(ctx, businessID, userID)
	if repository.IsUniqueViolation(err) {
		return true, nil
	}
	if err != nil {
		return false, apperrors.Database(err)
	}
	return false, nil
}

func (s *BusinessService) Unfollow(ctx context.Context, userID, businessID string) error {
	if businessID == "" {
		return apperrors.MissingRequired("Business ID")
	}
	if err := s.businesses.Unfollow(ctx, businessID, userID); err != nil {
		return apperrors.Database(err)
	}
	return nil
}
