package service

import (
	"context"
	"time"

	apperrors "github.com/samrambhak/community-server-go/internal/errors"
	"github.com/samrambhak/community-server-go/internal/model"
	"github.com/samrambhak/community-server-go/internal/repository"
)

type ProfileService struct {
	profiles        repository.ProfileRepository
	verificationTTL time.Duration
	now             nowFunc
}

func NewProfileService(profiles repository.ProfileRepository, verificationTTL time.Duration) *ProfileService {
	return &ProfileService{
		profiles:        profiles,
		verificationTTL: verificationTTL,
		now:             time.Now,
	}
}

// Update changes the caller's own profile. Only whitelisted fields are written.
func (s *ProfileService) Update(ctx context.Context, userID string, update model.ProfileUpdate) (*model.Profile, error) {
	profile, err := s.profiles.Update(ctx, userID, update.Fields())
	if repository.IsUniqueViolation(err) {
		return nil, apperrors.Conflict("Username already exists")
	}
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if profile == nil {
		return nil, apperrors.NotFound("Profile")
	}
	return profile, nil
}

// VerifyEmail consumes a verification token. Tokens older than the
// verification TTL are rejected.
func (s *ProfileService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return apperrors.ValidationError("Verification token is required")
	}

	profile, err := s.profiles.FindByVerificationToken(ctx, token)
	if err != nil {
		return apperrors.Database(err)
	}
	if profile == nil {
		return apperrors.ValidationError("Invalid or expired verification token")
	}

	if sentAt := profile.EmailVerificationSentAt; sentAt != nil && s.now().Sub(*sentAt) > s.verificationTTL {
		return apperrors.ValidationError("Verification token has expired. Please request a new one.")
	}

	if err := s.profiles.MarkEmailVerified(ctx, profile.ID); err != nil {
		return apperrors.Database(err)
	}
	return nil
}
