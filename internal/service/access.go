package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/samrambhak/community-server-go/internal/authz"
	apperrors "github.com/samrambhak/community-server-go/internal/errors"
	"github.com/samrambhak/community-server-go/internal/model"
	"github.com/samrambhak/community-server-go/internal/repository"
)

// AccessService gates privileged operations. Roles are read on every call.
type AccessService struct {
	roles repository.RoleRepository
}

func NewAccessService(roles repository.RoleRepository) *AccessService {
	return &AccessService{roles: roles}
}

func (s *AccessService) Capabilities(ctx context.Context, userID string) (authz.Capabilities, error) {
	roles, err := s.roles.FindByUserID(ctx, userID)
	if err != nil {
		return authz.Capabilities{}, apperrors.Database(err)
	}
	return authz.Resolve(roles), nil
}

// Require fails with a forbidden error unless the user holds one of roles.
// With no roles given, any admin role is enough.
func (s *AccessService) Require(ctx context.Context, userID string, roles ...model.Role) error {
	caps, err := s.Capabilities(ctx, userID)
	if err != nil {
		return err
	}
	if !caps.HasAny(roles...) {
		log.Warn().
			Str("userId", userID).
			Interface("required", roles).
			Msg("admin privileges required")
		return apperrors.AdminRequired()
	}
	return nil
}
