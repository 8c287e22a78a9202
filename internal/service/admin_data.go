package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/samrambhak/community-server-go/internal/audit"
	"github.com/samrambhak/community-server-go/internal/config"
	apperrors "github.com/samrambhak/community-server-go/internal/errors"
	"github.com/samrambhak/community-server-go/internal/model"
	"github.com/samrambhak/community-server-go/internal/repository"
	"github.com/samrambhak/community-server-go/internal/util"
)

// AdminDataService backs the admin dashboard. Callers are gated to admin
// roles at the route level.
type AdminDataService struct {
	data       repository.AdminDataRepository
	businesses repository.BusinessRepository
	logs       repository.ActivityLogRepository
}

func NewAdminDataService(
	data repository.AdminDataRepository,
	businesses repository.BusinessRepository,
	logs repository.ActivityLogRepository,
) *AdminDataService {
	return &AdminDataService{data: data, businesses: businesses, logs: logs}
}

func (s *AdminDataService) Businesses(ctx context.Context) ([]model.BusinessWithOwner, error) {
	list, err := s.data.ListBusinesses(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if list == nil {
		list = []model.BusinessWithOwner{}
	}
	return list, nil
}

func (s *AdminDataService) Communities(ctx context.Context) ([]model.CommunityWithMembers, error) {
	list, err := s.data.ListCommunities(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if list == nil {
		list = []model.CommunityWithMembers{}
	}
	return list, nil
}

func (s *AdminDataService) Jobs(ctx context.Context) ([]model.JobWithApplications, error) {
	list, err := s.data.ListJobs(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if list == nil {
		list = []model.JobWithApplications{}
	}
	return list, nil
}

func (s *AdminDataService) Stats(ctx context.Context) (*model.AdminStats, error) {
	stats, err := s.data.Stats(ctx, config.TopCategoryLimit)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return stats, nil
}

func (s *AdminDataService) UpdateBusiness(ctx context.Context, adminID, id string, updates model.Updates) error {
	updates = repository.FilterUpdates(updates, repository.AdminBusinessColumns)
	if err := requireUpdate(id, updates); err != nil {
		return err
	}
	business, err := s.businesses.Update(ctx, id, updates, repository.AdminBusinessColumns)
	if err != nil {
		return apperrors.Database(err)
	}
	if business == nil {
		return apperrors.NotFound("Business")
	}
	s.logUpdate(ctx, adminID, model.TargetTypeBusiness, id, updates)
	return nil
}

func (s *AdminDataService) UpdateCommunity(ctx context.Context, adminID, id string, updates model.Updates) error {
	updates = repository.FilterUpdates(updates, repository.AdminCommunityColumns)
	if err := requireUpdate(id, updates); err != nil {
		return err
	}
	found, err := s.data.UpdateCommunity(ctx, id, updates)
	if err != nil {
		return apperrors.Database(err)
	}
	if !found {
		return apperrors.NotFound("Community")
	}
	s.logUpdate(ctx, adminID, model.TargetTypeCommunity, id, updates)
	return nil
}

func (s *AdminDataService) UpdateJob(ctx context.Context, adminID, id string, updates model.Updates) error {
	updates = repository.FilterUpdates(updates, repository.AdminJobColumns)
	if err := requireUpdate(id, updates); err != nil {
		return err
	}
	found, err := s.data.UpdateJob(ctx, id, updates)
	if err != nil {
		return apperrors.Database(err)
	}
	if !found {
		return apperrors.NotFound("Job")
	}
	s.logUpdate(ctx, adminID, model.TargetTypeJob, id, updates)
	return nil
}

func requireUpdate(id string, updates model.Updates) error {
	if id == "" {
		return apperrors.MissingRequired("id")
	}
	if len(updates) == 0 {
		return apperrors.ValidationError("No updatable fields provided")
	}
	if raw, ok := updates["approval_status"]; ok {
		status, _ := raw.(string)
		if status == "" || !util.IsValidEnum(status, model.ApprovalStatuses) {
			return apperrors.ValidationError("approval_status must be one of: " + strings.Join(model.ApprovalStatuses, ", "))
		}
	}
	return nil
}

// logUpdate records the change; a logging failure does not undo the update.
func (s *AdminDataService) logUpdate(ctx context.Context, adminID string, target model.TargetType, id string, updates model.Updates) {
	encoded, _ := json.Marshal(updates)
	err := s.logs.Create(ctx, model.CreateActivityLogParams{
		AdminID:    adminID,
		Action:     fmt.Sprintf("Updated %s: %s", target, encoded),
		TargetType: target,
		TargetID:   id,
	})
	if err != nil {
		log.Error().Err(err).Str("targetId", id).Msg("failed to write admin activity log")
	}
	audit.Log(ctx, audit.Event{
		Type:     audit.EventAdminUpdate,
		UserID:   adminID,
		TargetID: id,
		Details:  map[string]interface{}{"target_type": string(target)},
	})
}
