package service

import (
	"context"
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

// Roles allowed to see and execute account deletions.
var deletionAdminRoles = []model.Role{model.RoleSuperAdmin, model.RoleContentModerator}

// DeletionMode says how an account purge was triggered.
type DeletionMode string

const (
	DeletionScheduled DeletionMode = "scheduled"
	DeletionImmediate DeletionMode = "immediate"
	DeletionDirect    DeletionMode = "direct"
)

type AccountDeletionService struct {
	db       database.Transactor
	requests repository.DeletionRequestRepository
	purger   repository.AccountPurgeRepository
	logs     repository.ActivityLogRepository
	access   *AccessService
	grace    time.Duration
	now      nowFunc
}

func NewAccountDeletionService(
	db database.Transactor,
	requests repository.DeletionRequestRepository,
	purger repository.AccountPurgeRepository,
	logs repository.ActivityLogRepository,
	access *AccessService,
	grace time.Duration,
) *AccountDeletionService {
	return &AccountDeletionService{
		db:       db,
		requests: requests,
		purger:   purger,
		logs:     logs,
		access:   access,
		grace:    grace,
		now:      time.Now,
	}
}

// RequestDeletion schedules the caller's account for deletion after the
// grace period. Only one request may be pending per user.
func (s *AccountDeletionService) RequestDeletion(ctx context.Context, userID string) (*model.DeletionRequest, error) {
	existing, err := s.requests.FindPendingByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("A deletion request is already pending").
			WithDetails(map[string]any{"existing_request": existing})
	}

	now := s.now()
	req, err := s.requests.Create(ctx, userID, now, now.Add(s.grace))
	if err != nil {
		return nil, apperrors.Database(err)
	}

	audit.Log(ctx, audit.Event{
		Type:    audit.EventDeletionRequested,
		UserID:  userID,
		Details: map[string]interface{}{"scheduled_for": req.ScheduledDeletionAt.Format(time.RFC3339)},
	})
	return req, nil
}

func (s *AccountDeletionService) CancelDeletion(ctx context.Context, userID string) (*model.DeletionRequest, error) {
	req, err := s.requests.FindPendingByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if req == nil {
		return nil, apperrors.New(apperrors.ErrCodeNotFound, "No pending deletion request found")
	}

	if err := s.requests.Cancel(ctx, req.ID); err != nil {
		return nil, apperrors.Database(err)
	}

	cancelledAt := s.now()
	req.Status = model.DeletionStatusCancelled
	req.CancelledAt = &cancelledAt

	audit.Log(ctx, audit.Event{Type: audit.EventDeletionCancelled, UserID: userID})
	return req, nil
}

// GetStatus returns the pending request, or nil when there is none.
func (s *AccountDeletionService) GetStatus(ctx context.Context, userID string) (*model.DeletionRequest, error) {
	req, err := s.requests.FindPendingByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return req, nil
}

func (s *AccountDeletionService) ListPending(ctx context.Context, adminID string) ([]model.PendingDeletion, error) {
	if err := s.access.Require(ctx, adminID, deletionAdminRoles...); err != nil {
		return nil, err
	}
	reqs, err := s.requests.ListPending(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if reqs == nil {
		reqs = []model.PendingDeletion{}
	}
	return reqs, nil
}

// AdminDeleteNow purges an account that has a pending request, skipping the
// rest of its grace period.
func (s *AccountDeletionService) AdminDeleteNow(ctx context.Context, adminID, userID string) error {
	return s.adminDelete(ctx, adminID, userID, DeletionImmediate)
}

// AdminDeleteDirect purges an account whether or not deletion was requested.
func (s *AccountDeletionService) AdminDeleteDirect(ctx context.Context, adminID, userID string) error {
	return s.adminDelete(ctx, adminID, userID, DeletionDirect)
}

func (s *AccountDeletionService) adminDelete(ctx context.Context, adminID, userID string, mode DeletionMode) error {
	if userID == "" {
		return apperrors.MissingRequired("user_id")
	}
	if err := s.access.Require(ctx, adminID, deletionAdminRoles...); err != nil {
		return err
	}

	pending, err := s.requests.FindPendingByUserID(ctx, userID)
	if err != nil {
		return apperrors.Database(err)
	}
	if mode == DeletionImmediate && pending == nil {
		return apperrors.ValidationError("No pending deletion request found for this user. Users must request deletion first.")
	}

	action := "Immediately deleted user account"
	var details any = map[string]any{"direct_deletion": true}
	if mode == DeletionDirect {
		action = "Directly deleted user account"
	}
	if pending != nil {
		details = map[string]any{
			"deletion_request_id":      pending.ID,
			"originally_scheduled_for": pending.ScheduledDeletionAt,
		}
	}

	logEntry := &model.CreateActivityLogParams{
		AdminID:    adminID,
		Action:     action,
		TargetType: model.TargetTypeUser,
		TargetID:   userID,
		Details:    details,
	}
	if err := s.purge(ctx, userID, pending, logEntry); err != nil {
		return apperrors.Database(err)
	}

	metrics.AccountsDeletedTotal.WithLabelValues(string(mode)).Inc()
	audit.Log(ctx, audit.Event{
		Type:     audit.EventAccountPurged,
		UserID:   adminID,
		TargetID: userID,
		Details:  map[string]interface{}{"mode": string(mode)},
	})
	return nil
}

// ProcessDue purges every account whose grace period has elapsed. A failed
// purge is logged and the remaining requests still run.
func (s *AccountDeletionService) ProcessDue(ctx context.Context) (int, error) {
	due, err := s.requests.ListDue(ctx, s.now())
	if err != nil {
		return 0, apperrors.Database(err)
	}

	purged := 0
	for i := range due {
		req := due[i]
		if err := s.purge(ctx, req.UserID, &req, nil); err != nil {
			log.Error().Err(err).Str("userId", req.UserID).Str("requestId", req.ID).Msg("scheduled account purge failed")
			continue
		}
		purged++
		metrics.AccountsDeletedTotal.WithLabelValues(string(DeletionScheduled)).Inc()
		audit.Log(ctx, audit.Event{
			Type:     audit.EventAccountPurged,
			TargetID: req.UserID,
			Details:  map[string]interface{}{"mode": string(DeletionScheduled), "request_id": req.ID},
		})
	}
	return purged, nil
}

// purge removes the user's data, completes the request and deletes the
// profile in one transaction, writing the activity log row when given.
func (s *AccountDeletionService) purge(ctx context.Context, userID string, req *model.DeletionRequest, logEntry *model.CreateActivityLogParams) error {
	return s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		purger := s.purger.WithTx(tx)
		if err := purger.PurgeUserData(ctx, userID); err != nil {
			return err
		}
		if req != nil {
			if err := s.requests.WithTx(tx).MarkCompleted(ctx, req.ID); err != nil {
				return err
			}
		}
		if err := purger.DeleteProfile(ctx, userID); err != nil {
			return err
		}
		if logEntry != nil {
			return s.logs.WithTx(tx).Create(ctx, *logEntry)
		}
		return nil
	})
}
