package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/samrambhak/community-server-go/internal/authz"
	apperrors "github.com/samrambhak/community-server-go/internal/errors"
	"github.com/samrambhak/community-server-go/internal/metrics"
	"github.com/samrambhak/community-server-go/internal/model"
	"github.com/samrambhak/community-server-go/internal/repository"
	"github.com/samrambhak/community-server-go/internal/util"
)

type LoginResult struct {
	User         *model.Profile `json:"user"`
	SessionToken string         `json:"session_token"`
	ExpiresAt    time.Time      `json:"expires_at"`
}

type AdminSession struct {
	User  *model.Profile `json:"user"`
	Roles []model.Role   `json:"roles"`
}

type SessionService struct {
	sessions    repository.SessionRepository
	credentials repository.CredentialRepository
	profiles    repository.ProfileRepository
	roles       repository.RoleRepository
	ttl         time.Duration
	now         nowFunc
}

func NewSessionService(
	sessions repository.SessionRepository,
	credentials repository.CredentialRepository,
	profiles repository.ProfileRepository,
	roles repository.RoleRepository,
	ttl time.Duration,
) *SessionService {
	return &SessionService{
		sessions:    sessions,
		credentials: credentials,
		profiles:    profiles,
		roles:       roles,
		ttl:         ttl,
		now:         time.Now,
	}
}

// Validate returns the user id owning token, or nil when the token is empty,
// unknown, inactive or expired. Only datastore failures are errors.
func (s *SessionService) Validate(ctx context.Context, token string) (*string, error) {
	if token == "" {
		metrics.SessionValidationsTotal.WithLabelValues("invalid").Inc()
		return nil, nil
	}

	session, err := s.sessions.FindActiveByTokenHash(ctx, util.HashToken(token))
	if err != nil {
		metrics.SessionValidationsTotal.WithLabelValues("error").Inc()
		return nil, apperrors.Database(err)
	}
	if session == nil {
		metrics.SessionValidationsTotal.WithLabelValues("invalid").Inc()
		return nil, nil
	}

	metrics.SessionValidationsTotal.WithLabelValues("valid").Inc()
	userID := session.UserID
	return &userID, nil
}

func (s *SessionService) Login(ctx context.Context, mobileNumber, password string) (*LoginResult, error) {
	cred, err := s.credentials.FindByMobileNumber(ctx, mobileNumber)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if cred == nil || !util.CheckPasswordHash(password, cred.PasswordHash) {
		return nil, apperrors.Unauthorized("Invalid mobile number or password")
	}

	profile, err := s.profiles.FindByID(ctx, cred.ID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if profile == nil {
		return nil, apperrors.NotFound("Profile")
	}

	token, err := util.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	expiresAt := s.now().Add(s.ttl)
	if _, err := s.sessions.Create(ctx, model.CreateSessionParams{
		UserID:           profile.ID,
		SessionTokenHash: util.HashToken(token),
		ExpiresAt:        expiresAt,
	}); err != nil {
		return nil, apperrors.Database(err)
	}

	log.Info().Str("userId", profile.ID).Msg("session created")

	return &LoginResult{
		User:         profile,
		SessionToken: token,
		ExpiresAt:    expiresAt,
	}, nil
}

// Refresh pushes the expiry of an active session out by the session TTL.
// It returns false when the session is unknown, inactive or already expired.
func (s *SessionService) Refresh(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	ok, err := s.sessions.Extend(ctx, util.HashToken(token), s.now().Add(s.ttl))
	if err != nil {
		metrics.SessionRefreshesTotal.WithLabelValues("error").Inc()
		return false, apperrors.Database(err)
	}
	if !ok {
		metrics.SessionRefreshesTotal.WithLabelValues("rejected").Inc()
		return false, nil
	}
	metrics.SessionRefreshesTotal.WithLabelValues("ok").Inc()
	return true, nil
}

func (s *SessionService) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return apperrors.SessionRequired()
	}
	if err := s.sessions.Deactivate(ctx, util.HashToken(token)); err != nil {
		return apperrors.Database(err)
	}
	return nil
}

// AdminValidate validates the session and requires at least one admin role.
func (s *SessionService) AdminValidate(ctx context.Context, token string) (*AdminSession, error) {
	userID, err := s.Validate(ctx, token)
	if err != nil {
		return nil, err
	}
	if userID == nil {
		return nil, apperrors.SessionInvalid()
	}

	roles, err := s.roles.FindByUserID(ctx, *userID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if !authz.Resolve(roles).IsAdmin() {
		return nil, apperrors.AdminRequired()
	}

	profile, err := s.profiles.FindByID(ctx, *userID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if profile == nil {
		return nil, apperrors.NotFound("Profile")
	}

	return &AdminSession{User: profile, Roles: roles}, nil
}
