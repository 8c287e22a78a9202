package middleware

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/samrambhak/community-server-go/internal/audit"
	apperrors "github.com/samrambhak/community-server-go/internal/errors"
	"github.com/samrambhak/community-server-go/internal/util"
)

type contextKey string

const (
	UserIDContextKey       contextKey = "userID"
	SessionTokenContextKey contextKey = "sessionToken"
)

// SessionTokenHeader carries the opaque session token on every call.
const SessionTokenHeader = "X-Session-Token"

// GetUserID returns the authenticated user id, or "" outside SessionAuth.
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDContextKey).(string); ok {
		return id
	}
	return ""
}

func GetSessionToken(ctx context.Context) string {
	if token, ok := ctx.Value(SessionTokenContextKey).(string); ok {
		return token
	}
	return ""
}

// WithUserID stores an authenticated user id in ctx.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDContextKey, userID)
}

type SessionValidator interface {
	Validate(ctx context.Context, token string) (*string, error)
}

type SessionAuth struct {
	sessions SessionValidator
}

func NewSessionAuth(sessions SessionValidator) *SessionAuth {
	return &SessionAuth{sessions: sessions}
}

func (m *SessionAuth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(SessionTokenHeader)
		if token == "" {
			writeError(w, apperrors.SessionRequired())
			return
		}

		userID, err := m.sessions.Validate(r.Context(), token)
		if err != nil {
			log.Error().Err(err).Msg("session auth: validation failed")
			writeError(w, err)
			return
		}

		if userID == nil {
			audit.LogFromRequest(r, audit.Event{
				Type:    audit.EventAuthFailure,
				Details: map[string]interface{}{"path": r.URL.Path, "token": util.MaskToken(token)},
			})
			writeError(w, apperrors.SessionInvalid())
			return
		}

		ctx := WithUserID(r.Context(), *userID)
		ctx = context.WithValue(ctx, SessionTokenContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
