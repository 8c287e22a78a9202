package middleware

import (
	"context"
	"net/http"

	"github.com/samrambhak/community-server-go/internal/audit"
	"github.com/samrambhak/community-server-go/internal/authz"
	apperrors "github.com/samrambhak/community-server-go/internal/errors"
	"github.com/samrambhak/community-server-go/internal/model"
)

type CapabilityResolver interface {
	Capabilities(ctx context.Context, userID string) (authz.Capabilities, error)
}

// RequireRoles admits the request when the session user holds any of roles;
// with no roles any admin role is enough. Roles are looked up on every
// request so revocations apply immediately. Must run after SessionAuth.
func RequireRoles(resolver CapabilityResolver, roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := GetUserID(r.Context())
			if userID == "" {
				writeError(w, apperrors.SessionRequired())
				return
			}

			caps, err := resolver.Capabilities(r.Context(), userID)
			if err != nil {
				writeError(w, err)
				return
			}

			if !caps.HasAny(roles...) {
				audit.LogFromRequest(r, audit.Event{
					Type:    audit.EventRoleDenied,
					UserID:  userID,
					Details: map[string]interface{}{"path": r.URL.Path},
				})
				writeError(w, apperrors.AdminRequired())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
