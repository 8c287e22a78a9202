package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/samrambhak/community-server-go/internal/audit"
	apperrors "github.com/samrambhak/community-server-go/internal/errors"
	"github.com/samrambhak/community-server-go/internal/middleware"
)

type SessionHandler struct {
	sessions SessionService
}

func NewSessionHandler(sessions SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Routes mounts the session endpoints. Login is mounted separately so it
// can sit behind the stricter per-IP limiter.
func (h *SessionHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/validate", h.Validate)
	r.Post("/refresh", h.Refresh)
	r.Post("/signout", h.SignOut)
	r.Post("/admin-validate", h.AdminValidate)

	return r
}

// sessionToken reads the token from the header, falling back to a
// session_token body field for clients that cannot set headers.
func sessionToken(r *http.Request) string {
	if token := r.Header.Get(middleware.SessionTokenHeader); token != "" {
		return token
	}
	var req struct {
		SessionToken string `json:"session_token"`
	}
	if err := decode(r, &req); err != nil {
		return ""
	}
	return req.SessionToken
}

// POST /v1/sessions/login
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MobileNumber string `json:"mobile_number" validate:"required"`
		Password     string `json:"password" validate:"required"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.sessions.Login(r.Context(), req.MobileNumber, req.Password)
	if err != nil {
		if apperrors.GetCode(err) == apperrors.ErrCodeUnauthorized {
			audit.LogFromRequest(r, audit.Event{
				Type:    audit.EventLoginFailure,
				Details: map[string]interface{}{"mobile_number": req.MobileNumber},
			})
		}
		writeError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:   audit.EventLoginSuccess,
		UserID: result.User.ID,
	})
	writeJSON(w, http.StatusOK, result)
}

// POST /v1/sessions/validate
func (h *SessionHandler) Validate(w http.ResponseWriter, r *http.Request) {
	userID, err := h.sessions.Validate(r.Context(), sessionToken(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if userID == nil {
		writeJSON(w, http.StatusOK, map[string]any{"valid": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"valid": true, "user_id": *userID})
}

// POST /v1/sessions/refresh
func (h *SessionHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshed, err := h.sessions.Refresh(r.Context(), sessionToken(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"refreshed": refreshed})
}

// POST /v1/sessions/signout
func (h *SessionHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.SignOut(r.Context(), sessionToken(r)); err != nil {
		writeError(w, err)
		return
	}
	audit.LogFromRequest(r, audit.Event{Type: audit.EventLogout})
	writeSuccess(w, nil)
}

// POST /v1/sessions/admin-validate
func (h *SessionHandler) AdminValidate(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.AdminValidate(r.Context(), sessionToken(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}
