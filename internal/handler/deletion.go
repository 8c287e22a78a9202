package handler

import (
	"net/http"

	apperrors "github.com/samrambhak/community-server-go/internal/errors"
	"github.com/samrambhak/community-server-go/internal/middleware"
)

type DeletionHandler struct {
	deletions DeletionService
}

func NewDeletionHandler(deletions DeletionService) *DeletionHandler {
	return &DeletionHandler{deletions: deletions}
}

// POST /functions/v1/manage-account-deletion
// Self-service actions operate on the session user; admin actions take the
// target from user_id and are authorized by the service on every call.
func (h *DeletionHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	action, body, err := readAction(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req struct {
		UserID string `json:"user_id"`
	}
	if err := bindIDs(body, &req, &req.UserID); err != nil {
		writeError(w, err)
		return
	}

	switch action {
	case "request_deletion":
		deletion, err := h.deletions.RequestDeletion(ctx, userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, map[string]any{
			"message":          "Account deletion scheduled",
			"deletion_request": deletion,
		})

	case "cancel_deletion":
		deletion, err := h.deletions.CancelDeletion(ctx, userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, map[string]any{
			"message":          "Account deletion cancelled",
			"deletion_request": deletion,
		})

	case "get_status":
		deletion, err := h.deletions.GetStatus(ctx, userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"has_pending_request": deletion != nil,
			"deletion_request":    deletion,
		})

	case "get_all_pending":
		requests, err := h.deletions.ListPending(ctx, userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, map[string]any{"requests": requests})

	case "admin_delete_now":
		if err := h.deletions.AdminDeleteNow(ctx, userID, req.UserID); err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, map[string]any{"message": "User account permanently deleted"})

	case "admin_delete_direct":
		if err := h.deletions.AdminDeleteDirect(ctx, userID, req.UserID); err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, map[string]any{"message": "User account permanently deleted"})

	default:
		writeError(w, apperrors.InvalidAction())
	}
}
