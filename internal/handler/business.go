package handler

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/samrambhak/community-server-go/internal/errors"
	"github.com/samrambhak/community-server-go/internal/middleware"
	"github.com/samrambhak/community-server-go/internal/model"
)

type businessParams struct {
	BusinessID string `json:"business_id"`
}

type BusinessHandler struct {
	businesses BusinessService
}

func NewBusinessHandler(businesses BusinessService) *BusinessHandler {
	return &BusinessHandler{businesses: businesses}
}

// businessUpdates returns every body key that is not part of the envelope.
// The service drops keys that are not owner-editable columns.
func businessUpdates(body []byte) (model.Updates, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperrors.ValidationError("Invalid request body")
	}
	delete(raw, "action")
	delete(raw, "business_id")
	delete(raw, "user_id")
	return model.Updates(raw), nil
}

// POST /functions/v1/manage-business
func (h *BusinessHandler) Manage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	action, body, err := readAction(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req businessParams
	if err := bindIDs(body, &req, &req.BusinessID); err != nil {
		writeError(w, err)
		return
	}

	switch action {
	case "list":
		businesses, err := h.businesses.List(ctx, userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, map[string]any{"businesses": businesses})

	case "update":
		updates, err := businessUpdates(body)
		if err != nil {
			writeError(w, err)
			return
		}
		business, err := h.businesses.Update(ctx, userID, req.BusinessID, updates)
		if err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, map[string]any{"business": business})

	case "delete":
		if err := h.businesses.Delete(ctx, userID, req.BusinessID); err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, nil)

	default:
		writeError(w, apperrors.InvalidAction("list", "update", "delete"))
	}
}

// POST /functions/v1/manage-business-follow
func (h *BusinessHandler) Follow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	action, body, err := readAction(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req businessParams
	if err := bindIDs(body, &req, &req.BusinessID); err != nil {
		writeError(w, err)
		return
	}

	switch action {
	case "follow":
		already, err := h.businesses.Follow(ctx, userID, req.BusinessID)
		if err != nil {
			writeError(w, err)
			return
		}
		if already {
			writeSuccess(w, map[string]any{"message": "Already following"})
			return
		}
		writeSuccess(w, nil)

	case "unfollow":
		if err := h.businesses.Unfollow(ctx, userID, req.BusinessID); err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, nil)

	default:
		writeError(w, apperrors.InvalidAction("follow", "unfollow"))
	}
}
