package handler

import (
	"net/http"

	apperrors "github.com/samrambhak/community-server-go/internal/errors"
	"github.com/samrambhak/community-server-go/internal/middleware"
	"github.com/samrambhak/community-server-go/internal/model"
)

type adminDataParams struct {
	BusinessID  string        `json:"business_id"`
	CommunityID string        `json:"community_id"`
	JobID       string        `json:"job_id"`
	Updates     model.Updates `json:"updates"`
}

type AdminDataHandler struct {
	data AdminDataService
}

func NewAdminDataHandler(data AdminDataService) *AdminDataHandler {
	return &AdminDataHandler{data: data}
}

// POST /functions/v1/admin-data
func (h *AdminDataHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	adminID := middleware.GetUserID(ctx)

	action, body, err := readAction(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var p adminDataParams
	if err := bindIDs(body, &p, &p.BusinessID, &p.CommunityID, &p.JobID); err != nil {
		writeError(w, err)
		return
	}

	switch action {
	case "get_businesses":
		businesses, err := h.data.Businesses(ctx)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"businesses": businesses})

	case "get_communities":
		communities, err := h.data.Communities(ctx)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"communities": communities})

	case "get_jobs":
		jobs, err := h.data.Jobs(ctx)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"jobs": jobs})

	case "get_stats":
		stats, err := h.data.Stats(ctx)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"stats": stats})

	case "update_business":
		h.respondUpdate(w, h.data.UpdateBusiness(ctx, adminID, p.BusinessID, p.Updates))

	case "update_community":
		h.respondUpdate(w, h.data.UpdateCommunity(ctx, adminID, p.CommunityID, p.Updates))

	case "update_job":
		h.respondUpdate(w, h.data.UpdateJob(ctx, adminID, p.JobID, p.Updates))

	default:
		writeError(w, apperrors.InvalidAction(
			"get_businesses", "get_communities", "get_jobs", "get_stats",
			"update_business", "update_community", "update_job",
		))
	}
}

func (h *AdminDataHandler) respondUpdate(w http.ResponseWriter, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}
