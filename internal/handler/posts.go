package handler

import (
	"net/http"

	"github.com/samrambhak/community-server-go/internal/middleware"
	"github.com/samrambhak/community-server-go/internal/service"
)

type PostHandler struct {
	likes    LikeService
	comments CommentService
	reports  ReportService
}

func NewPostHandler(likes LikeService, comments CommentService, reports ReportService) *PostHandler {
	return &PostHandler{likes: likes, comments: comments, reports: reports}
}

// POST /functions/v1/toggle-like
func (h *PostHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PostID string `json:"post_id"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := canonicalIDs(&req.PostID); err != nil {
		writeError(w, err)
		return
	}

	liked, err := h.likes.Toggle(r.Context(), middleware.GetUserID(r.Context()), req.PostID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, map[string]any{"liked": liked})
}

// POST /functions/v1/create-comment
func (h *PostHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PostID  string `json:"post_id"`
		Content string `json:"content"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := canonicalIDs(&req.PostID); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.comments.Create(r.Context(), middleware.GetUserID(r.Context()), req.PostID, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, map[string]any{"comment": result.Comment, "flagged": result.Flagged})
}

// POST /functions/v1/report-post
func (h *PostHandler) ReportPost(w http.ResponseWriter, r *http.Request) {
	var req service.ReportPostParams
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := canonicalIDs(&req.PostID); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.reports.ReportPost(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, map[string]any{
		"message":      "Report submitted successfully",
		"report_count": result.ReportCount,
		"hidden":       result.Hidden,
	})
}
