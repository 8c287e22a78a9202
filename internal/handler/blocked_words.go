package handler

import (
	"net/http"

	apperrors "github.com/samrambhak/community-server-go/internal/errors"
	"github.com/samrambhak/community-server-go/internal/middleware"
	"github.com/samrambhak/community-server-go/internal/model"
)

type blockedWordParams struct {
	Words    []string `json:"words"`
	ID       string   `json:"id"`
	Word     *string  `json:"word"`
	IsActive *bool    `json:"is_active"`
}

type BlockedWordHandler struct {
	words BlockedWordService
}

func NewBlockedWordHandler(words BlockedWordService) *BlockedWordHandler {
	return &BlockedWordHandler{words: words}
}

// POST /functions/v1/manage-blocked-words
func (h *BlockedWordHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	adminID := middleware.GetUserID(ctx)

	action, body, err := readAction(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var p blockedWordParams
	if err := bindIDs(body, &p, &p.ID); err != nil {
		writeError(w, err)
		return
	}

	switch action {
	case "list":
		words, err := h.words.List(ctx)
		if err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, map[string]any{"data": words})

	case "add":
		words, err := h.words.Add(ctx, adminID, p.Words)
		if err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, map[string]any{"data": words})

	case "update":
		word, err := h.words.Update(ctx, adminID, p.ID, model.UpdateBlockedWordParams{
			Word:     p.Word,
			IsActive: p.IsActive,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, map[string]any{"data": word})

	case "delete":
		if err := h.words.Delete(ctx, adminID, p.ID); err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, nil)

	default:
		writeError(w, apperrors.InvalidAction("list", "add", "update", "delete"))
	}
}
