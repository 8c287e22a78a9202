package handler

import (
	"net/http"

	apperrors "github.com/samrambhak/community-server-go/internal/errors"
	"github.com/samrambhak/community-server-go/internal/middleware"
)

type messagingParams struct {
	ConversationID string `json:"conversation_id"`
	OtherUserID    string `json:"other_user_id"`
	MessageID      string `json:"message_id"`
	Content        string `json:"content"`
}

type MessagingHandler struct {
	messaging MessagingService
}

func NewMessagingHandler(messaging MessagingService) *MessagingHandler {
	return &MessagingHandler{messaging: messaging}
}

// POST /functions/v1/messaging
func (h *MessagingHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	action, body, err := readAction(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var p messagingParams
	if err := bindIDs(body, &p, &p.ConversationID, &p.OtherUserID, &p.MessageID); err != nil {
		writeError(w, err)
		return
	}

	switch action {
	case "get_conversations":
		conversations, err := h.messaging.GetConversations(ctx, userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"conversations": conversations})

	case "get_messages":
		messages, err := h.messaging.GetMessages(ctx, userID, p.ConversationID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"messages": messages})

	case "send_message":
		message, err := h.messaging.SendMessage(ctx, userID, p.ConversationID, p.Content)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": message})

	case "get_or_create_conversation":
		conv, err := h.messaging.GetOrCreateConversation(ctx, userID, p.OtherUserID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"conversation_id": conv.ID})

	case "delete_conversation":
		if err := h.messaging.DeleteConversation(ctx, userID, p.ConversationID); err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, nil)

	case "delete_message":
		if err := h.messaging.DeleteMessage(ctx, userID, p.MessageID); err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, nil)

	case "mark_read":
		if err := h.messaging.MarkRead(ctx, userID, p.ConversationID); err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, nil)

	default:
		writeError(w, apperrors.InvalidAction())
	}
}
