package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "github.com/samrambhak/community-server-go/internal/errors"
	"github.com/samrambhak/community-server-go/internal/model"
)

func TestMessagingHandler_Actions(t *testing.T) {
	t.Run("get_or_create_conversation returns the id", func(t *testing.T) {
		svc := new(mockMessaging)
		svc.On("GetOrCreateConversation", mock.Anything, "u1", testOtherUserID).
			Return(&model.Conversation{ID: "conv-1"}, nil)

		rec := httptest.NewRecorder()
		NewMessagingHandler(svc).Handle(rec, newRequest("/functions/v1/messaging",
			`{"action":"get_or_create_conversation","other_user_id":"`+testOtherUserID+`"}`, "u1"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "conv-1", decodeBody(t, rec)["conversation_id"])
		svc.AssertExpectations(t)
	})

	t.Run("send_message passes content through", func(t *testing.T) {
		svc := new(mockMessaging)
		svc.On("SendMessage", mock.Anything, "u1", testConversationID, "hi").
			Return(&model.Message{ID: "m1", Content: "hi"}, nil)

		rec := httptest.NewRecorder()
		NewMessagingHandler(svc).Handle(rec, newRequest("/functions/v1/messaging",
			`{"action":"send_message","conversation_id":"`+testConversationID+`","content":"hi"}`, "u1"))

		assert.Equal(t, http.StatusOK, rec.Code)
		message := decodeBody(t, rec)["message"].(map[string]any)
		assert.Equal(t, "m1", message["id"])
	})

	t.Run("mark_read returns success", func(t *testing.T) {
		svc := new(mockMessaging)
		svc.On("MarkRead", mock.Anything, "u1", testConversationID).Return(nil)

		rec := httptest.NewRecorder()
		NewMessagingHandler(svc).Handle(rec, newRequest("/functions/v1/messaging",
			`{"action":"mark_read","conversation_id":"`+testConversationID+`"}`, "u1"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, decodeBody(t, rec)["success"])
	})

	t.Run("service errors map to status", func(t *testing.T) {
		svc := new(mockMessaging)
		svc.On("DeleteMessage", mock.Anything, "u1", testMessageID).
			Return(apperrors.Forbidden("Message not found or access denied"))

		rec := httptest.NewRecorder()
		NewMessagingHandler(svc).Handle(rec, newRequest("/functions/v1/messaging",
			`{"action":"delete_message","message_id":"`+testMessageID+`"}`, "u1"))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Message not found or access denied", decodeBody(t, rec)["error"])
	})

	t.Run("upper-case ids are canonicalized", func(t *testing.T) {
		svc := new(mockMessaging)
		svc.On("GetOrCreateConversation", mock.Anything, "u1", testOtherUserID).
			Return(&model.Conversation{ID: "conv-1"}, nil)

		rec := httptest.NewRecorder()
		NewMessagingHandler(svc).Handle(rec, newRequest("/functions/v1/messaging",
			`{"action":"get_or_create_conversation","other_user_id":"`+strings.ToUpper(testOtherUserID)+`"}`, "u1"))

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("malformed ids are a validation error", func(t *testing.T) {
		svc := new(mockMessaging)

		rec := httptest.NewRecorder()
		NewMessagingHandler(svc).Handle(rec, newRequest("/functions/v1/messaging",
			`{"action":"get_messages","conversation_id":"not-an-id"}`, "u1"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid ID format", decodeBody(t, rec)["error"])
		svc.AssertNotCalled(t, "GetMessages", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown action is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewMessagingHandler(new(mockMessaging)).Handle(rec, newRequest("/functions/v1/messaging",
			`{"action":"nope"}`, "u1"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, string(apperrors.ErrCodeInvalidAction), decodeBody(t, rec)["code"])
	})

	t.Run("malformed body is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewMessagingHandler(new(mockMessaging)).Handle(rec, newRequest("/functions/v1/messaging",
			`{not json`, "u1"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request body", decodeBody(t, rec)["error"])
	})
}
