package service

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/samrambhak/community-server-go/internal/database"
	apperrors "github.com/samrambhak/community-server-go/internal/errors"
	"github.com/samrambhak/community-server-go/internal/metrics"
	"github.com/samrambhak/community-server-go/internal/model"
	"github.com/samrambhak/community-server-go/internal/repository"
	"github.com/samrambhak/community-server-go/internal/sse"
)

const (
	msgConversationDenied = "Conversation not found or access denied"
	msgMessageDenied      = "Message not found or access denied"
)

type MessagingService struct {
	db            database.Transactor
	conversations repository.ConversationRepository
	messages      repository.MessageRepository
	profiles      repository.ProfileRepository
	events        EventPublisher
}

func NewMessagingService(
	db database.Transactor,
	conversations repository.ConversationRepository,
	messages repository.MessageRepository,
	profiles repository.ProfileRepository,
	events EventPublisher,
) *MessagingService {
	return &MessagingService{
		db:            db,
		conversations: conversations,
		messages:      messages,
		profiles:      profiles,
		events:        events,
	}
}

// GetConversations lists the user's conversations, most recent first, each
// enriched with the other participant, the last message and the unread count.
func (s *MessagingService) GetConversations(ctx context.Context, userID string) ([]model.ConversationSummary, error) {
	convs, err := s.conversations.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	summaries := make([]model.ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		summary := model.ConversationSummary{Conversation: conv}

		other, err := s.profiles.FindSummary(ctx, conv.OtherParticipant(userID))
		if err != nil {
			return nil, apperrors.Database(err)
		}
		summary.OtherUser = other

		last, err := s.messages.FindLatest(ctx, conv.ID)
		if err != nil {
			return nil, apperrors.Database(err)
		}
		if last != nil {
			summary.LastMessage = &last.Content
		}

		summary.UnreadCount, err = s.messages.CountUnread(ctx, conv.ID, userID)
		if err != nil {
			return nil, apperrors.Database(err)
		}

		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// participantConversation loads the conversation and checks membership.
// Missing and foreign conversations produce the same forbidden error.
func (s *MessagingService) participantConversation(ctx context.Context, userID, conversationID string) (*model.Conversation, error) {
	if conversationID == "" {
		return nil, apperrors.Forbidden(msgConversationDenied)
	}
	conv, err := s.conversations.FindByID(ctx, conversationID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if conv == nil || !conv.HasParticipant(userID) {
		return nil, apperrors.Forbidden(msgConversationDenied)
	}
	return conv, nil
}

// GetMessages returns the conversation's messages oldest first and marks the
// other participant's messages as read.
func (s *MessagingService) GetMessages(ctx context.Context, userID, conversationID string) ([]model.Message, error) {
	conv, err := s.participantConversation(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	msgs, err := s.messages.ListByConversation(ctx, conv.ID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if msgs == nil {
		msgs = []model.Message{}
	}

	s.markRead(ctx, conv, userID)
	return msgs, nil
}

func (s *MessagingService) SendMessage(ctx context.Context, userID, conversationID, content string) (*model.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.ValidationError("Message content required")
	}

	conv, err := s.participantConversation(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	msg, err := s.messages.Create(ctx, model.CreateMessageParams{
		ConversationID: conv.ID,
		SenderID:       userID,
		Content:        content,
	})
	if err != nil {
		return nil, apperrors.Database(err)
	}

	if err := s.conversations.TouchLastMessage(ctx, conv.ID); err != nil {
		log.Error().Err(err).Str("conversationId", conv.ID).Msg("failed to update last_message_at")
	}

	metrics.MessagesSentTotal.Inc()
	s.publish(ctx, conv.OtherParticipant(userID), sse.EventMessageCreated, msg)
	return msg, nil
}

// GetOrCreateConversation returns the single conversation between the two
// users, creating it if needed. Argument order does not matter.
func (s *MessagingService) GetOrCreateConversation(ctx context.Context, userID, otherUserID string) (*model.Conversation, error) {
	if otherUserID == "" {
		return nil, apperrors.ValidationError("Other user ID required")
	}
	one, two := model.CanonicalPair(userID, otherUserID)
	if one == two {
		return nil, apperrors.ValidationError("Cannot start a conversation with yourself")
	}

	existing, err := s.conversations.FindByPair(ctx, one, two)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if existing != nil {
		return existing, nil
	}

	created, err := s.conversations.Create(ctx, one, two)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if created != nil {
		return created, nil
	}

	// Lost a race with a concurrent create; the row exists now.
	existing, err = s.conversations.FindByPair(ctx, one, two)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if existing == nil {
		return nil, apperrors.Internal("conversation vanished after conflicting insert")
	}
	return existing, nil
}

func (s *MessagingService) DeleteConversation(ctx context.Context, userID, conversationID string) error {
	conv, err := s.participantConversation(ctx, userID, conversationID)
	if err != nil {
		return err
	}

	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.messages.WithTx(tx).DeleteByConversation(ctx, conv.ID); err != nil {
			return err
		}
		return s.conversations.WithTx(tx).Delete(ctx, conv.ID)
	})
	if err != nil {
		return apperrors.Database(err)
	}
	return nil
}

// DeleteMessage deletes a message the user sent.
func (s *MessagingService) DeleteMessage(ctx context.Context, userID, messageID string) error {
	if messageID == "" {
		return apperrors.Forbidden(msgMessageDenied)
	}
	msg, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		return apperrors.Database(err)
	}
	if msg == nil || msg.SenderID != userID {
		return apperrors.Forbidden(msgMessageDenied)
	}

	if err := s.messages.Delete(ctx, msg.ID); err != nil {
		return apperrors.Database(err)
	}
	return nil
}

func (s *MessagingService) MarkRead(ctx context.Context, userID, conversationID string) error {
	conv, err := s.participantConversation(ctx, userID, conversationID)
	if err != nil {
		return err
	}
	s.markRead(ctx, conv, userID)
	return nil
}

// markRead is best effort: a failure is logged and the caller still succeeds.
func (s *MessagingService) markRead(ctx context.Context, conv *model.Conversation, userID string) {
	n, err := s.messages.MarkReadFromOthers(ctx, conv.ID, userID)
	if err != nil {
		log.Error().Err(err).Str("conversationId", conv.ID).Msg("failed to mark messages read")
		return
	}
	if n > 0 {
		s.publish(ctx, conv.OtherParticipant(userID), sse.EventMessagesRead, map[string]any{
			"conversation_id": conv.ID,
			"reader_id":       userID,
		})
	}
}

func (s *MessagingService) publish(ctx context.Context, userID, eventType string, data any) {
	if s.events == nil {
		return
	}
	event, err := sse.NewEvent(eventType, data)
	if err != nil {
		log.Error().Err(err).Str("type", eventType).Msg("failed to encode event")
		return
	}
	if err := s.events.Publish(ctx, userID, event); err != nil {
		log.Warn().Err(err).Str("userId", userID).Str("type", eventType).Msg("failed to publish event")
	}
}
