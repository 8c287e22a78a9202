package model

import (
	"time"

	"github.com/samrambhak/community-server-go/internal/util"
)

type Conversation struct {
	ID             string    `db:"id" json:"id"`
	ParticipantOne string    `db:"participant_one" json:"participant_one"`
	ParticipantTwo string    `db:"participant_two" json:"participant_two"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	LastMessageAt  time.Time `db:"last_message_at" json:"last_message_at"`
}

// OtherParticipant returns the participant that is not userID.
func (c Conversation) OtherParticipant(userID string) string {
	if c.ParticipantOne == userID {
		return c.ParticipantTwo
	}
	return c.ParticipantOne
}

// HasParticipant reports whether userID is one of the two participants.
func (c Conversation) HasParticipant(userID string) bool {
	return c.ParticipantOne == userID || c.ParticipantTwo == userID
}

// CanonicalPair orders two participant ids so that the first is the lower
// one. Ids that parse as uuids are lowercased first so the order agrees with
// the database's.
func CanonicalPair(a, b string) (string, string) {
	if id, ok := util.CanonicalUUID(a); ok {
		a = id
	}
	if id, ok := util.CanonicalUUID(b); ok {
		b = id
	}
	if a < b {
		return a, b
	}
	return b, a
}

// ConversationSummary is a conversation enriched for the inbox listing.
type ConversationSummary struct {
	Conversation
	OtherUser   *ProfileSummary `json:"other_user"`
	LastMessage *string         `json:"last_message"`
	UnreadCount int             `json:"unread_count"`
}

type Message struct {
	ID             string    `db:"id" json:"id"`
	ConversationID string    `db:"conversation_id" json:"conversation_id"`
	SenderID       string    `db:"sender_id" json:"sender_id"`
	Content        string    `db:"content" json:"content"`
	IsRead         bool      `db:"is_read" json:"is_read"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

type CreateMessageParams struct {
	ConversationID string
	SenderID       string
	Content        string
}
