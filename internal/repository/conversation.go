package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/samrambhak/community-server-go/internal/database"
	"github.com/samrambhak/community-server-go/internal/model"
)

type ConversationRepository interface {
	FindByID(ctx context.Context, id string) (*model.Conversation, error)
	// FindByPair expects participants already in canonical order.
	FindByPair(ctx context.Context, participantOne, participantTwo string) (*model.Conversation, error)
	// Create inserts the pair and returns nil when the pair already exists.
	Create(ctx context.Context, participantOne, participantTwo string) (*model.Conversation, error)
	ListByParticipant(ctx context.Context, userID string) ([]model.Conversation, error)
	TouchLastMessage(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	WithTx(tx *sqlx.Tx) ConversationRepository
}

type conversationRepo struct {
	db database.DBTX
}

func NewConversationRepository(db *sqlx.DB) ConversationRepository {
	return &conversationRepo{db: db}
}

func (r *conversationRepo) WithTx(tx *sqlx.Tx) ConversationRepository {
	return &conversationRepo{db: tx}
}

func (r *conversationRepo) FindByID(ctx context.Context, id string) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.db.GetContext(ctx, &conv, `
		SELECT id, participant_one, participant_two, created_at, last_message_at
		FROM conversations WHERE id = $1
	`, id)
	return HandleNotFound(&conv, err)
}

func (r *conversationRepo) FindByPair(ctx context.Context, participantOne, participantTwo string) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.db.GetContext(ctx, &conv, `
		SELECT id, participant_one, participant_two, created_at, last_message_at
		FROM conversations
		WHERE participant_one = $1 AND participant_two = $2
	`, participantOne, participantTwo)
	return HandleNotFound(&conv, err)
}

func (r *conversationRepo) Create(ctx context.Context, participantOne, participantTwo string) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.db.GetContext(ctx, &conv, `
		INSERT INTO conversations (participant_one, participant_two)
		VALUES ($1, $2)
		ON CONFLICT (participant_one, participant_two) DO NOTHING
		RETURNING id, participant_one, participant_two, created_at, last_message_at
	`, participantOne, participantTwo)
	return HandleNotFound(&conv, err)
}

func (r *conversationRepo) ListByParticipant(ctx context.Context, userID string) ([]model.Conversation, error) {
	var convs []model.Conversation
	err := r.db.SelectContext(ctx, &convs, `
		SELECT id, participant_one, participant_two, created_at, last_message_at
		FROM conversations
		WHERE participant_one = $1 OR participant_two = $1
		ORDER BY last_message_at DESC
	`, userID)
	return convs, err
}

func (r *conversationRepo) TouchLastMessage(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE conversations SET last_message_at = NOW() WHERE id = $1
	`, id)
	return err
}

func (r *conversationRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM conversations WHERE id = $1`, id)
	return err
}
