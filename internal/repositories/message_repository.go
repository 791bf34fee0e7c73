package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "helpify.com/helpify/internal/models"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, msg *model.Message) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(msg).Error
}

// ListForUser returns every message the user sent or received, newest first.
func (r *MessageRepository) ListForUser(ctx context.Context, userID string) ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at desc").
		Find(&msgs).Error
	return msgs, err
}

// ListConversation returns the messages exchanged between a and b about the
// task in chronological order.
func (r *MessageRepository) ListConversation(ctx context.Context, taskID, a, b string) ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Order("created_at asc").
		Find(&msgs).Error
	return msgs, err
}

func (r *MessageRepository) MarkConversationRead(ctx context.Context, taskID, viewerID, counterpartyID string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("task_id = ? AND sender_id = ? AND receiver_id = ? AND is_read = ?", taskID, counterpartyID, viewerID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}
