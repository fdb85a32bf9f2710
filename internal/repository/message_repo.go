package repository

import (
	"context"
	"time"

	"hireboard/internal/models"

	"gorm.io/gorm"
)

// ConversationRow is one conversation of a user as aggregated from messages.
type ConversationRow struct {
	ConversationID string
	LastMessage    models.Message
	UnreadCount    int64
}

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *models.Message) error {
	return translate(r.db.WithContext(ctx).Omit("Sender", "Receiver").Create(m).Error, "create message")
}

func (r *MessageRepository) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	var m models.Message
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err, "get message")
	}
	return &m, nil
}

func (r *MessageRepository) Delete(ctx context.Context, id uint) error {
	return translate(r.db.WithContext(ctx).Delete(&models.Message{}, id).Error, "delete message")
}

// ListConversation returns one page of a conversation, oldest first. Pages
// count back from the newest message so page 1 is the latest window.
func (r *MessageRepository) ListConversation(ctx context.Context, conversationID string, p Page) ([]models.Message, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Message{}).Where("conversation_id = ?", conversationID).
		Session(&gorm.Session{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count conversation")
	}
	var list []models.Message
	if err := q.Order("created_at DESC, id DESC").Limit(p.Limit).Offset(p.Offset()).Find(&list).Error; err != nil {
		return nil, 0, translate(err, "list conversation")
	}
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	return list, total, nil
}

// MarkConversationRead marks read only the messages receiverID received in the conversation.
func (r *MessageRepository) MarkConversationRead(ctx context.Context, conversationID string, receiverID uint, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND is_read = ?", conversationID, receiverID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": at})
	return res.RowsAffected, translate(res.Error, "mark conversation read")
}

func (r *MessageRepository) CountUnread(ctx context.Context, receiverID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).Count(&n).Error
	return n, translate(err, "count unread messages")
}

// ListConversations groups every message the user sent or received by
// conversation, most recently active first.
func (r *MessageRepository) ListConversations(ctx context.Context, userID uint) ([]ConversationRow, error) {
	var groups []struct {
		ConversationID string
		LastID         uint
		UnreadCount    int64
	}
	err := r.db.WithContext(ctx).Model(&models.Message{}).
		Select("conversation_id, MAX(id) AS last_id, "+
			"SUM(CASE WHEN receiver_id = ? AND is_read = ? THEN 1 ELSE 0 END) AS unread_count", userID, false).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Group("conversation_id").
		Order("last_id DESC").
		Scan(&groups).Error
	if err != nil {
		return nil, translate(err, "aggregate conversations")
	}
	if len(groups) == 0 {
		return []ConversationRow{}, nil
	}

	ids := make([]uint, len(groups))
	for i, g := range groups {
		ids[i] = g.LastID
	}
	var last []models.Message
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&last).Error; err != nil {
		return nil, translate(err, "load last messages")
	}
	byID := make(map[uint]models.Message, len(last))
	for _, m := range last {
		byID[m.ID] = m
	}

	rows := make([]ConversationRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, ConversationRow{
			ConversationID: g.ConversationID,
			LastMessage:    byID[g.LastID],
			UnreadCount:    g.UnreadCount,
		})
	}
	return rows, nil
}
