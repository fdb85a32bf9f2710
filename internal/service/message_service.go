package service

import (
	"context"
	"strings"
	"time"

	"hireboard/internal/domain"
	"hireboard/internal/events"
	"hireboard/internal/models"
	"hireboard/internal/repository"
)

type SendMessageInput struct {
	ReceiverID    uint   `json:"receiverId" validate:"required"`
	Content       string `json:"content" validate:"required,max=5000"`
	ApplicationID *uint  `json:"applicationId"`
	JobID         *uint  `json:"jobId"`
}

type Conversation struct {
	ConversationID string             `json:"conversationId"`
	OtherUser      models.UserSummary `json:"otherUser"`
	LastMessage    models.Message     `json:"lastMessage"`
	UnreadCount    int64              `json:"unreadCount"`
}

type MessageService struct {
	messages  *repository.MessageRepository
	users     userLookup
	publisher Notifier
}

func NewMessageService(messages *repository.MessageRepository, users userLookup, publisher Notifier) *MessageService {
	return &MessageService{messages: messages, users: users, publisher: publisher}
}

func (s *MessageService) Send(ctx context.Context, senderID uint, in SendMessageInput) (*models.Message, error) {
	in.Content = strings.TrimSpace(in.Content)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.ReceiverID == senderID {
		return nil, domain.Validation("cannot send a message to yourself")
	}
	if _, err := s.users.GetByID(ctx, in.ReceiverID); err != nil {
		return nil, notFound(err, "receiver")
	}

	m := &models.Message{
		ConversationID: domain.ConversationID(senderID, in.ReceiverID),
		SenderID:       senderID,
		ReceiverID:     in.ReceiverID,
		Content:        in.Content,
		ApplicationID:  in.ApplicationID,
		JobID:          in.JobID,
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, err
	}

	senderName := "Someone"
	if u, err := s.users.GetByID(ctx, senderID); err == nil {
		senderName = u.Name
	}
	s.publisher.MessageSent(ctx, events.MessageSent{
		MessageID:      m.ID,
		ConversationID: m.ConversationID,
		SenderID:       senderID,
		SenderName:     senderName,
		ReceiverID:     in.ReceiverID,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
	})
	return m, nil
}

func (s *MessageService) ListConversations(ctx context.Context, userID uint) ([]Conversation, error) {
	rows, err := s.messages.ListConversations(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]Conversation, 0, len(rows))
	for _, row := range rows {
		otherID := domain.OtherParticipant(row.LastMessage.SenderID, row.LastMessage.ReceiverID, userID)
		other := models.UserSummary{ID: otherID}
		if u, err := s.users.GetByID(ctx, otherID); err == nil {
			other = u.Summary()
		}
		out = append(out, Conversation{
			ConversationID: row.ConversationID,
			OtherUser:      other,
			LastMessage:    row.LastMessage,
			UnreadCount:    row.UnreadCount,
		})
	}
	return out, nil
}

// GetConversation returns the messages between userID and otherID, oldest
// first, and marks the ones userID received as read.
func (s *MessageService) GetConversation(ctx context.Context, userID, otherID uint, p repository.Page) (Paged[models.Message], error) {
	p = repository.NewPage(p.Page, p.Limit)
	convID := domain.ConversationID(userID, otherID)
	list, total, err := s.messages.ListConversation(ctx, convID, p)
	if err != nil {
		return Paged[models.Message]{}, err
	}
	if _, err := s.messages.MarkConversationRead(ctx, convID, userID, time.Now().UTC()); err != nil {
		return Paged[models.Message]{}, err
	}
	return newPaged(list, total, p), nil
}

func (s *MessageService) MarkConversationRead(ctx context.Context, userID, otherID uint) (int64, error) {
	return s.messages.MarkConversationRead(ctx, domain.ConversationID(userID, otherID), userID, time.Now().UTC())
}

func (s *MessageService) Delete(ctx context.Context, actorID, id uint) error {
	m, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "message")
	}
	if m.SenderID != actorID {
		return domain.Forbidden("only the sender can delete a message")
	}
	return s.messages.Delete(ctx, id)
}

func (s *MessageService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.messages.CountUnread(ctx, userID)
}
