package service

import (
	"context"
	"time"

	"hireboard/internal/domain"
	"hireboard/internal/logger"
	"hireboard/internal/metrics"
	"hireboard/internal/models"
	"hireboard/internal/repository"

	log "github.com/sirupsen/logrus"
)

type userLookup interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

type realtimePusher interface {
	BroadcastToUser(userID uint, eventType string, payload interface{})
}

type devicePusher interface {
	PushNotification(ctx context.Context, fcmToken string, n *models.Notification) error
}

type CreateNotificationInput struct {
	RecipientID uint   `validate:"required"`
	Type        string `validate:"required"`
	Title       string `validate:"required,max=255"`
	Message     string `validate:"required"`
	Link        string `validate:"max=512"`
	Priority    string
}

// NotificationPage is a page of the inbox plus the recipient's total unread
// count, which ignores filters and paging.
type NotificationPage struct {
	Data        []models.Notification `json:"data"`
	UnreadCount int64                 `json:"unreadCount"`
	Total       int64                 `json:"total"`
	TotalPages  int                   `json:"totalPages"`
	Page        int                   `json:"page"`
}

type NotificationService struct {
	repo  *repository.NotificationRepository
	users userLookup
	hub   realtimePusher
	push  devicePusher
}

// NewNotificationService builds the store. hub and push may be nil.
func NewNotificationService(repo *repository.NotificationRepository, users userLookup, hub realtimePusher, push devicePusher) *NotificationService {
	return &NotificationService{repo: repo, users: users, hub: hub, push: push}
}

// Create appends a notification and then delivers it best-effort over the
// websocket hub and FCM. Delivery failures are logged only.
func (s *NotificationService) Create(ctx context.Context, in CreateNotificationInput) (*models.Notification, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if _, err := domain.ParseNotificationType(in.Type); err != nil {
		return nil, err
	}
	priority, err := domain.ParsePriority(in.Priority)
	if err != nil {
		return nil, err
	}
	n := &models.Notification{
		RecipientID: in.RecipientID,
		Type:        in.Type,
		Title:       in.Title,
		Message:     in.Message,
		Link:        in.Link,
		Priority:    priority,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	metrics.NotificationsCreated.WithLabelValues(n.Type).Inc()
	s.deliver(n)
	return n, nil
}

func (s *NotificationService) deliver(n *models.Notification) {
	if s.hub != nil {
		s.hub.BroadcastToUser(n.RecipientID, "notification", n)
	}
	if s.push == nil || s.users == nil {
		return
	}
	notification := *n
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		u, err := s.users.GetByID(ctx, notification.RecipientID)
		if err != nil || u.FCMToken == "" {
			return
		}
		if err := s.push.PushNotification(ctx, u.FCMToken, &notification); err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypePush).
				Errorf("push notification %d to user %d: %v", notification.ID, notification.RecipientID, err)
		}
	}()
}

func (s *NotificationService) ListForUser(ctx context.Context, recipientID uint, f repository.NotificationFilter, p repository.Page) (*NotificationPage, error) {
	p = repository.NewPage(p.Page, p.Limit)
	if f.Type != "" {
		if _, err := domain.ParseNotificationType(f.Type); err != nil {
			return nil, err
		}
	}
	list, total, err := s.repo.ListByRecipient(ctx, recipientID, f, p)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.CountUnread(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.Notification{}
	}
	return &NotificationPage{
		Data:        list,
		UnreadCount: unread,
		Total:       total,
		TotalPages:  p.TotalPages(total),
		Page:        p.Page,
	}, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	return s.repo.CountUnread(ctx, recipientID)
}

func (s *NotificationService) owned(ctx context.Context, id, recipientID uint) (*models.Notification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "notification")
	}
	if n.RecipientID != recipientID {
		return nil, domain.Forbidden("not your notification")
	}
	return n, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id, recipientID uint) (*models.Notification, error) {
	n, err := s.owned(ctx, id, recipientID)
	if err != nil {
		return nil, err
	}
	if n.IsRead {
		return n, nil
	}
	now := time.Now().UTC()
	if err := s.repo.MarkRead(ctx, id, now); err != nil {
		return nil, err
	}
	n.IsRead = true
	n.ReadAt = &now
	return n, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID uint) (int64, error) {
	return s.repo.MarkAllRead(ctx, recipientID, time.Now().UTC())
}

func (s *NotificationService) Delete(ctx context.Context, id, recipientID uint) error {
	if _, err := s.owned(ctx, id, recipientID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ClearRead deletes every read notification of the recipient.
func (s *NotificationService) ClearRead(ctx context.Context, recipientID uint) (int64, error) {
	return s.repo.DeleteRead(ctx, recipientID)
}
