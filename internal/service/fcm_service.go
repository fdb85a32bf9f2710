package service

import (
	"context"
	"strconv"

	"hireboard/internal/logger"
	"hireboard/internal/models"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// FCMService sends push notifications via Firebase Cloud Messaging.
type FCMService struct {
	client *messaging.Client
}

// NewFCMService creates an FCM service. Returns nil if Firebase is not configured.
func NewFCMService(ctx context.Context, serviceAccountPath string) *FCMService {
	if serviceAccountPath == "" {
		return nil
	}
	opt := option.WithCredentialsFile(serviceAccountPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypePush).Errorf("failed to init Firebase app: %v", err)
		return nil
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypePush).Errorf("failed to get Messaging client: %v", err)
		return nil
	}
	return &FCMService{client: client}
}

// Send sends a push notification to the given FCM token.
func (s *FCMService) Send(ctx context.Context, token string, title, body string, data map[string]string) error {
	if s == nil || token == "" {
		return nil
	}
	msg := &messaging.Message{
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data:  data,
		Token: token,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound: "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}
	_, err := s.client.Send(ctx, msg)
	return err
}

// PushNotification delivers a stored notification to the recipient's device.
// FCM data values must be strings.
func (s *FCMService) PushNotification(ctx context.Context, fcmToken string, n *models.Notification) error {
	if s == nil || fcmToken == "" {
		return nil
	}
	data := map[string]string{
		"notificationId": strconv.FormatUint(uint64(n.ID), 10),
		"type":           n.Type,
		"link":           n.Link,
		"priority":       n.Priority,
	}
	return s.Send(ctx, fcmToken, n.Title, n.Message, data)
}
