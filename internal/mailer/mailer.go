// Package mailer hands templated emails to the delivery worker. Delivery
// itself happens outside this service.
package mailer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

type Email struct {
	To       string                 `json:"to"`
	Template string                 `json:"template"`
	Args     map[string]interface{} `json:"args"`
	QueuedAt time.Time              `json:"queuedAt"`
}

type Dispatcher interface {
	Dispatch(ctx context.Context, email Email) error
}

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Wrapf(err, "redis.ParseURL(%q)", redisURL)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "redis ping failed")
	}

	return client, nil
}

// RedisDispatcher pushes each email as JSON onto a Redis list drained by the mail worker.
type RedisDispatcher struct {
	rdb *redis.Client
	key string
}

func NewRedisDispatcher(rdb *redis.Client, queueKey string) *RedisDispatcher {
	return &RedisDispatcher{rdb: rdb, key: queueKey}
}

func (d *RedisDispatcher) Dispatch(ctx context.Context, email Email) error {
	payload, err := encode(email)
	if err != nil {
		return err
	}
	if err := d.rdb.LPush(ctx, d.key, payload).Err(); err != nil {
		return errors.Wrapf(err, "enqueue %s email", email.Template)
	}
	return nil
}

// LogDispatcher only logs emails. It is used when no Redis URL is configured.
type LogDispatcher struct{}

func (LogDispatcher) Dispatch(_ context.Context, email Email) error {
	log.WithFields(log.Fields{
		"to":       email.To,
		"template": email.Template,
	}).Info("email not queued (no mail queue configured)")
	return nil
}

func encode(email Email) ([]byte, error) {
	if email.To == "" {
		return nil, errors.Errorf("email %s has no recipient", email.Template)
	}
	if email.QueuedAt.IsZero() {
		email.QueuedAt = time.Now().UTC()
	}
	payload, err := json.Marshal(email)
	return payload, errors.Wrap(err, "encode email")
}
