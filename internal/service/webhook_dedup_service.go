package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Redis key prefix for processed LINE webhook events
	RedisWebhookEventKeyPrefix = "line:webhook:event:"

	// Timeout for individual Redis operations
	redisDedupTimeout = 2 * time.Second
)

// WebhookDedupService drops LINE webhook redeliveries by remembering event ids in Redis.
type WebhookDedupService struct {
	redisClient *redis.Client
	ttl         time.Duration
	log         *logrus.Logger
}

func NewWebhookDedupService(redisClient *redis.Client, ttl time.Duration, log *logrus.Logger) *WebhookDedupService {
	return &WebhookDedupService{
		redisClient: redisClient,
		ttl:         ttl,
		log:         log,
	}
}

// FirstDelivery reports whether eventID is seen for the first time.
// Events without an id and Redis failures are let through.
func (s *WebhookDedupService) FirstDelivery(ctx context.Context, eventID string) bool {
	if eventID == "" || s.redisClient == nil {
		return true
	}

	ctx, cancel := context.WithTimeout(ctx, redisDedupTimeout)
	defer cancel()

	ok, err := s.redisClient.SetNX(ctx, RedisWebhookEventKeyPrefix+eventID, 1, s.ttl).Result()
	if err != nil {
		s.log.Warnf("Failed to record webhook event %s: %+v", eventID, err)
		return true
	}
	return ok
}

// Forget deletes the record of eventID
func (s *WebhookDedupService) Forget(ctx context.Context, eventID string) {
	if eventID == "" || s.redisClient == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, redisDedupTimeout)
	defer cancel()

	if err := s.redisClient.Del(ctx, RedisWebhookEventKeyPrefix+eventID).Err(); err != nil {
		s.log.Warnf("Failed to forget webhook event %s: %+v", eventID, err)
	}
}
