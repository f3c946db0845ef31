// Package cache holds the per-user message cache warmed on login. It is a
// read optimization over the relational store, never the system of record:
// entries expire after a shared TTL and any store failure degrades the whole
// component to a reported no-op.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-chatapp-be/internal/entity"
	"ai-chatapp-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const DefaultTTL = time.Hour

// WarmResult reports the outcome of a warm-up. Partial failure is a count,
// not an error.
type WarmResult struct {
	Cached        bool   `json:"cached"`
	MessagesCount int    `json:"messages_count"`
	TotalMessages int    `json:"total_messages,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

type cachedMessage struct {
	Id        uuid.UUID  `json:"id"`
	UserId    uuid.UUID  `json:"user_id"`
	AgentId   *uuid.UUID `json:"agent_id,omitempty"`
	Message   string     `json:"message"`
	Response  string     `json:"response"`
	CreatedAt time.Time  `json:"created_at"`
}

type MessageCache struct {
	rdb       *redis.Client
	log       logger.ILogger
	ttl       time.Duration
	available bool
}

// NewMessageCache probes the store once at construction. An unreachable
// store leaves the component permanently degraded: warming reports
// "not cached" and reads miss, but nothing blocks the login flow.
func NewMessageCache(rdb *redis.Client, log logger.ILogger, ttl time.Duration) *MessageCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	available := false
	if rdb != nil {
		if err := rdb.Ping(context.Background()).Err(); err == nil {
			available = true
		} else {
			log.Warn("cache", "Redis unreachable, message cache disabled", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return &MessageCache{
		rdb:       rdb,
		log:       log,
		ttl:       ttl,
		available: available,
	}
}

func (c *MessageCache) Available() bool {
	return c.available
}

func messageKey(userId, messageId uuid.UUID) string {
	return fmt.Sprintf("chat:user:%s:message:%s", userId, messageId)
}

func timelineKey(userId uuid.UUID) string {
	return fmt.Sprintf("chat:user:%s:messages", userId)
}

// Warm stores each message under a point-lookup key and indexes all of them
// in a per-user sorted set keyed by creation time, sharing one TTL.
func (c *MessageCache) Warm(ctx context.Context, userId uuid.UUID, messages []*entity.ChatMessage) WarmResult {
	if !c.available {
		return WarmResult{Cached: false, Reason: "cache store not available"}
	}
	if len(messages) == 0 {
		return WarmResult{Cached: true, MessagesCount: 0, Reason: "no messages to cache"}
	}

	cached := 0
	for _, msg := range messages {
		if err := c.cacheOne(ctx, userId, msg); err != nil {
			c.log.Warn("cache", "Failed to cache message", map[string]interface{}{
				"message_id": msg.Id.String(),
				"error":      err.Error(),
			})
			continue
		}
		cached++
	}
	if err := c.rdb.Expire(ctx, timelineKey(userId), c.ttl).Err(); err != nil {
		c.log.Warn("cache", "Failed to set timeline TTL", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
	}

	c.log.Info("cache", "Message cache warmed", map[string]interface{}{
		"user_id": userId.String(),
		"cached":  cached,
		"total":   len(messages),
	})

	return WarmResult{
		Cached:        true,
		MessagesCount: cached,
		TotalMessages: len(messages),
	}
}

// CacheMessage adds a single fresh turn to both structures, refreshing the
// timeline TTL.
func (c *MessageCache) CacheMessage(ctx context.Context, userId uuid.UUID, msg *entity.ChatMessage) bool {
	if !c.available {
		return false
	}
	if err := c.cacheOne(ctx, userId, msg); err != nil {
		c.log.Warn("cache", "Failed to cache message", map[string]interface{}{
			"message_id": msg.Id.String(),
			"error":      err.Error(),
		})
		return false
	}
	c.rdb.Expire(ctx, timelineKey(userId), c.ttl)
	return true
}

func (c *MessageCache) cacheOne(ctx context.Context, userId uuid.UUID, msg *entity.ChatMessage) error {
	data, err := json.Marshal(cachedMessage{
		Id:        msg.Id,
		UserId:    msg.UserId,
		AgentId:   msg.AgentId,
		Message:   msg.Message,
		Response:  msg.Response,
		CreatedAt: msg.CreatedAt,
	})
	if err != nil {
		return err
	}

	if err := c.rdb.Set(ctx, messageKey(userId, msg.Id), data, c.ttl).Err(); err != nil {
		return err
	}
	return c.rdb.ZAdd(ctx, timelineKey(userId), redis.Z{
		Score:  float64(msg.CreatedAt.Unix()),
		Member: string(data),
	}).Err()
}

// RecentMessages reads up to limit messages newest-first from the per-user
// timeline. A miss (expired, never warmed, store down) returns ok=false so
// the caller falls back to the relational store.
func (c *MessageCache) RecentMessages(ctx context.Context, userId uuid.UUID, limit int) ([]*entity.ChatMessage, bool) {
	if !c.available || limit <= 0 {
		return nil, false
	}

	members, err := c.rdb.ZRevRange(ctx, timelineKey(userId), 0, int64(limit-1)).Result()
	if err != nil || len(members) == 0 {
		return nil, false
	}

	messages := make([]*entity.ChatMessage, 0, len(members))
	for _, member := range members {
		var cm cachedMessage
		if err := json.Unmarshal([]byte(member), &cm); err != nil {
			continue
		}
		messages = append(messages, &entity.ChatMessage{
			Id:        cm.Id,
			UserId:    cm.UserId,
			AgentId:   cm.AgentId,
			Message:   cm.Message,
			Response:  cm.Response,
			CreatedAt: cm.CreatedAt,
		})
	}
	if len(messages) == 0 {
		return nil, false
	}
	return messages, true
}

// Invalidate drops a user's cached messages, used when history is deleted.
func (c *MessageCache) Invalidate(ctx context.Context, userId uuid.UUID) {
	if !c.available {
		return
	}
	iter := c.rdb.Scan(ctx, 0, fmt.Sprintf("chat:user:%s:message:*", userId), 0).Iterator()
	for iter.Next(ctx) {
		c.rdb.Del(ctx, iter.Val())
	}
	c.rdb.Del(ctx, timelineKey(userId))
}
