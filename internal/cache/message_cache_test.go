package cache

import (
	"context"
	"testing"
	"time"

	"ai-chatapp-be/internal/entity"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func TestNewMessageCacheNilClient(t *testing.T) {
	c := NewMessageCache(nil, nopLogger{}, time.Minute)
	if c.Available() {
		t.Fatal("Available() = true with nil client")
	}
}

func TestWarmUnavailable(t *testing.T) {
	c := NewMessageCache(nil, nopLogger{}, 0)
	userId := uuid.New()

	res := c.Warm(context.Background(), userId, []*entity.ChatMessage{
		{Id: uuid.New(), UserId: userId, Message: "hi", Response: "hello"},
	})

	if res.Cached {
		t.Error("Cached = true, want false")
	}
	if res.Reason != "cache store not available" {
		t.Errorf("Reason = %q", res.Reason)
	}
	if res.MessagesCount != 0 {
		t.Errorf("MessagesCount = %d, want 0", res.MessagesCount)
	}
}

func TestWarmEmptyHistory(t *testing.T) {
	// Empty history is a successful no-op, decided before any store access.
	c := &MessageCache{log: nopLogger{}, ttl: time.Minute, available: true}

	res := c.Warm(context.Background(), uuid.New(), nil)

	if !res.Cached {
		t.Error("Cached = false, want true")
	}
	if res.MessagesCount != 0 {
		t.Errorf("MessagesCount = %d, want 0", res.MessagesCount)
	}
	if res.Reason != "no messages to cache" {
		t.Errorf("Reason = %q", res.Reason)
	}
}

func TestCacheMessageUnavailable(t *testing.T) {
	c := NewMessageCache(nil, nopLogger{}, time.Minute)
	userId := uuid.New()

	ok := c.CacheMessage(context.Background(), userId, &entity.ChatMessage{
		Id: uuid.New(), UserId: userId, Message: "hi", Response: "hello",
	})
	if ok {
		t.Error("CacheMessage = true on unavailable cache")
	}
}

func TestRecentMessagesMiss(t *testing.T) {
	c := NewMessageCache(nil, nopLogger{}, time.Minute)

	if _, ok := c.RecentMessages(context.Background(), uuid.New(), 10); ok {
		t.Error("ok = true on unavailable cache")
	}

	available := &MessageCache{log: nopLogger{}, ttl: time.Minute, available: true}
	if _, ok := available.RecentMessages(context.Background(), uuid.New(), 0); ok {
		t.Error("ok = true for non-positive limit")
	}
}

func TestKeyLayout(t *testing.T) {
	userId := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	msgId := uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")

	if got, want := messageKey(userId, msgId),
		"chat:user:11111111-2222-3333-4444-555555555555:message:aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"; got != want {
		t.Errorf("messageKey = %q, want %q", got, want)
	}
	if got, want := timelineKey(userId),
		"chat:user:11111111-2222-3333-4444-555555555555:messages"; got != want {
		t.Errorf("timelineKey = %q, want %q", got, want)
	}
}
