package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"selstudy/internal/model"
)

// ChatSessionCache is the explicit per-participant chat session store. It
// holds the ordered transcript that is sent in full to the AI chat call on
// every turn, so no opaque conversational state lives anywhere else.
type ChatSessionCache interface {
	Append(ctx context.Context, anonID string, msgs ...model.ChatMessage) error
	Transcript(ctx context.Context, anonID string) ([]model.ChatMessage, error)
	Clear(ctx context.Context, anonID string) error
}

type chatSessionCache struct {
	client *redis.Client
}

// Chat sessions outlive any realistic pause in a study session but do not
// need to survive forever; the trial document keeps the durable transcript.
const chatSessionTTL = 6 * time.Hour

// NewChatSessionCache creates a new chat session cache
func NewChatSessionCache(client *redis.Client) ChatSessionCache {
	return &chatSessionCache{
		client: client,
	}
}

func chatKey(anonID string) string {
	return "chat:" + anonID
}

func (c *chatSessionCache) Append(ctx context.Context, anonID string, msgs ...model.ChatMessage) error {
	if len(msgs) == 0 {
		return nil
	}

	values := make([]interface{}, 0, len(msgs))
	for _, msg := range msgs {
		data, err := json.Marshal(msg)
		if err != nil {
			return err
		}
		values = append(values, data)
	}

	key := chatKey(anonID)
	if err := c.client.RPush(ctx, key, values...).Err(); err != nil {
		return err
	}
	return c.client.Expire(ctx, key, chatSessionTTL).Err()
}

func (c *chatSessionCache) Transcript(ctx context.Context, anonID string) ([]model.ChatMessage, error) {
	raw, err := c.client.LRange(ctx, chatKey(anonID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	msgs := make([]model.ChatMessage, 0, len(raw))
	for _, item := range raw {
		var msg model.ChatMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

func (c *chatSessionCache) Clear(ctx context.Context, anonID string) error {
	return c.client.Del(ctx, chatKey(anonID)).Err()
}
