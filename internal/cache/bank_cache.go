package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"selstudy/internal/model"
)

// BankCache is a read-through cache for the seeded question banks. Bank
// content is immutable per version, so a TTL only matters after re-seeding.
type BankCache interface {
	GetSELQuestions(ctx context.Context, version, lang string) ([]*model.SELQuestion, error)
	SetSELQuestions(ctx context.Context, version, lang string, questions []*model.SELQuestion) error
	GetUEQItems(ctx context.Context, version, lang string) ([]*model.UEQItem, error)
	SetUEQItems(ctx context.Context, version, lang string, items []*model.UEQItem) error
}

type bankCache struct {
	client *redis.Client
}

const bankTTL = 30 * time.Minute

// NewBankCache creates a new question bank cache
func NewBankCache(client *redis.Client) BankCache {
	return &bankCache{
		client: client,
	}
}

func (c *bankCache) GetSELQuestions(ctx context.Context, version, lang string) ([]*model.SELQuestion, error) {
	data, err := c.client.Get(ctx, "bank:sel:"+version+":"+lang).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var questions []*model.SELQuestion
	if err := json.Unmarshal([]byte(data), &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (c *bankCache) SetSELQuestions(ctx context.Context, version, lang string, questions []*model.SELQuestion) error {
	data, err := json.Marshal(questions)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "bank:sel:"+version+":"+lang, data, bankTTL).Err()
}

func (c *bankCache) GetUEQItems(ctx context.Context, version, lang string) ([]*model.UEQItem, error) {
	data, err := c.client.Get(ctx, "bank:ueq:"+version+":"+lang).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []*model.UEQItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *bankCache) SetUEQItems(ctx context.Context, version, lang string, items []*model.UEQItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "bank:ueq:"+version+":"+lang, data, bankTTL).Err()
}
