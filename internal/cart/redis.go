package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aureliefinejewels/storefront-api/internal/models"
	"github.com/redis/go-redis/v9"
)

const cartKeyPrefix = "cart:"

// RedisPersister stores cart snapshots as JSON blobs with a TTL, so an
// abandoned session eventually expires on its own.
type RedisPersister struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPersister(client *redis.Client, ttl time.Duration) *RedisPersister {
	return &RedisPersister{client: client, ttl: ttl}
}

func (p *RedisPersister) Save(ctx context.Context, sessionID string, items []models.CartItem) error {

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	if err := p.client.Set(ctx, cartKeyPrefix+sessionID, data, p.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart for session %s: %w", sessionID, err)
	}

	return nil
}

func (p *RedisPersister) Load(ctx context.Context, sessionID string) ([]models.CartItem, error) {

	data, err := p.client.Get(ctx, cartKeyPrefix+sessionID).Bytes()
	if err != nil {

		if err == redis.Nil {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to load cart for session %s: %w", sessionID, err)
	}

	var items []models.CartItem

	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart items: %w", err)
	}

	return items, nil
}

func (p *RedisPersister) Delete(ctx context.Context, sessionID string) error {

	if err := p.client.Del(ctx, cartKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete cart for session %s: %w", sessionID, err)
	}

	return nil
}
