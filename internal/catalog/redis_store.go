package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore serves lookups from Redis lists. Each product id maps to a
// list of JSON-encoded records under recordKey(id), so list order is
// catalog order.
type RedisStore struct {
	client *redis.Client
}

// OpenRedis connects to the Redis catalog at addr.
func OpenRedis(addr string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// recordKey builds the list key for a product id.
func recordKey(productID string) string {
	return "catalog:" + NormalizeID(productID)
}

// Lookup reads the whole list for the normalized id.
func (s *RedisStore) Lookup(ctx context.Context, productID string) ([]Record, error) {
	vals, err := s.client.LRange(ctx, recordKey(productID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("catalog redis query failed: %w", err)
	}

	var out []Record
	for _, v := range vals {
		var r Record
		if err := json.Unmarshal([]byte(v), &r); err != nil {
			return nil, fmt.Errorf("catalog record not parseable: %w", err)
		}
		out = append(out, r)
	}
	return out, nil
}

// Put appends records to their product lists. Used for seeding.
func (s *RedisStore) Put(ctx context.Context, records ...Record) error {
	for _, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return err
		}
		if err := s.client.RPush(ctx, recordKey(r.ProductID), data).Err(); err != nil {
			return fmt.Errorf("catalog redis write failed: %w", err)
		}
	}
	return nil
}

func (s *RedisStore) Close() error { return s.client.Close() }
