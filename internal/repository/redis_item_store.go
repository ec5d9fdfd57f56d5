package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ColdStore.wms/internal/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisItemStore keeps the item list as one JSON document under a fixed key, so
// it survives a restart of the service.
type RedisItemStore struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

// NewRedisItemStore stores items under key, or DefaultStoreKey when key is empty.
func NewRedisItemStore(client *redis.Client, key string, logger *zap.Logger) *RedisItemStore {
	if key == "" {
		key = DefaultStoreKey
	}
	return &RedisItemStore{client: client, key: key, logger: logger}
}

var _ ItemStore = (*RedisItemStore)(nil)

// NewRedisClient connects and pings the server.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("could not connect to Redis at %s: %w", addr, err)
	}
	return client, nil
}

func (s *RedisItemStore) All(ctx context.Context) ([]models.InventoryItem, error) {
	return s.read(ctx, s.client)
}

func (s *RedisItemStore) Replace(ctx context.Context, items []models.InventoryItem) error {
	if items == nil {
		items = []models.InventoryItem{}
	}
	if err := s.write(ctx, items); err != nil {
		return err
	}

	s.logger.Debug("Replaced stored inventory",
		zap.String("key", s.key),
		zap.Int("item_count", len(items)),
	)
	return nil
}

// Append is a read-modify-write guarded by WATCH so concurrent appends do not
// lose items.
func (s *RedisItemStore) Append(ctx context.Context, item models.InventoryItem) error {
	txf := func(tx *redis.Tx) error {
		items, err := s.read(ctx, tx)
		if err != nil {
			return err
		}
		items = append(items, item)

		data, err := json.Marshal(items)
		if err != nil {
			return fmt.Errorf("failed to marshal inventory: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key, data, 0)
			return nil
		})
		return err
	}

	const maxRetries = 5
	for i := 0; i < maxRetries; i++ {
		err := s.client.Watch(ctx, txf, s.key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to append inventory item: %w", err)
		}

		s.logger.Debug("Appended inventory item",
			zap.String("key", s.key),
			zap.String("sku", item.SKU),
			zap.String("batch", item.Batch),
		)
		return nil
	}
	return fmt.Errorf("failed to append inventory item: %w", redis.TxFailedErr)
}

func (s *RedisItemStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to clear inventory: %w", err)
	}
	return nil
}

// getter is satisfied by both *redis.Client and *redis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *RedisItemStore) read(ctx context.Context, c getter) ([]models.InventoryItem, error) {
	val, err := c.Get(ctx, s.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return []models.InventoryItem{}, nil
		}
		return nil, fmt.Errorf("failed to read inventory: %w", err)
	}

	var items []models.InventoryItem
	if err := json.Unmarshal(val, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal inventory: %w", err)
	}
	if items == nil {
		items = []models.InventoryItem{}
	}
	return items, nil
}

func (s *RedisItemStore) write(ctx context.Context, items []models.InventoryItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal inventory: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write inventory: %w", err)
	}
	return nil
}
