// Package cache provides the redis-backed read cache used by the
// repositories layer. Values are stored as JSON; every balance mutation
// invalidates the affected card keys.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cardbank/internal/models"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func NewRedisClient(cfg *RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// GenerateKey builds a namespaced cache key, e.g. "card:id:42".
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// Card caching

func (s *CacheService) CacheCard(ctx context.Context, card *models.Card) error {
	key := s.GenerateKey("card", "id", card.ID)
	return s.Set(ctx, key, card)
}

func (s *CacheService) GetCard(ctx context.Context, cardID uint) (*models.Card, error) {
	key := s.GenerateKey("card", "id", cardID)
	var card models.Card
	found, err := s.Get(ctx, key, &card)
	if err != nil || !found {
		return nil, err
	}
	return &card, nil
}

// InvalidateCard drops the cached card after any balance, status or
// ownership change.
func (s *CacheService) InvalidateCard(ctx context.Context, cardID uint) error {
	return s.Delete(ctx, s.GenerateKey("card", "id", cardID))
}

// FlushAll flushes all keys from the cache.
func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

// Close closes the redis client connection.
func (s *CacheService) Close() error {
	return s.client.Close()
}
