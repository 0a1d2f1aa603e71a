package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"subtrack/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// CacheService fronts Redis for the two things this application caches:
// software-catalog reads (write-invalidated) and refresh-token state.
// Dashboard metrics are deliberately not cached; they are recomputed on
// every request.
type CacheService interface {
	// Software catalog caching
	GetSoftware(ctx context.Context, softwareID uuid.UUID) (*models.Software, error)
	SetSoftware(ctx context.Context, software *models.Software, ttl time.Duration) error
	DeleteSoftware(ctx context.Context, softwareID uuid.UUID) error

	// Generic string operations for refresh-token management
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Warn().Err(err).Str("addr", addr).Msg("redis ping failed on initialization")
	}

	return &redisCacheService{client: client}
}

func softwareKey(id uuid.UUID) string {
	return fmt.Sprintf("software:%s", id)
}

// GetSoftware returns the cached catalog item, or (nil, nil) on a miss.
func (s *redisCacheService) GetSoftware(ctx context.Context, softwareID uuid.UUID) (*models.Software, error) {
	data, err := s.client.Get(ctx, softwareKey(softwareID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	software := &models.Software{}
	if err := json.Unmarshal(data, software); err != nil {
		return nil, err
	}
	return software, nil
}

func (s *redisCacheService) SetSoftware(ctx context.Context, software *models.Software, ttl time.Duration) error {
	data, err := json.Marshal(software)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, softwareKey(software.ID), data, ttl).Err()
}

func (s *redisCacheService) DeleteSoftware(ctx context.Context, softwareID uuid.UUID) error {
	return s.client.Del(ctx, softwareKey(softwareID)).Err()
}

func (s *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// GetString returns the stored value, or "" on a miss.
func (s *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return value, err
}

func (s *redisCacheService) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
