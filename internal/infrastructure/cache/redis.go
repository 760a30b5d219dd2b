package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
	"github.com/clientwatch-team/clientwatch/pkg/config"
)

const (
	clientListKey    = "clients:list:%s" // per owner
	clientListTTL    = 5 * time.Minute
	fathomSyncKey    = "fathom:last_sync"
	fathomSyncLayout = time.RFC3339
)

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// Store wraps Redis with the app's typed cache operations
type Store struct {
	client *redis.Client
}

// NewStore creates a cache store backed by Redis
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// GetClientList returns the cached client list for an owner, or nil on miss
func (s *Store) GetClientList(ctx context.Context, ownerID string) ([]*entities.ClientProfile, error) {
	data, err := s.client.Get(ctx, fmt.Sprintf(clientListKey, ownerID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var clients []*entities.ClientProfile
	if err := json.Unmarshal(data, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

// SetClientList caches the client list for an owner
func (s *Store) SetClientList(ctx context.Context, ownerID string, clients []*entities.ClientProfile) error {
	data, err := json.Marshal(clients)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, fmt.Sprintf(clientListKey, ownerID), data, clientListTTL).Err()
}

// InvalidateClientList drops the cached client list for an owner
func (s *Store) InvalidateClientList(ctx context.Context, ownerID string) error {
	return s.client.Del(ctx, fmt.Sprintf(clientListKey, ownerID)).Err()
}

// GetLastSync returns the watermark of the last Fathom backfill, zero time if unset
func (s *Store) GetLastSync(ctx context.Context) (time.Time, error) {
	val, err := s.client.Get(ctx, fathomSyncKey).Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(fathomSyncLayout, val)
}

// SetLastSync stores the watermark of the last Fathom backfill
func (s *Store) SetLastSync(ctx context.Context, at time.Time) error {
	return s.client.Set(ctx, fathomSyncKey, at.UTC().Format(fathomSyncLayout), 0).Err()
}
