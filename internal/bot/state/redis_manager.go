package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// stateTTL expires abandoned conversations
const stateTTL = 24 * time.Hour

// RedisManager manages user states using Redis so they survive restarts
type RedisManager struct {
	client *redis.Client
}

// NewRedisManager creates a new Redis-based state manager
func NewRedisManager(addr, password string) (*RedisManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisManager{
		client: client,
	}, nil
}

func stateKey(userID int64) string {
	return fmt.Sprintf("user:%d:state", userID)
}

// SetUserState sets the state for a user with TTL
func (m *RedisManager) SetUserState(ctx context.Context, userID int64, state string) error {
	if state == None {
		return m.ClearUserState(ctx, userID)
	}
	if err := m.client.Set(ctx, stateKey(userID), state, stateTTL).Err(); err != nil {
		return fmt.Errorf("failed to set user state: %w", err)
	}
	return nil
}

// GetUserState gets the state for a user
func (m *RedisManager) GetUserState(ctx context.Context, userID int64) (string, error) {
	state, err := m.client.Get(ctx, stateKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return None, nil
	}
	if err != nil {
		return None, fmt.Errorf("failed to get user state: %w", err)
	}
	return state, nil
}

// ClearUserState clears the state for a user
func (m *RedisManager) ClearUserState(ctx context.Context, userID int64) error {
	if err := m.client.Del(ctx, stateKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear user state: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (m *RedisManager) Close() error {
	return m.client.Close()
}
