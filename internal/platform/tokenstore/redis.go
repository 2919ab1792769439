// Copyright (c) 2026 Serista. All rights reserved.
// Author: hello@serista.app

package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/serista/serista/internal/platform/constants"
)

// Redis persists the token under a single well-known key, so a session can
// be shared by clients on different hosts pointing at the same instance.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a Redis-backed store around an established client.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Get retrieves the token. A missing key means no token is stored.
func (r *Redis) Get(ctx context.Context) (string, error) {
	token, err := r.client.Get(ctx, constants.RedisTokenKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("tokenstore: redis get failed: %w", err)
	}
	return token, nil
}

// Set stores the token without a TTL; expiry is governed by the embedded
// 'exp' claim and the backend's 401, not by the store.
func (r *Redis) Set(ctx context.Context, token string) error {
	if err := r.client.Set(ctx, constants.RedisTokenKey, token, 0).Err(); err != nil {
		return fmt.Errorf("tokenstore: redis set failed: %w", err)
	}
	return nil
}

// Clear deletes the token key. Deleting an absent key succeeds.
func (r *Redis) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, constants.RedisTokenKey).Err(); err != nil {
		return fmt.Errorf("tokenstore: redis clear failed: %w", err)
	}
	return nil
}
