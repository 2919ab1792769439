// Copyright (c) 2026 Serista. All rights reserved.
// Author: hello@serista.app

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serista/serista/internal/platform/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", cfg.APIBase)
	assert.Equal(t, config.StoreFile, cfg.TokenStore)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Zero(t, cfg.RateLimitRPS)
	assert.False(t, cfg.Debug)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERISTA_API_BASE", "https://api.serista.app")
	t.Setenv("SERISTA_TOKEN_STORE", "memory")
	t.Setenv("SERISTA_REQUEST_TIMEOUT", "5s")
	t.Setenv("SERISTA_DEBUG", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.serista.app", cfg.APIBase)
	assert.Equal(t, config.StoreMemory, cfg.TokenStore)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.Debug)
}

func TestLoad_RedisStoreRequiresURL(t *testing.T) {
	t.Setenv("SERISTA_TOKEN_STORE", "redis")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERISTA_REDIS_URL")

	t.Setenv("SERISTA_REDIS_URL", "redis://localhost:6379/0")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StoreRedis, cfg.TokenStore)
}

func TestLoad_UnknownStoreRejected(t *testing.T) {
	t.Setenv("SERISTA_TOKEN_STORE", "sqlite")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown token store")
}
