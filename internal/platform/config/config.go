// Copyright (c) 2026 Serista. All rights reserved.
// Author: hello@serista.app

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (transport, stores) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the client is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Token store backend identifiers.
const (
	StoreFile   = "file"
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// # Configuration Schema

// Config holds all runtime configuration for the Serista client.
type Config struct {

	// APIBase is the root address of the series backend.
	APIBase string `env:"SERISTA_API_BASE" envDefault:"http://localhost:3000"`

	// TokenStore selects where the bearer token is persisted: file, memory, redis.
	TokenStore string `env:"SERISTA_TOKEN_STORE" envDefault:"file"`

	// TokenPath is the directory holding the token file for the file backend.
	// Empty means the default user config directory.
	TokenPath string `env:"SERISTA_TOKEN_PATH"`

	// RedisURL configures the redis token store backend.
	RedisURL string `env:"SERISTA_REDIS_URL"`

	// RequestTimeout bounds one full request/response cycle.
	RequestTimeout time.Duration `env:"SERISTA_REQUEST_TIMEOUT" envDefault:"30s"`

	// RateLimitRPS throttles outbound API traffic. Zero disables the limiter.
	RateLimitRPS   float64 `env:"SERISTA_RATE_LIMIT_RPS" envDefault:"0"`
	RateLimitBurst int     `env:"SERISTA_RATE_LIMIT_BURST" envDefault:"10"`

	Debug bool `env:"SERISTA_DEBUG" envDefault:"false"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate rejects combinations the rest of the client cannot work with.
func (c *Config) validate() error {
	switch c.TokenStore {
	case StoreFile, StoreMemory:
	case StoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config: SERISTA_REDIS_URL is required when SERISTA_TOKEN_STORE=redis")
		}
	default:
		return fmt.Errorf("config: unknown token store %q", c.TokenStore)
	}
	if c.APIBase == "" {
		return fmt.Errorf("config: SERISTA_API_BASE must not be empty")
	}
	return nil
}
