// Copyright (c) 2026 Serista. All rights reserved.
// Author: hello@serista.app

// Command serista is the terminal front-end for the series watch tracker.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Build the token store selected by config (file, memory, redis).
//  4. Wire the event bus, request mediator, busy indicator, and session.
//  5. Resume any persisted session, then dispatch the subcommand.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/serista/serista/internal/core/account"
	"github.com/serista/serista/internal/core/series"
	"github.com/serista/serista/internal/platform/bus"
	"github.com/serista/serista/internal/platform/busy"
	"github.com/serista/serista/internal/platform/config"
	redisstore "github.com/serista/serista/internal/platform/redis"
	"github.com/serista/serista/internal/platform/sched"
	"github.com/serista/serista/internal/platform/tokenstore"
	"github.com/serista/serista/internal/platform/transport"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured.
	level := slog.LevelWarn
	if os.Getenv("SERISTA_DEBUG") == "true" {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", "serista"))
	slog.SetDefault(log)

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	ctx := context.Background()

	// ── 3. Token store ────────────────────────────────────────────────────
	store, cleanup, err := newTokenStore(ctx, cfg, log)
	must(log, err, "initialize token store")
	defer cleanup()

	// ── 4. Event bus, mediator, busy indicator ────────────────────────────
	eventBus := bus.New()

	mediator := transport.New(transport.Config{
		BaseURL:        cfg.APIBase,
		Store:          store,
		Bus:            eventBus,
		Logger:         log,
		Timeout:        cfg.RequestTimeout,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	indicator := busy.NewIndicator(eventBus)
	defer indicator.Close()

	// ── 5. Session ────────────────────────────────────────────────────────
	session := account.NewSession(account.NewClient(mediator), store, eventBus, sched.Real(), log)
	defer session.Close()
	session.SetOnExpired(func() {
		fmt.Fprintln(os.Stderr, "session expired — please log in again")
	})

	app := &app{
		session: session,
		series:  series.NewClient(mediator),
		busy:    indicator,
		out:     os.Stdout,
	}

	// ── 6. Dispatch ───────────────────────────────────────────────────────
	if err := app.run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}
}

// newTokenStore builds the configured token store backend. The returned
// cleanup closes any underlying connection.
func newTokenStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (tokenstore.Store, func(), error) {
	switch cfg.TokenStore {
	case config.StoreMemory:
		return tokenstore.NewMemory(), func() {}, nil

	case config.StoreRedis:
		client, err := redisstore.NewClient(ctx, cfg.RedisURL, log)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if cerr := client.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}
		return tokenstore.NewRedis(client), cleanup, nil

	default:
		store, err := tokenstore.NewFile(cfg.TokenPath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}

func must(log *slog.Logger, err error, action string) {
	if err != nil {
		log.Error("startup failed", slog.String("action", action), slog.Any("error", err))
		os.Exit(1)
	}
}
