// Copyright (c) 2026 Serista. All rights reserved.
// Author: hello@serista.app

package tokenstore

import (
	"context"
	"sync"
)

// Memory is a process-local store. It backs tests and the non-persistent
// "memory" mode, where the session lives only as long as the process.
type Memory struct {
	mu    sync.Mutex
	token string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Get(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *Memory) Set(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
