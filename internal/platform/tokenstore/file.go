// Copyright (c) 2026 Serista. All rights reserved.
// Author: hello@serista.app

package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/serista/serista/internal/platform/constants"
)

// File persists the token in a single well-known file, the CLI analog of a
// browser's localStorage slot.
type File struct {
	path string
}

// NewFile creates a file-backed store rooted at dir. An empty dir resolves
// to <user config dir>/serista.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("tokenstore: cannot resolve config directory: %w", err)
		}
		dir = filepath.Join(base, constants.AppName)
	}
	return &File{path: filepath.Join(dir, constants.TokenFileName)}, nil
}

// Get reads the persisted token. A missing file means no token is stored.
func (f *File) Get(_ context.Context) (string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("tokenstore: read %s: %w", f.path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Set writes the token with owner-only permissions.
func (f *File) Set(_ context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("tokenstore: create %s: %w", filepath.Dir(f.path), err)
	}
	if err := os.WriteFile(f.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("tokenstore: write %s: %w", f.path, err)
	}
	return nil
}

// Clear removes the token file. Clearing an absent file succeeds.
func (f *File) Clear(_ context.Context) error {
	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("tokenstore: remove %s: %w", f.path, err)
	}
	return nil
}
