// Copyright (c) 2026 Serista. All rights reserved.
// Author: hello@serista.app

package tokenstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serista/serista/internal/platform/tokenstore"
)

// newFile returns a file store rooted in a per-test temp directory.
func newFile(t *testing.T) *tokenstore.File {
	t.Helper()
	store, err := tokenstore.NewFile(t.TempDir())
	require.NoError(t, err)
	return store
}

/*
TestStores_RoundTrip runs the shared contract across both local backends:
absent reads as empty, set/get round-trips, clear removes, and clearing an
already empty store is a safe no-op.
*/
func TestStores_RoundTrip(t *testing.T) {
	ctx := context.Background()

	stores := map[string]tokenstore.Store{
		"memory": tokenstore.NewMemory(),
		"file":   newFile(t),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			token, err := store.Get(ctx)
			require.NoError(t, err)
			assert.Empty(t, token)

			require.NoError(t, store.Set(ctx, "header.payload.signature"))

			token, err = store.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, "header.payload.signature", token)

			require.NoError(t, store.Clear(ctx))
			require.NoError(t, store.Clear(ctx)) // idempotent

			token, err = store.Get(ctx)
			require.NoError(t, err)
			assert.Empty(t, token)
		})
	}
}

func TestFile_TrimsWhitespace(t *testing.T) {
	dir := t.TempDir()
	store, err := tokenstore.NewFile(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "token"), []byte("  a.b.c\n"), 0o600))

	token, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", token)
}

func TestFile_OwnerOnlyPermissions(t *testing.T) {
	dir := t.TempDir()
	store, err := tokenstore.NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), "a.b.c"))

	info, err := os.Stat(filepath.Join(dir, "token"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
