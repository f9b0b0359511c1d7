package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"starpro_store/internal/config"
	"starpro_store/internal/kv"
	"starpro_store/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_HydrateFailureReturnsError(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.db")

	db, err := kv.OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, db.Set(ctx, repository.KeyUsers, `{not json`))
	require.NoError(t, db.Close())

	t.Setenv("CONFIG_FILE", "")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("KV_BACKEND", config.BackendSQLite)
	t.Setenv("SQLITE_PATH", path)

	err = run()
	assert.ErrorIs(t, err, repository.ErrCorruptCollection)

	// the store was released and can be repaired by the next process
	db, err = kv.OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer db.Close()
	assert.NoError(t, db.Set(ctx, repository.KeyUsers, `[]`))
}

func TestOpenStore_CloseReleasesBackend(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.SQLitePath = filepath.Join(t.TempDir(), "store.db")

	store, closeStore, err := openStore(ctx, &cfg, slog.Default())
	require.NoError(t, err)
	pinger, ok := store.(kv.Pinger)
	require.True(t, ok)
	require.NoError(t, pinger.Ping(ctx))

	closeStore()
	assert.Error(t, pinger.Ping(ctx))

	cfg.KVBackend = config.BackendMemory
	store, closeStore, err = openStore(ctx, &cfg, slog.Default())
	require.NoError(t, err)
	assert.IsType(t, &kv.Memory{}, store)
	closeStore()
}
