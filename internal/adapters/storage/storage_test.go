package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/farum-support/internal/adapters/storage"
	"github.com/PabloGalante/farum-support/internal/config"
)

func TestOpenBackends(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()

	stores, err := storage.Open(ctx, cfg)
	require.NoError(t, err)
	assert.NotNil(t, stores.History)
	assert.NoError(t, stores.Close())

	cfg.Storage.Backend = "sqlite"
	cfg.Storage.SQLitePath = filepath.Join(t.TempDir(), "farum.db")
	stores, err = storage.Open(ctx, cfg)
	require.NoError(t, err)
	assert.NotNil(t, stores.Sessions)
	assert.NoError(t, stores.Close())

	cfg.Storage.Backend = "redis"
	_, err = storage.Open(ctx, cfg)
	assert.Error(t, err)
}
