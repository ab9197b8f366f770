package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T, path string) *DB {
	t.Helper()
	database, err := Open(path, "test-key")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestRunMigrations_Idempotent(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t, filepath.Join(t.TempDir(), "data.db"))

	v, err := database.RunMigrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(migrations), v)

	v, err = database.RunMigrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(migrations), v)
}

func TestKV(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t, filepath.Join(t.TempDir(), "data.db"))
	_, err := database.RunMigrations(ctx)
	require.NoError(t, err)

	_, ok, err := database.Get(ctx, "clients")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, database.Set(ctx, "clients", "[]"))
	require.NoError(t, database.Set(ctx, "clients", `[{"id":"1"}]`))
	got, ok, err := database.Get(ctx, "clients")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"1"}]`, got)

	require.NoError(t, database.Delete(ctx, "clients"))
	require.NoError(t, database.Delete(ctx, "clients"))
	_, ok, err = database.Get(ctx, "clients")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpen_WrongKey(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.db")

	database, err := Open(path, "right-key")
	require.NoError(t, err)
	_, err = database.RunMigrations(ctx)
	require.NoError(t, err)
	require.NoError(t, database.Set(ctx, "theme", "dark"))
	require.NoError(t, database.Close())

	wrong, err := Open(path, "wrong-key")
	if err == nil {
		_, _, err = wrong.Get(ctx, "theme")
		wrong.Close()
	}
	assert.Error(t, err)
}
