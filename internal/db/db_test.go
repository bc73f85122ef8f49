package db

import (
	"path/filepath"
	"testing"

	"gposync/internal/config"
	"gposync/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "a.db?"+sqlitePragmas, SQLiteDSN("a.db"))
	assert.Equal(t, "file:a.db?mode=rwc&"+sqlitePragmas, SQLiteDSN("file:a.db?mode=rwc"))
	assert.Equal(t, "a.db?_pragma=foreign_keys(0)", SQLiteDSN("a.db?_pragma=foreign_keys(0)"))
}

func TestOpenAndMigrate(t *testing.T) {
	gdb, err := Open(config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb))
	require.NoError(t, Ping(t.Context(), gdb))

	user := models.User{Name: "alice", Password: "x"}
	require.NoError(t, gdb.Create(&user).Error)
	require.NoError(t, gdb.Create(&models.Subscription{UserID: user.ID, URL: "https://example.com/feed", Changed: 1}).Error)

	// foreign keys are on, so deleting the user drops its subscriptions
	require.NoError(t, gdb.Delete(&user).Error)
	var count int64
	require.NoError(t, gdb.Model(&models.Subscription{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "mysql", DSN: "x"})
	assert.Error(t, err)
}
