package services

import (
	"path/filepath"
	"testing"
	"time"

	"gposync/internal/config"
	"gposync/internal/db"
	"gposync/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeClock is a settable clock for diff-sync tests.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func setup(t *testing.T) (*Services, *gorm.DB, *fakeClock) {
	t.Helper()

	gdb, err := db.Open(config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "gposync.db"),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	return NewWithClock(gdb, clock.Now), gdb, clock
}

func createUser(t *testing.T, svc *Services, name, password string) *models.User {
	t.Helper()
	user, err := svc.Users.Create(t.Context(), name, password)
	require.NoError(t, err)
	return user
}
