package repo

import (
	"testing"
	"time"

	"github.com/Renishchandera/gameforge-ai/internal/infra/db"
	"github.com/Renishchandera/gameforge-ai/internal/modules/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a private in-memory SQLite database with every table migrated.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	d, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := d.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(d))
	return d
}

func seedUser(t *testing.T, d *gorm.DB, name string) *model.User {
	t.Helper()
	u := &model.User{Email: name + "@x.com", Username: name, PasswordHashPHC: "phc"}
	require.NoError(t, d.Create(u).Error)
	return u
}

func seedProject(t *testing.T, d *gorm.DB, owner uuid.UUID, name string) *model.Project {
	t.Helper()
	p := &model.Project{Name: name, OwnerID: owner}
	require.NoError(t, d.Create(p).Error)
	return p
}

func seedTask(t *testing.T, d *gorm.DB, projectID uuid.UUID, title, status, priority string, createdAt time.Time) *model.Task {
	t.Helper()
	task := &model.Task{ProjectID: projectID, Title: title, Status: status, Priority: priority, CreatedAt: createdAt}
	require.NoError(t, d.Create(task).Error)
	return task
}
