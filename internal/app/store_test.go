package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/team-insights-api/internal/config"
	"github.com/yukikurage/team-insights-api/internal/database"
	"github.com/yukikurage/team-insights-api/internal/models"
	"go.uber.org/zap"
)

func TestOpenStore_SQLite(t *testing.T) {
	cfg := &config.Config{
		DBDriver:   "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "insights.db"),
		GinMode:    "release",
	}

	store, closeFn, err := OpenStore(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer closeFn()

	db := database.GetDB()
	assert.True(t, db.Migrator().HasTable(&models.Team{}))
	assert.True(t, db.Migrator().HasIndex("tasks", "idx_tasks_project_updated"))

	require.NoError(t, db.Create(&models.Team{ID: "T1", Name: "Core"}).Error)
	team, err := store.Teams.FindByID(context.Background(), "T1")
	require.NoError(t, err)
	assert.Equal(t, "Core", team.Name)
}

func TestOpenStore_UnsupportedDriver(t *testing.T) {
	cfg := &config.Config{DBDriver: "oracle"}

	_, closeFn, err := OpenStore(context.Background(), cfg, zap.NewNop())

	assert.Error(t, err)
	assert.Nil(t, closeFn)
}
