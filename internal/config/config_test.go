package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("STATS_TIMEZONE", "")

	cfg := Load()

	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "mongodb")
	t.Setenv("MONGO_DATABASE", "insights")
	t.Setenv("STATS_TIMEZONE", "Asia/Tokyo")

	cfg := Load()

	assert.Equal(t, "mongodb", cfg.DBDriver)
	assert.Equal(t, "insights", cfg.MongoDatabase)
	assert.Equal(t, "Asia/Tokyo", cfg.Location().String())
}

func TestLocation_UnknownZoneFallsBackToUTC(t *testing.T) {
	cfg := &Config{StatsTimezone: "Mars/Olympus_Mons"}
	assert.Equal(t, time.UTC, cfg.Location())
}
