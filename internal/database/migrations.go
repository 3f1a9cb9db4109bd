package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type tableIndex struct {
	table   string
	name    string
	columns string
}

// statsIndexes back the aggregate task queries, which always filter by
// project and usually by status and update time.
var statsIndexes = []tableIndex{
	{"tasks", "idx_tasks_project_id", "project_id"},
	{"tasks", "idx_tasks_status", "status"},
	{"tasks", "idx_tasks_updated_at", "updated_at"},
	{"tasks", "idx_tasks_project_updated", "project_id, is_deleted, updated_at"},
}

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB, log *zap.Logger) error {
	for _, idx := range statsIndexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			log.Debug("index already exists, skipping", zap.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("created index",
			zap.String("index", idx.name),
			zap.String("table", idx.table),
			zap.String("columns", idx.columns),
		)
	}

	return nil
}
