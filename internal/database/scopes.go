package database

import (
	"time"

	"github.com/yukikurage/team-insights-api/internal/models"
	"gorm.io/gorm"
)

// InProjects restricts a task query to the given project ids
func InProjects(projectIDs []models.ID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		values := make([]string, len(projectIDs))
		for i, id := range projectIDs {
			values[i] = string(id.Canonical())
		}
		return db.Where("tasks.project_id IN ?", values)
	}
}

// ExcludeDeleted drops soft-deleted tasks
func ExcludeDeleted() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tasks.is_deleted = ?", false)
	}
}

// WithStatuses matches any of the statuses regardless of the stored case
func WithStatuses(statuses []models.TaskStatus) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(statuses) == 0 {
			return db
		}
		values := make([]string, len(statuses))
		for i, s := range statuses {
			values[i] = string(s.Normalize())
		}
		return db.Where("UPPER(tasks.status) IN ?", values)
	}
}

// UpdatedBetween applies a half-open [from, to) window on updated_at. Either
// bound may be nil.
func UpdatedBetween(from, to *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where("tasks.updated_at >= ?", from.UTC())
		}
		if to != nil {
			db = db.Where("tasks.updated_at < ?", to.UTC())
		}
		return db
	}
}
