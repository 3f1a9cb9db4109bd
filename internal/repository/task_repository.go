package repository

import (
	"context"

	"github.com/yukikurage/team-insights-api/internal/database"
	"github.com/yukikurage/team-insights-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// ListByProjectIDs retrieves tasks of the given projects with filtering
func (r *GormTaskRepository) ListByProjectIDs(ctx context.Context, projectIDs []models.ID, filter TaskFilter) ([]models.Task, error) {
	if len(projectIDs) == 0 {
		return []models.Task{}, nil
	}

	query := r.db.WithContext(ctx).Model(&models.Task{}).
		Scopes(
			database.InProjects(projectIDs),
			database.WithStatuses(filter.Statuses),
			database.UpdatedBetween(filter.UpdatedFrom, filter.UpdatedTo),
		)
	if filter.ExcludeDeleted {
		query = query.Scopes(database.ExcludeDeleted())
	}

	var tasks []models.Task
	if err := query.Order("tasks.created_at ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}
