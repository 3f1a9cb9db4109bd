package repository

import (
	"context"

	"github.com/yukikurage/team-insights-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// ListWithTeams lists projects that reference at least one team
func (r *GormProjectRepository) ListWithTeams(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project

	// team_ids is JSON text; the SQL filter only prunes the obvious empties
	if err := r.db.WithContext(ctx).
		Where("team_ids IS NOT NULL AND team_ids NOT IN ?", []string{"", "null", "[]"}).
		Order("id").
		Find(&projects).Error; err != nil {
		return nil, err
	}

	result := projects[:0]
	for _, p := range projects {
		if len(p.TeamIDs) > 0 {
			result = append(result, p)
		}
	}
	return result, nil
}

// ListByIDs lists projects by ID
func (r *GormProjectRepository) ListByIDs(ctx context.Context, ids []models.ID) ([]models.Project, error) {
	if len(ids) == 0 {
		return []models.Project{}, nil
	}

	var projects []models.Project
	if err := r.db.WithContext(ctx).Where("id IN ?", idStrings(ids)).Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}
