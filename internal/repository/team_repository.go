package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/team-insights-api/internal/models"
	"gorm.io/gorm"
)

// GormTeamRepository is a GORM implementation of TeamRepository
type GormTeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &GormTeamRepository{db: db}
}

// FindByID finds a team by ID
func (r *GormTeamRepository) FindByID(ctx context.Context, id models.ID) (*models.Team, error) {
	return findTeam(r.db.WithContext(ctx), id)
}

// CreateWithProjects creates the team and links every listed project back to it
// in a single transaction.
func (r *GormTeamRepository) CreateWithProjects(ctx context.Context, team *models.Team) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return fmt.Errorf("create team: %w", err)
		}

		for _, projectID := range team.ProjectIDs {
			var project models.Project
			if err := tx.First(&project, "id = ?", string(projectID)).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("project %s: %w", projectID, ErrNotFound)
				}
				return fmt.Errorf("find project %s: %w", projectID, err)
			}

			if models.ContainsID(project.TeamIDs, team.ID) {
				continue
			}
			project.TeamIDs = append(project.TeamIDs, team.ID)
			if err := tx.Save(&project).Error; err != nil {
				return fmt.Errorf("link project %s: %w", projectID, err)
			}
		}

		return nil
	})
}

// AppendProjectID appends a project id to the team's project list
func (r *GormTeamRepository) AppendProjectID(ctx context.Context, teamID, projectID models.ID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		team, err := findTeam(tx, teamID)
		if err != nil {
			return err
		}

		if team.HasProject(projectID) {
			return nil
		}

		team.ProjectIDs = append(team.ProjectIDs, projectID)
		return tx.Save(team).Error
	})
}

func findTeam(db *gorm.DB, id models.ID) (*models.Team, error) {
	var team models.Team
	if err := db.First(&team, "id = ?", string(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &team, nil
}
