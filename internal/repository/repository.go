package repository

import (
	"context"
	"errors"
	"time"

	"github.com/yukikurage/team-insights-api/internal/models"
)

// ErrNotFound is returned by every Entity Store implementation when a record
// looked up by id does not exist.
var ErrNotFound = errors.New("repository: record not found")

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	// FindByID finds a team by ID
	FindByID(ctx context.Context, id models.ID) (*models.Team, error)

	// CreateWithProjects creates a team and adds its id to every project it
	// lists, so both sides of each relationship start out in sync.
	CreateWithProjects(ctx context.Context, team *models.Team) error

	// AppendProjectID appends projectID to the team's project list. It is a
	// no-op when the id is already present.
	AppendProjectID(ctx context.Context, teamID, projectID models.ID) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// ListWithTeams lists every project whose team list is not empty
	ListWithTeams(ctx context.Context) ([]models.Project, error)

	// ListByIDs lists the projects with the given ids; unknown ids are skipped
	ListByIDs(ctx context.Context, ids []models.ID) ([]models.Project, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// ListByProjectIDs lists tasks of the given projects matching filter
	ListByProjectIDs(ctx context.Context, projectIDs []models.ID, filter TaskFilter) ([]models.Task, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// ListByIDs lists the users with the given ids; unknown ids are skipped
	ListByIDs(ctx context.Context, ids []models.ID) ([]models.User, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	ExcludeDeleted bool
	Statuses       []models.TaskStatus
	UpdatedFrom    *time.Time
	UpdatedTo      *time.Time
}

// Store groups the repositories of one backend.
type Store struct {
	Teams    TeamRepository
	Projects ProjectRepository
	Tasks    TaskRepository
	Users    UserRepository
}

func idStrings(ids []models.ID) []string {
	values := make([]string, len(ids))
	for i, id := range ids {
		values[i] = string(id.Canonical())
	}
	return values
}
