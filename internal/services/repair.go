package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/team-insights-api/internal/models"
	"github.com/yukikurage/team-insights-api/internal/repository"
	"go.uber.org/zap"
)

// RepairReport summarizes one ConsistencyRepairer run.
type RepairReport struct {
	ProjectsScanned    int
	RelationshipsFixed int
	TeamsMissing       int
}

// ConsistencyRepairer propagates each project's team list onto the teams it
// names. It only ever adds project ids to teams: a team that lists a project
// which does not list it back is left alone, as is a team pointing at a
// project that no longer exists.
type ConsistencyRepairer struct {
	teams    repository.TeamRepository
	projects repository.ProjectRepository
	logger   *zap.Logger
}

// NewConsistencyRepairer creates a new ConsistencyRepairer
func NewConsistencyRepairer(store repository.Store, logger *zap.Logger) *ConsistencyRepairer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsistencyRepairer{
		teams:    store.Teams,
		projects: store.Projects,
		logger:   logger,
	}
}

// Repair scans every project with a non-empty team list and appends the
// project id to each referenced team that lacks it. Running it again over a
// repaired graph fixes nothing. On error the report covers the work done so
// far; every completed append stays in place and a rerun is safe.
func (r *ConsistencyRepairer) Repair(ctx context.Context) (RepairReport, error) {
	var report RepairReport

	projects, err := r.projects.ListWithTeams(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to list projects with teams: %w", err)
	}

	for _, project := range projects {
		teamIDs := models.UniqueIDs(project.TeamIDs)
		if len(teamIDs) == 0 {
			continue
		}
		report.ProjectsScanned++

		for _, teamID := range teamIDs {
			fixed, err := r.repairEdge(ctx, teamID, project.ID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					report.TeamsMissing++
					r.logger.Warn("project references missing team",
						zap.String("project_id", project.ID.String()),
						zap.String("team_id", teamID.String()),
					)
					continue
				}
				return report, fmt.Errorf("failed to repair team %s for project %s: %w", teamID, project.ID, err)
			}
			if fixed {
				report.RelationshipsFixed++
				r.logger.Info("relationship repaired",
					zap.String("team_id", teamID.String()),
					zap.String("project_id", project.ID.String()),
				)
			}
		}
	}

	r.logger.Info("relationship repair finished",
		zap.Int("projects_scanned", report.ProjectsScanned),
		zap.Int("relationships_fixed", report.RelationshipsFixed),
		zap.Int("teams_missing", report.TeamsMissing),
	)
	return report, nil
}

func (r *ConsistencyRepairer) repairEdge(ctx context.Context, teamID, projectID models.ID) (bool, error) {
	team, err := r.teams.FindByID(ctx, teamID)
	if err != nil {
		return false, err
	}
	if team.HasProject(projectID) {
		return false, nil
	}
	if err := r.teams.AppendProjectID(ctx, team.ID, projectID.Canonical()); err != nil {
		return false, err
	}
	return true, nil
}
