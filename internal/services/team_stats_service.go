package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/yukikurage/team-insights-api/internal/constants"
	"github.com/yukikurage/team-insights-api/internal/models"
	"github.com/yukikurage/team-insights-api/internal/repository"
	"go.uber.org/zap"
)

// OverviewStats counts the tasks of a team's scope.
type OverviewStats struct {
	CompletedTasks   int
	IncompletedTasks int
	OverdueTasks     int
	TotalIncome      float64
}

// MemberStat is one row of the team leaderboard.
type MemberStat struct {
	ID             models.ID
	Name           string
	Role           string
	Avatar         string
	TasksCompleted int
}

// TeamStatsService answers the aggregate team queries. Missing teams and
// out-of-scope projects yield zero or empty results instead of errors.
type TeamStatsService struct {
	store    repository.Store
	earnings *EarningsAggregator
	clock    Clock
	logger   *zap.Logger
}

// NewTeamStatsService creates a new TeamStatsService
func NewTeamStatsService(store repository.Store, clock Clock, logger *zap.Logger) *TeamStatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeamStatsService{
		store:    store,
		earnings: NewEarningsAggregator(store, clock),
		clock:    clock,
		logger:   logger,
	}
}

// OverviewStats summarizes the non-deleted tasks of the team's projects, or of
// projectID alone when it is set. A projectID the team does not list gives
// all zeros.
func (s *TeamStatsService) OverviewStats(ctx context.Context, teamID, projectID models.ID) (OverviewStats, error) {
	var stats OverviewStats

	team, err := s.findTeam(ctx, teamID)
	if err != nil || team == nil {
		return stats, err
	}

	scope := models.UniqueIDs(team.ProjectIDs)
	if !projectID.IsZero() {
		if !team.HasProject(projectID) {
			s.logger.Debug("project outside team scope",
				zap.String("team_id", teamID.String()),
				zap.String("project_id", projectID.String()),
			)
			return stats, nil
		}
		scope = []models.ID{projectID.Canonical()}
	}
	if len(scope) == 0 {
		return stats, nil
	}

	tasks, err := s.store.Tasks.ListByProjectIDs(ctx, scope, repository.TaskFilter{ExcludeDeleted: true})
	if err != nil {
		return stats, fmt.Errorf("failed to list tasks: %w", err)
	}

	now := s.clock.Now()
	for _, task := range tasks {
		if task.IsDeleted {
			continue
		}
		if task.Status.IsCompleted() {
			stats.CompletedTasks++
			stats.TotalIncome += task.Cost()
			continue
		}
		stats.IncompletedTasks++
		if task.IsOverdue(now) {
			stats.OverdueTasks++
		}
	}

	return stats, nil
}

// MemberStats ranks team members by completed tasks across the team's
// projects, highest first. Ties are ordered by member id.
func (s *TeamStatsService) MemberStats(ctx context.Context, teamID models.ID) ([]MemberStat, error) {
	team, err := s.findTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return []MemberStat{}, nil
	}

	memberIDs := models.UniqueIDs(team.MemberIDs)
	if len(memberIDs) == 0 {
		return []MemberStat{}, nil
	}

	users, err := s.store.Users.ListByIDs(ctx, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	usersByID := make(map[models.ID]models.User, len(users))
	for _, u := range users {
		usersByID[u.ID.Canonical()] = u
	}

	completed := make(map[models.ID]int, len(memberIDs))
	if projectIDs := models.UniqueIDs(team.ProjectIDs); len(projectIDs) > 0 {
		tasks, err := s.store.Tasks.ListByProjectIDs(ctx, projectIDs, repository.TaskFilter{
			ExcludeDeleted: true,
			Statuses:       []models.TaskStatus{models.TaskStatusCompleted},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list completed tasks: %w", err)
		}
		for _, task := range tasks {
			if task.IsDeleted || !task.Status.IsCompleted() {
				continue
			}
			for _, assignee := range models.UniqueIDs(task.AssigneeIDs) {
				completed[assignee]++
			}
		}
	}

	stats := make([]MemberStat, 0, len(memberIDs))
	for _, id := range memberIDs {
		stat := MemberStat{
			ID:             id,
			Name:           constants.UnknownMemberName,
			Role:           constants.DefaultMemberRole,
			TasksCompleted: completed[id],
		}
		if u, ok := usersByID[id]; ok {
			if u.Name != "" {
				stat.Name = u.Name
			}
			if u.JobTitle != "" {
				stat.Role = u.JobTitle
			}
			stat.Avatar = u.Avatar
		}
		stats = append(stats, stat)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].TasksCompleted != stats[j].TasksCompleted {
			return stats[i].TasksCompleted > stats[j].TasksCompleted
		}
		return stats[i].ID < stats[j].ID
	})
	return stats, nil
}

// TeamProgress averages the progress weights of the team members' tasks
// across the team's projects. A missing team has progress 0.
func (s *TeamStatsService) TeamProgress(ctx context.Context, teamID models.ID) (int, error) {
	team, err := s.findTeam(ctx, teamID)
	if err != nil || team == nil {
		return 0, err
	}

	projectIDs := models.UniqueIDs(team.ProjectIDs)
	if len(projectIDs) == 0 {
		return 0, nil
	}

	tasks, err := s.store.Tasks.ListByProjectIDs(ctx, projectIDs, repository.TaskFilter{ExcludeDeleted: true})
	if err != nil {
		return 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return TeamProgress(tasks, team.MemberIDs), nil
}

// TopEarningProjects delegates to the EarningsAggregator.
func (s *TeamStatsService) TopEarningProjects(ctx context.Context, teamID models.ID, rng EarningsRange) ([]ProjectEarning, error) {
	return s.earnings.TopEarningProjects(ctx, teamID, rng)
}

// YearlyIncomeOverview delegates to the EarningsAggregator.
func (s *TeamStatsService) YearlyIncomeOverview(ctx context.Context, teamID models.ID, year int) ([]MonthlyIncome, error) {
	return s.earnings.YearlyIncomeOverview(ctx, teamID, year)
}

// CurrentYear is the calendar year of the service clock.
func (s *TeamStatsService) CurrentYear() int {
	return s.clock.Now().Year()
}

// findTeam returns nil without an error when the team does not exist.
func (s *TeamStatsService) findTeam(ctx context.Context, teamID models.ID) (*models.Team, error) {
	team, err := s.store.Teams.FindByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	return team, nil
}
