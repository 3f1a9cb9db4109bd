package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yukikurage/team-insights-api/internal/constants"
	"github.com/yukikurage/team-insights-api/internal/models"
	"github.com/yukikurage/team-insights-api/internal/repository"
)

// EarningsRange names the window topEarningProjects sums over.
type EarningsRange string

const (
	RangeThisMonth EarningsRange = "this_month"
	RangeLastMonth EarningsRange = "last_month"
	RangeThisYear  EarningsRange = "this_year"
	RangeAllTime   EarningsRange = "all_time"
)

// ParseEarningsRange maps user input to a range. Anything unrecognized is
// all time.
func ParseEarningsRange(value string) EarningsRange {
	switch r := EarningsRange(strings.ToLower(strings.TrimSpace(value))); r {
	case RangeThisMonth, RangeLastMonth, RangeThisYear:
		return r
	default:
		return RangeAllTime
	}
}

// Start returns the inclusive lower bound of the range at now. None of the
// ranges has an upper bound, so last_month includes the current month.
func (r EarningsRange) Start(now time.Time) time.Time {
	switch r {
	case RangeThisMonth:
		return startOfMonth(now)
	case RangeLastMonth:
		return startOfMonth(now).AddDate(0, -1, 0)
	case RangeThisYear:
		return startOfYear(now.Year(), now.Location())
	default:
		return time.Unix(0, 0).UTC()
	}
}

// ProjectEarning is the completed-task income of one project.
type ProjectEarning struct {
	ProjectID          models.ID
	Name               string
	CompletedTaskCount int
	Earning            float64
}

// MonthlyIncome is one month of the yearly income curve. Value mirrors
// Billable.
type MonthlyIncome struct {
	Month       string
	Value       float64
	Billable    float64
	NonBillable float64
}

// EarningsAggregator buckets completed-task cost by time range or month.
type EarningsAggregator struct {
	teams    repository.TeamRepository
	projects repository.ProjectRepository
	tasks    repository.TaskRepository
	clock    Clock
}

// NewEarningsAggregator creates a new EarningsAggregator
func NewEarningsAggregator(store repository.Store, clock Clock) *EarningsAggregator {
	return &EarningsAggregator{
		teams:    store.Teams,
		projects: store.Projects,
		tasks:    store.Tasks,
		clock:    clock,
	}
}

// TopEarningProjects ranks the team's projects by the cost of tasks completed
// since the start of rng, highest first. Ties are ordered by project id.
func (a *EarningsAggregator) TopEarningProjects(ctx context.Context, teamID models.ID, rng EarningsRange) ([]ProjectEarning, error) {
	projectIDs, err := teamProjectIDs(ctx, a.teams, teamID)
	if err != nil {
		return nil, err
	}
	if len(projectIDs) == 0 {
		return []ProjectEarning{}, nil
	}

	start := rng.Start(a.clock.Now())
	tasks, err := a.tasks.ListByProjectIDs(ctx, projectIDs, repository.TaskFilter{
		ExcludeDeleted: true,
		Statuses:       []models.TaskStatus{models.TaskStatusCompleted},
		UpdatedFrom:    &start,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list completed tasks: %w", err)
	}

	earnings := groupEarnings(tasks, start)
	if len(earnings) == 0 {
		return earnings, nil
	}

	ids := make([]models.ID, len(earnings))
	for i, e := range earnings {
		ids[i] = e.ProjectID
	}
	projects, err := a.projects.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	names := make(map[models.ID]string, len(projects))
	for _, p := range projects {
		names[p.ID.Canonical()] = p.Name
	}
	for i := range earnings {
		if name, ok := names[earnings[i].ProjectID]; ok {
			earnings[i].Name = name
		}
	}

	return earnings, nil
}

// YearlyIncomeOverview returns twelve entries, January first. Completed-task
// cost lands in Billable and everything else in NonBillable, bucketed by the
// month the task was last updated.
func (a *EarningsAggregator) YearlyIncomeOverview(ctx context.Context, teamID models.ID, year int) ([]MonthlyIncome, error) {
	loc := a.clock.location()

	projectIDs, err := teamProjectIDs(ctx, a.teams, teamID)
	if err != nil {
		return nil, err
	}
	if len(projectIDs) == 0 {
		return bucketIncome(nil, year, loc), nil
	}

	from := startOfYear(year, loc)
	to := startOfYear(year+1, loc)
	tasks, err := a.tasks.ListByProjectIDs(ctx, projectIDs, repository.TaskFilter{
		ExcludeDeleted: true,
		UpdatedFrom:    &from,
		UpdatedTo:      &to,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return bucketIncome(tasks, year, loc), nil
}

// groupEarnings sums completed, non-deleted tasks updated at or after start
// per project. The store already filters; the checks here keep the result
// correct for backends that filter loosely.
func groupEarnings(tasks []models.Task, start time.Time) []ProjectEarning {
	index := make(map[models.ID]int)
	earnings := make([]ProjectEarning, 0)

	for _, task := range tasks {
		if task.IsDeleted || !task.Status.IsCompleted() || task.UpdatedAt.Before(start) {
			continue
		}
		projectID := task.ProjectID.Canonical()
		i, ok := index[projectID]
		if !ok {
			i = len(earnings)
			index[projectID] = i
			earnings = append(earnings, ProjectEarning{
				ProjectID: projectID,
				Name:      constants.UnknownProjectName,
			})
		}
		earnings[i].CompletedTaskCount++
		earnings[i].Earning += task.Cost()
	}

	sort.SliceStable(earnings, func(i, j int) bool {
		if earnings[i].Earning != earnings[j].Earning {
			return earnings[i].Earning > earnings[j].Earning
		}
		return earnings[i].ProjectID < earnings[j].ProjectID
	})
	return earnings
}

var monthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

func bucketIncome(tasks []models.Task, year int, loc *time.Location) []MonthlyIncome {
	months := make([]MonthlyIncome, len(monthLabels))
	for i, label := range monthLabels {
		months[i] = MonthlyIncome{Month: label}
	}

	for _, task := range tasks {
		if task.IsDeleted {
			continue
		}
		updated := task.UpdatedAt.In(loc)
		if updated.Year() != year {
			continue
		}
		m := &months[int(updated.Month())-1]
		if task.Status.IsCompleted() {
			m.Billable += task.Cost()
		} else {
			m.NonBillable += task.Cost()
		}
	}

	for i := range months {
		months[i].Value = months[i].Billable
	}
	return months
}

// teamProjectIDs resolves a team's project ids. A missing team resolves to no
// projects rather than an error.
func teamProjectIDs(ctx context.Context, teams repository.TeamRepository, teamID models.ID) ([]models.ID, error) {
	team, err := teams.FindByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	return models.UniqueIDs(team.ProjectIDs), nil
}
