package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/team-insights-api/internal/constants"
	"github.com/yukikurage/team-insights-api/internal/models"
	"github.com/yukikurage/team-insights-api/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrTeamNotFound    = errors.New("team not found")
	ErrProjectNotFound = errors.New("one or more projects do not exist")
	ErrInvalidTeamName = errors.New("team name cannot be empty")
	ErrTeamNameTooLong = errors.New("team name is too long")
)

// TeamService handles direct team reads and writes.
type TeamService struct {
	teams  repository.TeamRepository
	logger *zap.Logger
}

// NewTeamService creates a new TeamService
func NewTeamService(teams repository.TeamRepository, logger *zap.Logger) *TeamService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeamService{
		teams:  teams,
		logger: logger,
	}
}

// CreateTeamInput represents input for creating a team
type CreateTeamInput struct {
	Name       string
	MemberIDs  []models.ID
	ProjectIDs []models.ID
}

// GetTeam returns the team or ErrTeamNotFound.
func (s *TeamService) GetTeam(ctx context.Context, teamID models.ID) (*models.Team, error) {
	team, err := s.teams.FindByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	return team, nil
}

// CreateTeam creates a team with its initial members and projects and links
// each project back to it.
func (s *TeamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidTeamName
	}
	if len(name) > constants.MaxTeamNameLength {
		return nil, ErrTeamNameTooLong
	}

	team := &models.Team{
		ID:         models.NewID(),
		Name:       name,
		MemberIDs:  models.UniqueIDs(input.MemberIDs),
		ProjectIDs: models.UniqueIDs(input.ProjectIDs),
	}

	if err := s.teams.CreateWithProjects(ctx, team); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	s.logger.Info("team created",
		zap.String("team_id", team.ID.String()),
		zap.Int("projects", len(team.ProjectIDs)),
		zap.Int("members", len(team.MemberIDs)),
	)
	return team, nil
}
