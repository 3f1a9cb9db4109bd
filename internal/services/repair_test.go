package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/team-insights-api/internal/models"
	"github.com/yukikurage/team-insights-api/internal/repository"
	"go.uber.org/zap"
)

func (suite *ServiceTestSuite) TestRepair_AppendsMissingBackEdge() {
	suite.createProject("P1", "Apollo", "T1")
	suite.createTeam("T1", nil, []models.ID{})

	repairer := NewConsistencyRepairer(suite.store, zap.NewNop())
	report, err := repairer.Repair(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal(1, report.ProjectsScanned)
	suite.Equal(1, report.RelationshipsFixed)
	suite.Equal([]models.ID{"P1"}, suite.reloadTeam("T1").ProjectIDs)
}

func (suite *ServiceTestSuite) TestRepair_IsIdempotent() {
	suite.createProject("P1", "Apollo", "T1", "T2")
	suite.createProject("P2", "Gemini", "T1")
	suite.createTeam("T1", nil, []models.ID{"P2"})
	suite.createTeam("T2", nil, nil)

	repairer := NewConsistencyRepairer(suite.store, nil)

	first, err := repairer.Repair(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(2, first.ProjectsScanned)
	suite.Equal(2, first.RelationshipsFixed)

	second, err := repairer.Repair(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(2, second.ProjectsScanned)
	suite.Equal(0, second.RelationshipsFixed)

	suite.Equal([]models.ID{"P2", "P1"}, suite.reloadTeam("T1").ProjectIDs)
	suite.Equal([]models.ID{"P1"}, suite.reloadTeam("T2").ProjectIDs)
}

func (suite *ServiceTestSuite) TestRepair_OnlyPropagatesProjectToTeam() {
	// T1 lists P9 but P9 does not list T1, and T1 lists a project that does not exist
	suite.createProject("P9", "Orphaned")
	suite.createTeam("T1", nil, []models.ID{"P9", "P-deleted"})

	report, err := NewConsistencyRepairer(suite.store, nil).Repair(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal(0, report.ProjectsScanned)
	suite.Equal(0, report.RelationshipsFixed)
	suite.Equal([]models.ID{"P9", "P-deleted"}, suite.reloadTeam("T1").ProjectIDs)

	var project models.Project
	suite.Require().NoError(suite.db.First(&project, "id = ?", "P9").Error)
	suite.Empty(project.TeamIDs)
}

func (suite *ServiceTestSuite) TestRepair_SkipsMissingTeams() {
	suite.createProject("P1", "Apollo", "ghost", "T1")
	suite.createTeam("T1", nil, nil)

	report, err := NewConsistencyRepairer(suite.store, nil).Repair(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal(1, report.ProjectsScanned)
	suite.Equal(1, report.RelationshipsFixed)
	suite.Equal(1, report.TeamsMissing)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.Team{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *ServiceTestSuite) TestRepair_ComparesCanonicalIDs() {
	suite.createProject("P1", "Apollo", " T1 ")
	suite.createTeam("T1", nil, []models.ID{"P1 "})

	report, err := NewConsistencyRepairer(suite.store, nil).Repair(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal(0, report.RelationshipsFixed)
}

type stubTeamRepository struct {
	teams     map[models.ID]*models.Team
	findErr   map[models.ID]error
	appendErr error
	appended  []models.ID
}

func (s *stubTeamRepository) FindByID(ctx context.Context, id models.ID) (*models.Team, error) {
	if err, ok := s.findErr[id]; ok {
		return nil, err
	}
	team, ok := s.teams[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *team
	return &copied, nil
}

func (s *stubTeamRepository) CreateWithProjects(ctx context.Context, team *models.Team) error {
	return nil
}

func (s *stubTeamRepository) AppendProjectID(ctx context.Context, teamID, projectID models.ID) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.appended = append(s.appended, teamID+"->"+projectID)
	team := s.teams[teamID]
	team.ProjectIDs = append(team.ProjectIDs, projectID)
	return nil
}

type stubProjectRepository struct {
	projects []models.Project
	err      error
}

func (s *stubProjectRepository) ListWithTeams(ctx context.Context) ([]models.Project, error) {
	if s.err != nil {
		return nil, s.err
	}
	return append([]models.Project(nil), s.projects...), nil
}

func (s *stubProjectRepository) ListByIDs(ctx context.Context, ids []models.ID) ([]models.Project, error) {
	return nil, s.err
}

func TestRepair_StopsOnStoreErrorWithPartialReport(t *testing.T) {
	errBoom := errors.New("store unavailable")
	teams := &stubTeamRepository{
		teams: map[models.ID]*models.Team{
			"T1": {ID: "T1"},
		},
		findErr: map[models.ID]error{"T2": errBoom},
	}
	projects := &stubProjectRepository{projects: []models.Project{
		{ID: "P1", TeamIDs: []models.ID{"T1"}},
		{ID: "P2", TeamIDs: []models.ID{"T2"}},
		{ID: "P3", TeamIDs: []models.ID{"T1"}},
	}}

	repairer := NewConsistencyRepairer(repository.Store{Teams: teams, Projects: projects}, nil)
	report, err := repairer.Repair(context.Background())

	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, 2, report.ProjectsScanned)
	assert.Equal(t, 1, report.RelationshipsFixed)
	assert.Equal(t, []models.ID{"T1->P1"}, teams.appended)

	// a rerun after the outage completes the remaining work
	delete(teams.findErr, "T2")
	teams.teams["T2"] = &models.Team{ID: "T2"}
	report, err = repairer.Repair(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.ProjectsScanned)
	assert.Equal(t, 2, report.RelationshipsFixed)
}

func TestRepair_ListFailure(t *testing.T) {
	errBoom := errors.New("timeout")
	repairer := NewConsistencyRepairer(repository.Store{
		Teams:    &stubTeamRepository{},
		Projects: &stubProjectRepository{err: errBoom},
	}, nil)

	report, err := repairer.Repair(context.Background())

	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, RepairReport{}, report)
}
