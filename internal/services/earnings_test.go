package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/team-insights-api/internal/constants"
	"github.com/yukikurage/team-insights-api/internal/models"
)

func TestParseEarningsRange(t *testing.T) {
	assert.Equal(t, RangeThisMonth, ParseEarningsRange("this_month"))
	assert.Equal(t, RangeLastMonth, ParseEarningsRange(" LAST_MONTH "))
	assert.Equal(t, RangeThisYear, ParseEarningsRange("this_year"))
	assert.Equal(t, RangeAllTime, ParseEarningsRange("all_time"))
	assert.Equal(t, RangeAllTime, ParseEarningsRange("forever"))
	assert.Equal(t, RangeAllTime, ParseEarningsRange(""))
}

func TestEarningsRange_Start(t *testing.T) {
	now := time.Date(2026, time.January, 20, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), RangeThisMonth.Start(now))
	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), RangeLastMonth.Start(now))
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), RangeThisYear.Start(now))
	assert.True(t, RangeAllTime.Start(now).Equal(time.Unix(0, 0)))
}

func TestEarningsRange_StartUsesClockLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 2026-10-31 20:00 UTC is already November in Tokyo
	clock := NewClock(func() time.Time { return time.Date(2026, time.October, 31, 20, 0, 0, 0, time.UTC) }, tokyo)

	start := RangeThisMonth.Start(clock.Now())
	assert.Equal(t, time.November, start.Month())
	assert.Equal(t, tokyo, start.Location())
}

func TestGroupEarnings_SortsByEarningThenProjectID(t *testing.T) {
	start := time.Unix(0, 0)
	updated := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	tasks := []models.Task{
		{ProjectID: "p-b", Status: models.TaskStatusCompleted, ActualCost: cost(40), UpdatedAt: updated},
		{ProjectID: "p-c", Status: models.TaskStatusCompleted, ActualCost: cost(90), UpdatedAt: updated},
		{ProjectID: "p-a", Status: models.TaskStatusCompleted, ActualCost: cost(15), UpdatedAt: updated},
		{ProjectID: "p-a", Status: "completed", ActualCost: cost(25), UpdatedAt: updated},
		{ProjectID: "p-a", Status: models.TaskStatusCompleted, UpdatedAt: updated},
		{ProjectID: "p-c", Status: models.TaskStatusQA, ActualCost: cost(1000), UpdatedAt: updated},
		{ProjectID: "p-c", Status: models.TaskStatusCompleted, ActualCost: cost(1000), UpdatedAt: updated, IsDeleted: true},
	}

	earnings := groupEarnings(tasks, start)

	assert.Equal(t, []ProjectEarning{
		{ProjectID: "p-c", Name: constants.UnknownProjectName, CompletedTaskCount: 1, Earning: 90},
		{ProjectID: "p-a", Name: constants.UnknownProjectName, CompletedTaskCount: 3, Earning: 40},
		{ProjectID: "p-b", Name: constants.UnknownProjectName, CompletedTaskCount: 1, Earning: 40},
	}, earnings)
}

func TestBucketIncome_AlwaysTwelveMonths(t *testing.T) {
	months := bucketIncome(nil, 2026, time.UTC)

	assert.Len(t, months, 12)
	for i, m := range months {
		assert.Equal(t, monthLabels[i], m.Month)
		assert.Zero(t, m.Value)
		assert.Zero(t, m.Billable)
		assert.Zero(t, m.NonBillable)
	}
}

func TestBucketIncome_SplitsBillable(t *testing.T) {
	tasks := []models.Task{
		{Status: models.TaskStatusCompleted, ActualCost: cost(100), UpdatedAt: time.Date(2026, time.January, 3, 0, 0, 0, 0, time.UTC)},
		{Status: models.TaskStatusTodo, ActualCost: cost(30), UpdatedAt: time.Date(2026, time.January, 31, 23, 0, 0, 0, time.UTC)},
		{Status: models.TaskStatusCompleted, UpdatedAt: time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)},
		{Status: models.TaskStatusCompleted, ActualCost: cost(7), UpdatedAt: time.Date(2026, time.December, 31, 12, 0, 0, 0, time.UTC)},
		{Status: models.TaskStatusCompleted, ActualCost: cost(500), UpdatedAt: time.Date(2025, time.December, 31, 12, 0, 0, 0, time.UTC)},
		{Status: models.TaskStatusCompleted, ActualCost: cost(500), UpdatedAt: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), IsDeleted: true},
	}

	months := bucketIncome(tasks, 2026, time.UTC)

	assert.Len(t, months, 12)
	assert.Equal(t, MonthlyIncome{Month: "Jan", Value: 100, Billable: 100, NonBillable: 30}, months[0])
	assert.Equal(t, MonthlyIncome{Month: "Feb"}, months[1])
	assert.Equal(t, MonthlyIncome{Month: "Mar"}, months[2])
	assert.Equal(t, MonthlyIncome{Month: "Dec", Value: 7, Billable: 7}, months[11])
}

func (suite *ServiceTestSuite) TestTopEarningProjects_ThisMonth() {
	suite.createTeam("T1", []models.ID{"u1"}, []models.ID{"P1", "P2"})
	suite.createProject("P1", "Apollo", "T1")
	suite.createProject("P2", "Gemini", "T1")
	suite.createTask(models.Task{
		ProjectID: "P1", Status: models.TaskStatusCompleted, ActualCost: cost(100),
		UpdatedAt: time.Date(2026, time.October, 5, 9, 0, 0, 0, time.UTC),
	})
	suite.createTask(models.Task{
		ProjectID: "P2", Status: models.TaskStatusCompleted, ActualCost: cost(50),
		UpdatedAt: time.Date(2026, time.September, 20, 9, 0, 0, 0, time.UTC),
	})

	aggregator := NewEarningsAggregator(suite.store, suite.clock)

	earnings, err := aggregator.TopEarningProjects(suite.ctx, "T1", RangeThisMonth)
	suite.Require().NoError(err)
	suite.Equal([]ProjectEarning{
		{ProjectID: "P1", Name: "Apollo", CompletedTaskCount: 1, Earning: 100},
	}, earnings)

	earnings, err = aggregator.TopEarningProjects(suite.ctx, "T1", RangeLastMonth)
	suite.Require().NoError(err)
	suite.Require().Len(earnings, 2)
	suite.Equal(models.ID("P1"), earnings[0].ProjectID)
	suite.Equal(models.ID("P2"), earnings[1].ProjectID)
	suite.Equal(50.0, earnings[1].Earning)
}

func (suite *ServiceTestSuite) TestTopEarningProjects_UnknownProjectAndAllTime() {
	suite.createTeam("T1", nil, []models.ID{"P1", "P-gone"})
	suite.createProject("P1", "Apollo", "T1")
	suite.createTask(models.Task{
		ProjectID: "P-gone", Status: models.TaskStatusCompleted, ActualCost: cost(300),
		UpdatedAt: time.Date(2019, time.June, 1, 0, 0, 0, 0, time.UTC),
	})
	suite.createTask(models.Task{
		ProjectID: "P1", Status: models.TaskStatusCompleted, ActualCost: cost(20),
		UpdatedAt: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
	})
	suite.createTask(models.Task{ProjectID: "P1", Status: models.TaskStatusInProgress, ActualCost: cost(999)})

	aggregator := NewEarningsAggregator(suite.store, suite.clock)

	earnings, err := aggregator.TopEarningProjects(suite.ctx, "T1", ParseEarningsRange("whatever"))
	suite.Require().NoError(err)
	suite.Equal([]ProjectEarning{
		{ProjectID: "P-gone", Name: constants.UnknownProjectName, CompletedTaskCount: 1, Earning: 300},
		{ProjectID: "P1", Name: "Apollo", CompletedTaskCount: 1, Earning: 20},
	}, earnings)

	earnings, err = aggregator.TopEarningProjects(suite.ctx, "T1", RangeThisYear)
	suite.Require().NoError(err)
	suite.Len(earnings, 1)
}

func (suite *ServiceTestSuite) TestTopEarningProjects_DegenerateTeams() {
	suite.createTeam("T-empty", nil, nil)
	aggregator := NewEarningsAggregator(suite.store, suite.clock)

	earnings, err := aggregator.TopEarningProjects(suite.ctx, "T-empty", RangeAllTime)
	suite.Require().NoError(err)
	suite.NotNil(earnings)
	suite.Empty(earnings)

	earnings, err = aggregator.TopEarningProjects(suite.ctx, "ghost", RangeAllTime)
	suite.Require().NoError(err)
	suite.Empty(earnings)
}

func (suite *ServiceTestSuite) TestYearlyIncomeOverview() {
	suite.createTeam("T1", nil, []models.ID{"P1"})
	suite.createProject("P1", "Apollo", "T1")
	suite.createProject("P2", "Other")
	suite.createTask(models.Task{
		ProjectID: "P1", Status: models.TaskStatusCompleted, ActualCost: cost(120),
		UpdatedAt: time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC),
	})
	suite.createTask(models.Task{
		ProjectID: "P1", Status: models.TaskStatusInReview, ActualCost: cost(45),
		UpdatedAt: time.Date(2026, time.April, 28, 0, 0, 0, 0, time.UTC),
	})
	suite.createTask(models.Task{
		ProjectID: "P1", Status: models.TaskStatusCompleted, ActualCost: cost(80),
		UpdatedAt: time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC), IsDeleted: true,
	})
	suite.createTask(models.Task{
		ProjectID: "P1", Status: models.TaskStatusCompleted, ActualCost: cost(60),
		UpdatedAt: time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC),
	})
	suite.createTask(models.Task{
		ProjectID: "P2", Status: models.TaskStatusCompleted, ActualCost: cost(1000),
		UpdatedAt: time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC),
	})

	months, err := NewEarningsAggregator(suite.store, suite.clock).YearlyIncomeOverview(suite.ctx, "T1", 2026)

	suite.Require().NoError(err)
	suite.Require().Len(months, 12)
	suite.Equal(MonthlyIncome{Month: "Apr", Value: 120, Billable: 120, NonBillable: 45}, months[3])
	for i, m := range months {
		suite.Equal(monthLabels[i], m.Month)
		if i != 3 {
			suite.Zero(m.Billable)
			suite.Zero(m.NonBillable)
		}
	}
}

func (suite *ServiceTestSuite) TestYearlyIncomeOverview_NoProjects() {
	suite.createTeam("T1", nil, nil)
	aggregator := NewEarningsAggregator(suite.store, suite.clock)

	for _, teamID := range []models.ID{"T1", "ghost"} {
		months, err := aggregator.YearlyIncomeOverview(suite.ctx, teamID, 2026)
		suite.Require().NoError(err)
		suite.Len(months, 12)
		suite.Equal("Jan", months[0].Month)
		suite.Equal("Dec", months[11].Month)
	}
}

func (suite *ServiceTestSuite) TestEarnings_TimestampsWrittenWithOffset() {
	eastern := time.FixedZone("EST", -5*60*60)
	suite.createTeam("T1", nil, []models.ID{"P1"})
	suite.createProject("P1", "Apollo", "T1")
	// 2026-10-01T03:00Z
	suite.createTask(models.Task{
		ProjectID: "P1", Status: models.TaskStatusCompleted, ActualCost: cost(100),
		UpdatedAt: time.Date(2026, time.September, 30, 22, 0, 0, 0, eastern),
	})
	// 2026-01-01T03:00Z
	suite.createTask(models.Task{
		ProjectID: "P1", Status: models.TaskStatusCompleted, ActualCost: cost(40),
		UpdatedAt: time.Date(2025, time.December, 31, 22, 0, 0, 0, eastern),
	})

	aggregator := NewEarningsAggregator(suite.store, suite.clock)

	earnings, err := aggregator.TopEarningProjects(suite.ctx, "T1", RangeThisMonth)
	suite.Require().NoError(err)
	suite.Equal([]ProjectEarning{
		{ProjectID: "P1", Name: "Apollo", CompletedTaskCount: 1, Earning: 100},
	}, earnings)

	months, err := aggregator.YearlyIncomeOverview(suite.ctx, "T1", 2026)
	suite.Require().NoError(err)
	suite.Equal(40.0, months[0].Billable)
	suite.Equal(100.0, months[9].Billable)
}
