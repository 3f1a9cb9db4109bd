package dto

import (
	"github.com/yukikurage/team-insights-api/internal/models"
	"github.com/yukikurage/team-insights-api/internal/services"
)

// OverviewStatsDTO represents the task overview of a team
type OverviewStatsDTO struct {
	CompletedTasks   int     `json:"completedTasks"`
	IncompletedTasks int     `json:"incompletedTasks"`
	OverdueTasks     int     `json:"overdueTasks"`
	TotalIncome      float64 `json:"totalIncome"`
}

// MemberStatDTO represents one leaderboard row
type MemberStatDTO struct {
	ID             models.ID `json:"id"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	Avatar         string    `json:"avatar"`
	TasksCompleted int       `json:"tasksCompleted"`
}

// ProjectEarningDTO represents one project in the earnings ranking
type ProjectEarningDTO struct {
	ProjectID          models.ID `json:"projectId"`
	Name               string    `json:"name"`
	CompletedTaskCount int       `json:"completedTaskCount"`
	Earning            float64   `json:"earning"`
}

// MonthlyIncomeDTO represents one month of the income overview
type MonthlyIncomeDTO struct {
	Month       string  `json:"month"`
	Value       float64 `json:"value"`
	Billable    float64 `json:"billable"`
	NonBillable float64 `json:"nonBillable"`
}

// ProgressDTO represents a team's progress percentage
type ProgressDTO struct {
	TeamID   models.ID `json:"teamId"`
	Progress int       `json:"progress"`
}

// RepairReportDTO represents the result of a relationship repair run
type RepairReportDTO struct {
	ProjectsScanned    int `json:"projectsScanned"`
	RelationshipsFixed int `json:"relationshipsFixed"`
	TeamsMissing       int `json:"teamsMissing"`
}

// Conversion functions

// ToOverviewStatsDTO converts OverviewStats to its DTO
func ToOverviewStatsDTO(stats services.OverviewStats) OverviewStatsDTO {
	return OverviewStatsDTO{
		CompletedTasks:   stats.CompletedTasks,
		IncompletedTasks: stats.IncompletedTasks,
		OverdueTasks:     stats.OverdueTasks,
		TotalIncome:      stats.TotalIncome,
	}
}

// ToMemberStatDTOs converts member stats to DTOs, keeping their order
func ToMemberStatDTOs(stats []services.MemberStat) []MemberStatDTO {
	dtos := make([]MemberStatDTO, len(stats))
	for i, s := range stats {
		dtos[i] = MemberStatDTO{
			ID:             s.ID,
			Name:           s.Name,
			Role:           s.Role,
			Avatar:         s.Avatar,
			TasksCompleted: s.TasksCompleted,
		}
	}
	return dtos
}

// ToProjectEarningDTOs converts project earnings to DTOs, keeping their order
func ToProjectEarningDTOs(earnings []services.ProjectEarning) []ProjectEarningDTO {
	dtos := make([]ProjectEarningDTO, len(earnings))
	for i, e := range earnings {
		dtos[i] = ProjectEarningDTO{
			ProjectID:          e.ProjectID,
			Name:               e.Name,
			CompletedTaskCount: e.CompletedTaskCount,
			Earning:            e.Earning,
		}
	}
	return dtos
}

// ToMonthlyIncomeDTOs converts the monthly income curve to DTOs
func ToMonthlyIncomeDTOs(months []services.MonthlyIncome) []MonthlyIncomeDTO {
	dtos := make([]MonthlyIncomeDTO, len(months))
	for i, m := range months {
		dtos[i] = MonthlyIncomeDTO{
			Month:       m.Month,
			Value:       m.Value,
			Billable:    m.Billable,
			NonBillable: m.NonBillable,
		}
	}
	return dtos
}

// ToRepairReportDTO converts a RepairReport to its DTO
func ToRepairReportDTO(report services.RepairReport) RepairReportDTO {
	return RepairReportDTO{
		ProjectsScanned:    report.ProjectsScanned,
		RelationshipsFixed: report.RelationshipsFixed,
		TeamsMissing:       report.TeamsMissing,
	}
}
