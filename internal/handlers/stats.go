package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-insights-api/internal/dto"
	apierrors "github.com/yukikurage/team-insights-api/internal/errors"
	"github.com/yukikurage/team-insights-api/internal/models"
	"github.com/yukikurage/team-insights-api/internal/services"
	"go.uber.org/zap"
)

type StatsHandler struct {
	statsService *services.TeamStatsService
	logger       *zap.Logger
}

func NewStatsHandler(statsService *services.TeamStatsService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		logger:       nopIfNil(logger),
	}
}

// Overview returns task counts and income for the team, optionally narrowed
// to one project with ?project_id=
func (h *StatsHandler) Overview(c *gin.Context) {
	teamID, ok := teamIDParam(c)
	if !ok {
		return
	}

	projectID := models.NormalizeID(c.Query("project_id"))
	stats, err := h.statsService.OverviewStats(c.Request.Context(), teamID, projectID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOverviewStatsDTO(stats))
}

// Members returns the team leaderboard
func (h *StatsHandler) Members(c *gin.Context) {
	teamID, ok := teamIDParam(c)
	if !ok {
		return
	}

	stats, err := h.statsService.MemberStats(c.Request.Context(), teamID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"members": dto.ToMemberStatDTOs(stats),
	})
}

// TopProjects ranks the team's projects by earnings within ?range=
func (h *StatsHandler) TopProjects(c *gin.Context) {
	teamID, ok := teamIDParam(c)
	if !ok {
		return
	}

	rng := services.ParseEarningsRange(c.Query("range"))
	earnings, err := h.statsService.TopEarningProjects(c.Request.Context(), teamID, rng)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"range":    rng,
		"projects": dto.ToProjectEarningDTOs(earnings),
	})
}

// Income returns the monthly income overview of ?year=, defaulting to the
// current year
func (h *StatsHandler) Income(c *gin.Context) {
	teamID, ok := teamIDParam(c)
	if !ok {
		return
	}

	year := h.statsService.CurrentYear()
	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			apierrors.BadRequest(c, "Invalid year")
			return
		}
		year = parsed
	}

	months, err := h.statsService.YearlyIncomeOverview(c.Request.Context(), teamID, year)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":   year,
		"months": dto.ToMonthlyIncomeDTOs(months),
	})
}

// Progress returns the team's weighted task progress
func (h *StatsHandler) Progress(c *gin.Context) {
	teamID, ok := teamIDParam(c)
	if !ok {
		return
	}

	progress, err := h.statsService.TeamProgress(c.Request.Context(), teamID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProgressDTO{
		TeamID:   teamID,
		Progress: progress,
	})
}
