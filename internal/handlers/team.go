package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-insights-api/internal/dto"
	apierrors "github.com/yukikurage/team-insights-api/internal/errors"
	"github.com/yukikurage/team-insights-api/internal/models"
	"github.com/yukikurage/team-insights-api/internal/services"
	"go.uber.org/zap"
)

type TeamHandler struct {
	teamService *services.TeamService
	logger      *zap.Logger
}

func NewTeamHandler(teamService *services.TeamService, logger *zap.Logger) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
		logger:      nopIfNil(logger),
	}
}

// GetTeam returns a team by ID
func (h *TeamHandler) GetTeam(c *gin.Context) {
	teamID, ok := teamIDParam(c)
	if !ok {
		return
	}

	team, err := h.teamService.GetTeam(c.Request.Context(), teamID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamDTO(*team))
}

// CreateTeam creates a team and links its initial projects back to it
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var req dto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	team, err := h.teamService.CreateTeam(c.Request.Context(), services.CreateTeamInput{
		Name:       req.Name,
		MemberIDs:  models.NormalizeIDs(req.MemberIDs),
		ProjectIDs: models.NormalizeIDs(req.ProjectIDs),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTeamDTO(*team))
}
