package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/team-insights-api/internal/errors"
	"github.com/yukikurage/team-insights-api/internal/models"
	"github.com/yukikurage/team-insights-api/internal/services"
	"go.uber.org/zap"
)

// teamIDParam reads the :id path parameter as a canonical id
func teamIDParam(c *gin.Context) (models.ID, bool) {
	teamID := models.NormalizeID(c.Param("id"))
	if teamID.IsZero() {
		apierrors.BadRequest(c, "Invalid team id")
		return "", false
	}
	return teamID, true
}

// respondError maps service errors to the API error envelope
func respondError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrTeamNotFound):
		apierrors.NotFound(c, "Team not found")
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrInvalidTeamName),
		errors.Is(err, services.ErrTeamNameTooLong):
		apierrors.BadRequest(c, err.Error())
	default:
		_ = c.Error(err)
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		apierrors.InternalError(c, "")
	}
}

func nopIfNil(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
