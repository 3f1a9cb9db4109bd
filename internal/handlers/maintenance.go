package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-insights-api/internal/dto"
	"github.com/yukikurage/team-insights-api/internal/services"
	"go.uber.org/zap"
)

type MaintenanceHandler struct {
	repairer *services.ConsistencyRepairer
	logger   *zap.Logger
}

func NewMaintenanceHandler(repairer *services.ConsistencyRepairer, logger *zap.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{
		repairer: repairer,
		logger:   nopIfNil(logger),
	}
}

// RepairRelationships adds every project to the teams its team list names
func (h *MaintenanceHandler) RepairRelationships(c *gin.Context) {
	report, err := h.repairer.Repair(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRepairReportDTO(report))
}
