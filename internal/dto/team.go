package dto

import (
	"time"

	"github.com/yukikurage/team-insights-api/internal/models"
)

// TeamDTO represents a team in API responses
type TeamDTO struct {
	ID         models.ID   `json:"id"`
	Name       string      `json:"name"`
	MemberIDs  []models.ID `json:"memberIds"`
	ProjectIDs []models.ID `json:"projectIds"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// CreateTeamRequest is the body of POST /api/teams. Ids may be sent as
// strings or numbers.
type CreateTeamRequest struct {
	Name       string        `json:"name" binding:"required"`
	MemberIDs  []interface{} `json:"memberIds"`
	ProjectIDs []interface{} `json:"projectIds"`
}

// ToTeamDTO converts a Team model to TeamDTO
func ToTeamDTO(team models.Team) TeamDTO {
	return TeamDTO{
		ID:         team.ID,
		Name:       team.Name,
		MemberIDs:  nonNilIDs(team.MemberIDs),
		ProjectIDs: nonNilIDs(team.ProjectIDs),
		CreatedAt:  team.CreatedAt,
		UpdatedAt:  team.UpdatedAt,
	}
}

func nonNilIDs(ids []models.ID) []models.ID {
	if ids == nil {
		return []models.ID{}
	}
	return ids
}
