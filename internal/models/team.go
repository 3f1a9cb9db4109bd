package models

import (
	"time"

	"gorm.io/gorm"
)

// Team holds its side of the team/project relationship in ProjectIDs. The
// matching Project.TeamIDs entry is stored separately and can drift.
type Team struct {
	ID         ID        `gorm:"primarykey;type:varchar(64)" json:"id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	MemberIDs  []ID      `gorm:"serializer:json;type:text" json:"member_ids"`
	ProjectIDs []ID      `gorm:"serializer:json;type:text" json:"project_ids"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// HasProject reports whether the team lists projectID, comparing canonical ids.
func (t Team) HasProject(projectID ID) bool {
	return ContainsID(t.ProjectIDs, projectID)
}

func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID.IsZero() {
		t.ID = NewID()
	}
	return nil
}
