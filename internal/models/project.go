package models

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	ID        ID        `gorm:"primarykey;type:varchar(64)" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	TeamIDs   []ID      `gorm:"serializer:json;type:text" json:"team_ids"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID.IsZero() {
		p.ID = NewID()
	}
	return nil
}
