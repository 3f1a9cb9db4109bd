package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        ID        `gorm:"primarykey;type:varchar(64)" json:"id"`
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	JobTitle  string    `gorm:"type:varchar(255)" json:"job_title"`
	Avatar    string    `gorm:"type:varchar(512)" json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID.IsZero() {
		u.ID = NewID()
	}
	return nil
}
