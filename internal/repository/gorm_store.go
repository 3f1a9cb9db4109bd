package repository

import "gorm.io/gorm"

// NewGormStore wires the GORM repositories over a single connection.
func NewGormStore(db *gorm.DB) Store {
	return Store{
		Teams:    NewTeamRepository(db),
		Projects: NewProjectRepository(db),
		Tasks:    NewTaskRepository(db),
		Users:    NewUserRepository(db),
	}
}
