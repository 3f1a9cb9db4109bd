package repository

import (
	"context"

	"github.com/yukikurage/team-insights-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// ListByIDs lists users by ID
func (r *GormUserRepository) ListByIDs(ctx context.Context, ids []models.ID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}

	var users []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", idStrings(ids)).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
