package repository

import (
	"context"

	"gorm.io/gorm"

	"durianfarm/internal/model"
)

// UserFarmRepository reads the user/farm link table.
type UserFarmRepository interface {
	// ListByUserWithFarms returns the user's links with Farm preloaded.
	ListByUserWithFarms(ctx context.Context, userID uint) ([]model.UserFarmTable, error)
	// ListByUserWithFarmTrees returns the user's links with Farm and the
	// farm's trees preloaded, for harvest aggregation.
	ListByUserWithFarmTrees(ctx context.Context, userID uint) ([]model.UserFarmTable, error)
}

type userFarmRepository struct {
	db *gorm.DB
}

// NewUserFarmRepository creates a new user-farm link repository.
func NewUserFarmRepository(db *gorm.DB) UserFarmRepository {
	return &userFarmRepository{db: db}
}

func (r *userFarmRepository) ListByUserWithFarms(ctx context.Context, userID uint) ([]model.UserFarmTable, error) {
	var links []model.UserFarmTable
	err := r.db.WithContext(ctx).Preload("Farm").
		Where("user_id = ?", userID).Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (r *userFarmRepository) ListByUserWithFarmTrees(ctx context.Context, userID uint) ([]model.UserFarmTable, error) {
	var links []model.UserFarmTable
	err := r.db.WithContext(ctx).Preload("Farm").Preload("Farm.Trees").
		Where("user_id = ?", userID).Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}
