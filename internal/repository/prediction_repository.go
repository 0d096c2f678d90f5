package repository

import (
	"context"

	"gorm.io/gorm"

	"durianfarm/internal/model"
)

// PredictionRepository reads prediction records produced by the external
// model pipeline. This service never writes them.
type PredictionRepository interface {
	ListByFarm(ctx context.Context, farmID uint) ([]model.Prediction, error)
	ListByFarmAndTree(ctx context.Context, farmID, treeID uint) ([]model.Prediction, error)
}

type predictionRepository struct {
	db *gorm.DB
}

// NewPredictionRepository creates a new prediction repository.
func NewPredictionRepository(db *gorm.DB) PredictionRepository {
	return &predictionRepository{db: db}
}

func (r *predictionRepository) ListByFarm(ctx context.Context, farmID uint) ([]model.Prediction, error) {
	var predictions []model.Prediction
	if err := r.db.WithContext(ctx).Where("farm_id = ?", farmID).Find(&predictions).Error; err != nil {
		return nil, err
	}
	return predictions, nil
}

func (r *predictionRepository) ListByFarmAndTree(ctx context.Context, farmID, treeID uint) ([]model.Prediction, error) {
	var predictions []model.Prediction
	err := r.db.WithContext(ctx).
		Where("farm_id = ? AND tree_id = ?", farmID, treeID).
		Find(&predictions).Error
	if err != nil {
		return nil, err
	}
	return predictions, nil
}
