package repository

import (
	"context"

	"gorm.io/gorm"

	"durianfarm/internal/model"
)

// DiseaseRepository reads disease records produced by the external
// detection pipeline. This service never writes them.
type DiseaseRepository interface {
	ListByFarm(ctx context.Context, farmID uint) ([]model.Disease, error)
	ListByFarmAndTree(ctx context.Context, farmID, treeID uint) ([]model.Disease, error)
}

type diseaseRepository struct {
	db *gorm.DB
}

// NewDiseaseRepository creates a new disease repository.
func NewDiseaseRepository(db *gorm.DB) DiseaseRepository {
	return &diseaseRepository{db: db}
}

func (r *diseaseRepository) ListByFarm(ctx context.Context, farmID uint) ([]model.Disease, error) {
	var diseases []model.Disease
	if err := r.db.WithContext(ctx).Where("farm_id = ?", farmID).Find(&diseases).Error; err != nil {
		return nil, err
	}
	return diseases, nil
}

func (r *diseaseRepository) ListByFarmAndTree(ctx context.Context, farmID, treeID uint) ([]model.Disease, error) {
	var diseases []model.Disease
	err := r.db.WithContext(ctx).
		Where("farm_id = ? AND tree_id = ?", farmID, treeID).
		Find(&diseases).Error
	if err != nil {
		return nil, err
	}
	return diseases, nil
}
