package repository

import (
	"context"

	"gorm.io/gorm"

	"durianfarm/internal/model"
)

// FarmRepository defines farm persistence operations. Multi-step writes
// (farm+link creation, dependent-record deletion) run inside a single
// transaction so a partial failure rolls back completely.
type FarmRepository interface {
	Create(ctx context.Context, farm *model.Farm) error
	CreateWithUserLink(ctx context.Context, farm *model.Farm, userID uint) error
	FindByID(ctx context.Context, id uint) (*model.Farm, error)
	List(ctx context.Context) ([]model.Farm, error)
	Update(ctx context.Context, farm *model.Farm) error
	UpdatePhoto(ctx context.Context, id uint, path string) error
	DeleteWithDependents(ctx context.Context, id uint) error
}

type farmRepository struct {
	db *gorm.DB
}

// NewFarmRepository creates a new farm repository.
func NewFarmRepository(db *gorm.DB) FarmRepository {
	return &farmRepository{db: db}
}

func (r *farmRepository) Create(ctx context.Context, farm *model.Farm) error {
	return r.db.WithContext(ctx).Create(farm).Error
}

// CreateWithUserLink creates the farm and its user link atomically.
func (r *farmRepository) CreateWithUserLink(ctx context.Context, farm *model.Farm, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(farm).Error; err != nil {
			return err
		}
		link := &model.UserFarmTable{UserID: userID, FarmID: farm.ID}
		return tx.Create(link).Error
	})
}

func (r *farmRepository) FindByID(ctx context.Context, id uint) (*model.Farm, error) {
	var farm model.Farm
	if err := r.db.WithContext(ctx).First(&farm, id).Error; err != nil {
		return nil, err
	}
	return &farm, nil
}

func (r *farmRepository) List(ctx context.Context) ([]model.Farm, error) {
	var farms []model.Farm
	if err := r.db.WithContext(ctx).Find(&farms).Error; err != nil {
		return nil, err
	}
	return farms, nil
}

func (r *farmRepository) Update(ctx context.Context, farm *model.Farm) error {
	return r.db.WithContext(ctx).Save(farm).Error
}

func (r *farmRepository) UpdatePhoto(ctx context.Context, id uint, path string) error {
	return r.db.WithContext(ctx).Model(&model.Farm{}).
		Where("id = ?", id).
		Update("farm_photo", path).Error
}

// DeleteWithDependents removes all trees (with their photo rows),
// predictions, user links and disease records for the farm, then the farm
// row itself, in one transaction. The delete order satisfies foreign-key
// constraints.
func (r *farmRepository) DeleteWithDependents(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var treeIDs []uint
		if err := tx.Model(&model.Tree{}).Where("farm_id = ?", id).Pluck("id", &treeIDs).Error; err != nil {
			return err
		}
		if len(treeIDs) > 0 {
			if err := tx.Where("tree_id IN ?", treeIDs).Delete(&model.TreePhoto{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("farm_id = ?", id).Delete(&model.Tree{}).Error; err != nil {
			return err
		}
		if err := tx.Where("farm_id = ?", id).Delete(&model.Prediction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("farm_id = ?", id).Delete(&model.UserFarmTable{}).Error; err != nil {
			return err
		}
		if err := tx.Where("farm_id = ?", id).Delete(&model.Disease{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Farm{}, id).Error
	})
}
