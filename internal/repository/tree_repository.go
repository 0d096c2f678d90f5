package repository

import (
	"context"

	"gorm.io/gorm"

	"durianfarm/internal/model"
)

// TreeRepository defines tree and tree-photo persistence operations.
type TreeRepository interface {
	CreateWithPhoto(ctx context.Context, tree *model.Tree, photoPath string) error
	FindByID(ctx context.Context, id uint) (*model.Tree, error)
	ListByFarm(ctx context.Context, farmID uint) ([]model.Tree, error)
	Update(ctx context.Context, tree *model.Tree) error
	UpdatePhotoPath(ctx context.Context, photoID uint, path string) error
	CreatePhoto(ctx context.Context, photo *model.TreePhoto) error
	DeleteWithPhotos(ctx context.Context, id uint) error
}

type treeRepository struct {
	db *gorm.DB
}

// NewTreeRepository creates a new tree repository.
func NewTreeRepository(db *gorm.DB) TreeRepository {
	return &treeRepository{db: db}
}

// CreateWithPhoto creates the tree and, when photoPath is non-empty, its
// TreePhoto child row in one transaction.
func (r *treeRepository) CreateWithPhoto(ctx context.Context, tree *model.Tree, photoPath string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tree).Error; err != nil {
			return err
		}
		if photoPath == "" {
			return nil
		}
		photo := &model.TreePhoto{TreeID: tree.ID, TreePhotoPath: photoPath}
		if err := tx.Create(photo).Error; err != nil {
			return err
		}
		tree.TreePhotos = append(tree.TreePhotos, *photo)
		return nil
	})
}

func (r *treeRepository) FindByID(ctx context.Context, id uint) (*model.Tree, error) {
	var tree model.Tree
	if err := r.db.WithContext(ctx).Preload("TreePhotos").First(&tree, id).Error; err != nil {
		return nil, err
	}
	return &tree, nil
}

func (r *treeRepository) ListByFarm(ctx context.Context, farmID uint) ([]model.Tree, error) {
	var trees []model.Tree
	err := r.db.WithContext(ctx).Preload("TreePhotos").
		Where("farm_id = ?", farmID).Find(&trees).Error
	if err != nil {
		return nil, err
	}
	return trees, nil
}

func (r *treeRepository) Update(ctx context.Context, tree *model.Tree) error {
	return r.db.WithContext(ctx).Omit("TreePhotos").Save(tree).Error
}

func (r *treeRepository) UpdatePhotoPath(ctx context.Context, photoID uint, path string) error {
	return r.db.WithContext(ctx).Model(&model.TreePhoto{}).
		Where("id = ?", photoID).
		Update("tree_photo_path", path).Error
}

func (r *treeRepository) CreatePhoto(ctx context.Context, photo *model.TreePhoto) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

// DeleteWithPhotos removes the tree's photo rows and the tree row in one
// transaction.
func (r *treeRepository) DeleteWithPhotos(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tree_id = ?", id).Delete(&model.TreePhoto{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Tree{}, id).Error
	})
}
