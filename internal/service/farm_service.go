package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"gorm.io/gorm"

	"durianfarm/internal/cache"
	apperrors "durianfarm/internal/errors"
	"durianfarm/internal/model"
	"durianfarm/internal/repository"
	"durianfarm/internal/storage"
)

const farmCacheTTL = 5 * time.Minute

// FarmInput carries farm fields already coerced to their real types.
// A nil field was not submitted and is left untouched on update.
type FarmInput struct {
	FarmName            *string
	FarmLocation        *string
	FarmProvince        *string
	FarmDurianSpecies   *string
	FarmStatus          *bool
	FarmPollinationDate *time.Time
	FarmTree            *int
	FarmSpace           *int
	Latitude            *float64
	Longitude           *float64
	DurianAmount        *int
}

// TreeInput carries the three mutable tree counts. Any other submitted
// field is dropped before it reaches this struct.
type TreeInput struct {
	TreeCollected *int
	TreeReady     *int
	TreeNotReady  *int
}

// TreeWithPhoto is the read shape for per-farm tree listings: the tree
// row plus its first photo path, or null when it has none.
type TreeWithPhoto struct {
	ID            uint      `json:"id"`
	FarmID        uint      `json:"farm_id"`
	TreeCollected int       `json:"tree_collected"`
	TreeReady     int       `json:"tree_ready"`
	TreeNotReady  int       `json:"tree_notReady"`
	CreatedAt     time.Time `json:"created_at"`
	TreePhotoPath *string   `json:"tree_photo_path"`
}

// FarmCollected is the per-farm slice of a harvest aggregation.
type FarmCollected struct {
	FarmID              uint `json:"farm_id"`
	TotalCollectedTrees int  `json:"totalCollectedTrees"`
}

// CollectedTotals sums collected trees across all farms linked to a user.
type CollectedTotals struct {
	SumCollected int             `json:"sumCollected"`
	Farms        []FarmCollected `json:"farms"`
}

// FarmService exposes farm and tree domain operations.
type FarmService interface {
	ListFarms(ctx context.Context) ([]model.Farm, error)
	GetFarm(ctx context.Context, id uint) (*model.Farm, error)
	CreateFarm(ctx context.Context, in FarmInput, photo *multipart.FileHeader) (*model.Farm, error)
	CreateFarmForUser(ctx context.Context, username string, in FarmInput, photo *multipart.FileHeader) (*model.Farm, error)
	UpdateFarm(ctx context.Context, id uint, in FarmInput, photo *multipart.FileHeader) (*model.Farm, error)
	UpdateFarmPhoto(ctx context.Context, id uint, photo *multipart.FileHeader) (string, error)
	DeleteFarm(ctx context.Context, id uint) (*model.Farm, error)
	ListTreesForFarm(ctx context.Context, farmID uint) ([]TreeWithPhoto, error)
	ListPredictionsForFarm(ctx context.Context, farmID uint) ([]model.Prediction, error)
	ListPredictionsForFarmAndTree(ctx context.Context, farmID, treeID uint) ([]model.Prediction, error)
	ListDiseasesForFarm(ctx context.Context, farmID uint) ([]model.Disease, error)
	ListDiseasesForFarmAndTree(ctx context.Context, farmID, treeID uint) ([]model.Disease, error)
	TotalCollectedTreesForUser(ctx context.Context, userID uint) (*CollectedTotals, error)
	CreateTree(ctx context.Context, farmID uint, in TreeInput, photo *multipart.FileHeader) (*model.Tree, error)
	UpdateTree(ctx context.Context, treeID uint, in TreeInput, photo *multipart.FileHeader) (*model.Tree, error)
	DeleteTree(ctx context.Context, treeID uint) error
}

type farmService struct {
	farmRepo       repository.FarmRepository
	treeRepo       repository.TreeRepository
	predictionRepo repository.PredictionRepository
	diseaseRepo    repository.DiseaseRepository
	userFarmRepo   repository.UserFarmRepository
	userRepo       repository.UserRepository
	files          *storage.FileStore
	cache          *cache.Client
}

// NewFarmService builds a FarmService with its repositories, file store
// and cache.
func NewFarmService(
	farmRepo repository.FarmRepository,
	treeRepo repository.TreeRepository,
	predictionRepo repository.PredictionRepository,
	diseaseRepo repository.DiseaseRepository,
	userFarmRepo repository.UserFarmRepository,
	userRepo repository.UserRepository,
	files *storage.FileStore,
	cacheClient *cache.Client,
) FarmService {
	return &farmService{
		farmRepo:       farmRepo,
		treeRepo:       treeRepo,
		predictionRepo: predictionRepo,
		diseaseRepo:    diseaseRepo,
		userFarmRepo:   userFarmRepo,
		userRepo:       userRepo,
		files:          files,
		cache:          cacheClient,
	}
}

func farmCacheKey(id uint) string {
	return fmt.Sprintf("farm:%d", id)
}

func (s *farmService) ListFarms(ctx context.Context) ([]model.Farm, error) {
	return s.farmRepo.List(ctx)
}

func (s *farmService) GetFarm(ctx context.Context, id uint) (*model.Farm, error) {
	if data, _ := s.cache.Get(ctx, farmCacheKey(id)); data != nil {
		var cached model.Farm
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	farm, err := s.farmRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Farm", id)
		}
		return nil, err
	}

	if payload, err := json.Marshal(farm); err == nil {
		_ = s.cache.Set(ctx, farmCacheKey(id), payload, farmCacheTTL)
	}
	return farm, nil
}

// apply copies submitted fields onto the farm record.
func (in FarmInput) apply(farm *model.Farm) {
	if in.FarmName != nil {
		farm.FarmName = *in.FarmName
	}
	if in.FarmLocation != nil {
		farm.FarmLocation = *in.FarmLocation
	}
	if in.FarmProvince != nil {
		farm.FarmProvince = *in.FarmProvince
	}
	if in.FarmDurianSpecies != nil {
		farm.FarmDurianSpecies = *in.FarmDurianSpecies
	}
	if in.FarmStatus != nil {
		farm.FarmStatus = *in.FarmStatus
	}
	if in.FarmPollinationDate != nil {
		farm.FarmPollinationDate = *in.FarmPollinationDate
	}
	if in.FarmTree != nil {
		farm.FarmTree = *in.FarmTree
	}
	if in.FarmSpace != nil {
		farm.FarmSpace = *in.FarmSpace
	}
	if in.Latitude != nil {
		farm.Latitude = *in.Latitude
	}
	if in.Longitude != nil {
		farm.Longitude = *in.Longitude
	}
	if in.DurianAmount != nil {
		farm.DurianAmount = *in.DurianAmount
	}
}

func (s *farmService) CreateFarm(ctx context.Context, in FarmInput, photo *multipart.FileHeader) (*model.Farm, error) {
	var farm model.Farm
	in.apply(&farm)

	if photo != nil {
		path, err := s.files.Save(photo, "")
		if err != nil {
			return nil, err
		}
		farm.FarmPhoto = &path
	}

	if err := s.farmRepo.Create(ctx, &farm); err != nil {
		return nil, err
	}
	return &farm, nil
}

func (s *farmService) CreateFarmForUser(ctx context.Context, username string, in FarmInput, photo *multipart.FileHeader) (*model.Farm, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundByUsername("User", username)
		}
		return nil, err
	}

	var farm model.Farm
	in.apply(&farm)

	if photo != nil {
		path, err := s.files.Save(photo, "")
		if err != nil {
			return nil, err
		}
		farm.FarmPhoto = &path
	}

	if err := s.farmRepo.CreateWithUserLink(ctx, &farm, user.UserID); err != nil {
		return nil, err
	}
	return &farm, nil
}

func (s *farmService) UpdateFarm(ctx context.Context, id uint, in FarmInput, photo *multipart.FileHeader) (*model.Farm, error) {
	farm, err := s.farmRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Farm", id)
		}
		return nil, err
	}

	in.apply(farm)

	if photo != nil {
		var oldPath string
		if farm.FarmPhoto != nil {
			oldPath = *farm.FarmPhoto
		}
		path, err := s.files.Replace(oldPath, photo, "")
		if err != nil {
			return nil, err
		}
		farm.FarmPhoto = &path
	}

	if err := s.farmRepo.Update(ctx, farm); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, farmCacheKey(id))
	return farm, nil
}

func (s *farmService) UpdateFarmPhoto(ctx context.Context, id uint, photo *multipart.FileHeader) (string, error) {
	if _, err := s.farmRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.NewNotFound("Farm", id)
		}
		return "", err
	}

	path, err := s.files.Save(photo, "")
	if err != nil {
		return "", err
	}
	if err := s.farmRepo.UpdatePhoto(ctx, id, path); err != nil {
		return "", err
	}
	_ = s.cache.Delete(ctx, farmCacheKey(id))
	return path, nil
}

func (s *farmService) DeleteFarm(ctx context.Context, id uint) (*model.Farm, error) {
	farm, err := s.farmRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Farm", id)
		}
		return nil, err
	}

	if err := s.farmRepo.DeleteWithDependents(ctx, id); err != nil {
		return nil, err
	}

	// File removal runs after the transaction committed; losing the race
	// leaves an orphaned file, never a dangling row.
	if farm.FarmPhoto != nil {
		s.files.Remove(*farm.FarmPhoto)
	}
	_ = s.cache.Delete(ctx, farmCacheKey(id))
	return farm, nil
}

func (s *farmService) ListTreesForFarm(ctx context.Context, farmID uint) ([]TreeWithPhoto, error) {
	trees, err := s.treeRepo.ListByFarm(ctx, farmID)
	if err != nil {
		return nil, err
	}

	out := make([]TreeWithPhoto, 0, len(trees))
	for _, tree := range trees {
		t := TreeWithPhoto{
			ID:            tree.ID,
			FarmID:        tree.FarmID,
			TreeCollected: tree.TreeCollected,
			TreeReady:     tree.TreeReady,
			TreeNotReady:  tree.TreeNotReady,
			CreatedAt:     tree.CreatedAt,
		}
		if len(tree.TreePhotos) > 0 {
			t.TreePhotoPath = &tree.TreePhotos[0].TreePhotoPath
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *farmService) ListPredictionsForFarm(ctx context.Context, farmID uint) ([]model.Prediction, error) {
	return s.predictionRepo.ListByFarm(ctx, farmID)
}

func (s *farmService) ListPredictionsForFarmAndTree(ctx context.Context, farmID, treeID uint) ([]model.Prediction, error) {
	return s.predictionRepo.ListByFarmAndTree(ctx, farmID, treeID)
}

func (s *farmService) ListDiseasesForFarm(ctx context.Context, farmID uint) ([]model.Disease, error) {
	return s.diseaseRepo.ListByFarm(ctx, farmID)
}

func (s *farmService) ListDiseasesForFarmAndTree(ctx context.Context, farmID, treeID uint) ([]model.Disease, error) {
	return s.diseaseRepo.ListByFarmAndTree(ctx, farmID, treeID)
}

func (s *farmService) TotalCollectedTreesForUser(ctx context.Context, userID uint) (*CollectedTotals, error) {
	links, err := s.userFarmRepo.ListByUserWithFarmTrees(ctx, userID)
	if err != nil {
		return nil, err
	}

	totals := &CollectedTotals{Farms: []FarmCollected{}}
	for _, link := range links {
		if link.Farm == nil {
			continue
		}
		collected := 0
		for _, tree := range link.Farm.Trees {
			collected += tree.TreeCollected
		}
		totals.Farms = append(totals.Farms, FarmCollected{
			FarmID:              link.Farm.ID,
			TotalCollectedTrees: collected,
		})
		totals.SumCollected += collected
	}
	return totals, nil
}

func (s *farmService) CreateTree(ctx context.Context, farmID uint, in TreeInput, photo *multipart.FileHeader) (*model.Tree, error) {
	if _, err := s.farmRepo.FindByID(ctx, farmID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Farm", farmID)
		}
		return nil, err
	}

	tree := model.Tree{FarmID: farmID}
	in.apply(&tree)

	var photoPath string
	if photo != nil {
		path, err := s.files.Save(photo, storage.TreeSubdir)
		if err != nil {
			return nil, err
		}
		photoPath = path
	}

	if err := s.treeRepo.CreateWithPhoto(ctx, &tree, photoPath); err != nil {
		return nil, err
	}
	return &tree, nil
}

// apply copies the allow-listed counts onto the tree record.
func (in TreeInput) apply(tree *model.Tree) {
	if in.TreeCollected != nil {
		tree.TreeCollected = *in.TreeCollected
	}
	if in.TreeReady != nil {
		tree.TreeReady = *in.TreeReady
	}
	if in.TreeNotReady != nil {
		tree.TreeNotReady = *in.TreeNotReady
	}
}

func (s *farmService) UpdateTree(ctx context.Context, treeID uint, in TreeInput, photo *multipart.FileHeader) (*model.Tree, error) {
	tree, err := s.treeRepo.FindByID(ctx, treeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Tree", treeID)
		}
		return nil, err
	}

	in.apply(tree)

	if photo != nil {
		path, err := s.files.Save(photo, storage.TreeSubdir)
		if err != nil {
			return nil, err
		}
		if len(tree.TreePhotos) > 0 {
			// Overwrite the existing photo row in place; a tree never
			// accumulates a second photo through this path.
			old := tree.TreePhotos[0].TreePhotoPath
			if err := s.treeRepo.UpdatePhotoPath(ctx, tree.TreePhotos[0].ID, path); err != nil {
				return nil, err
			}
			tree.TreePhotos[0].TreePhotoPath = path
			s.files.Remove(old)
		} else {
			created := &model.TreePhoto{TreeID: tree.ID, TreePhotoPath: path}
			if err := s.treeRepo.CreatePhoto(ctx, created); err != nil {
				return nil, err
			}
			tree.TreePhotos = append(tree.TreePhotos, *created)
		}
	}

	if err := s.treeRepo.Update(ctx, tree); err != nil {
		return nil, err
	}
	return tree, nil
}

func (s *farmService) DeleteTree(ctx context.Context, treeID uint) error {
	tree, err := s.treeRepo.FindByID(ctx, treeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("Tree", treeID)
		}
		return err
	}

	if len(tree.TreePhotos) > 0 {
		s.files.Remove(tree.TreePhotos[0].TreePhotoPath)
	}
	return s.treeRepo.DeleteWithPhotos(ctx, treeID)
}
