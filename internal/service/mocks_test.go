package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"durianfarm/internal/model"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFarmRepository is a mock implementation of repository.FarmRepository.
type MockFarmRepository struct {
	mock.Mock
}

func (m *MockFarmRepository) Create(ctx context.Context, farm *model.Farm) error {
	args := m.Called(ctx, farm)
	return args.Error(0)
}

func (m *MockFarmRepository) CreateWithUserLink(ctx context.Context, farm *model.Farm, userID uint) error {
	args := m.Called(ctx, farm, userID)
	return args.Error(0)
}

func (m *MockFarmRepository) FindByID(ctx context.Context, id uint) (*model.Farm, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Farm), args.Error(1)
}

func (m *MockFarmRepository) List(ctx context.Context) ([]model.Farm, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Farm), args.Error(1)
}

func (m *MockFarmRepository) Update(ctx context.Context, farm *model.Farm) error {
	args := m.Called(ctx, farm)
	return args.Error(0)
}

func (m *MockFarmRepository) UpdatePhoto(ctx context.Context, id uint, path string) error {
	args := m.Called(ctx, id, path)
	return args.Error(0)
}

func (m *MockFarmRepository) DeleteWithDependents(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTreeRepository is a mock implementation of repository.TreeRepository.
type MockTreeRepository struct {
	mock.Mock
}

func (m *MockTreeRepository) CreateWithPhoto(ctx context.Context, tree *model.Tree, photoPath string) error {
	args := m.Called(ctx, tree, photoPath)
	return args.Error(0)
}

func (m *MockTreeRepository) FindByID(ctx context.Context, id uint) (*model.Tree, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tree), args.Error(1)
}

func (m *MockTreeRepository) ListByFarm(ctx context.Context, farmID uint) ([]model.Tree, error) {
	args := m.Called(ctx, farmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tree), args.Error(1)
}

func (m *MockTreeRepository) Update(ctx context.Context, tree *model.Tree) error {
	args := m.Called(ctx, tree)
	return args.Error(0)
}

func (m *MockTreeRepository) UpdatePhotoPath(ctx context.Context, photoID uint, path string) error {
	args := m.Called(ctx, photoID, path)
	return args.Error(0)
}

func (m *MockTreeRepository) CreatePhoto(ctx context.Context, photo *model.TreePhoto) error {
	args := m.Called(ctx, photo)
	return args.Error(0)
}

func (m *MockTreeRepository) DeleteWithPhotos(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPredictionRepository is a mock implementation of repository.PredictionRepository.
type MockPredictionRepository struct {
	mock.Mock
}

func (m *MockPredictionRepository) ListByFarm(ctx context.Context, farmID uint) ([]model.Prediction, error) {
	args := m.Called(ctx, farmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Prediction), args.Error(1)
}

func (m *MockPredictionRepository) ListByFarmAndTree(ctx context.Context, farmID, treeID uint) ([]model.Prediction, error) {
	args := m.Called(ctx, farmID, treeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Prediction), args.Error(1)
}

// MockDiseaseRepository is a mock implementation of repository.DiseaseRepository.
type MockDiseaseRepository struct {
	mock.Mock
}

func (m *MockDiseaseRepository) ListByFarm(ctx context.Context, farmID uint) ([]model.Disease, error) {
	args := m.Called(ctx, farmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Disease), args.Error(1)
}

func (m *MockDiseaseRepository) ListByFarmAndTree(ctx context.Context, farmID, treeID uint) ([]model.Disease, error) {
	args := m.Called(ctx, farmID, treeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Disease), args.Error(1)
}

// MockUserFarmRepository is a mock implementation of repository.UserFarmRepository.
type MockUserFarmRepository struct {
	mock.Mock
}

func (m *MockUserFarmRepository) ListByUserWithFarms(ctx context.Context, userID uint) ([]model.UserFarmTable, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserFarmTable), args.Error(1)
}

func (m *MockUserFarmRepository) ListByUserWithFarmTrees(ctx context.Context, userID uint) ([]model.UserFarmTable, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserFarmTable), args.Error(1)
}
