package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"durianfarm/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Farm{},
		&model.Tree{},
		&model.TreePhoto{},
		&model.Disease{},
		&model.Prediction{},
		&model.UserFarmTable{},
	))
	return db
}

func seedFarm(t *testing.T, db *gorm.DB, name string) *model.Farm {
	t.Helper()
	farm := &model.Farm{FarmName: name, FarmPollinationDate: time.Now()}
	require.NoError(t, db.Create(farm).Error)
	return farm
}

func TestFarmRepository_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewFarmRepository(db)
	ctx := context.Background()

	farm := &model.Farm{
		FarmName:          "North field",
		FarmLocation:      "Chanthaburi",
		FarmProvince:      "Chanthaburi",
		FarmDurianSpecies: "Monthong",
		FarmStatus:        true,
		FarmTree:          12,
		FarmSpace:         40,
		Latitude:          12.57,
		Longitude:         102.1,
		DurianAmount:      300,
	}
	require.NoError(t, repo.Create(ctx, farm))
	require.NotZero(t, farm.ID)

	got, err := repo.FindByID(ctx, farm.ID)
	require.NoError(t, err)
	assert.Equal(t, "North field", got.FarmName)
	assert.Equal(t, 12, got.FarmTree)
	assert.Equal(t, 12.57, got.Latitude)
	assert.Equal(t, 102.1, got.Longitude)
	assert.Equal(t, 300, got.DurianAmount)
	assert.True(t, got.FarmStatus)
	assert.Nil(t, got.FarmPhoto)
}

func TestFarmRepository_CreateWithUserLink(t *testing.T) {
	db := newTestDB(t)
	repo := NewFarmRepository(db)
	ctx := context.Background()

	user := &model.User{Username: "somchai", Email: "somchai@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)

	farm := &model.Farm{FarmName: "Linked"}
	require.NoError(t, repo.CreateWithUserLink(ctx, farm, user.UserID))

	var links []model.UserFarmTable
	require.NoError(t, db.Find(&links).Error)
	require.Len(t, links, 1)
	assert.Equal(t, user.UserID, links[0].UserID)
	assert.Equal(t, farm.ID, links[0].FarmID)
}

func TestFarmRepository_DeleteWithDependents(t *testing.T) {
	db := newTestDB(t)
	repo := NewFarmRepository(db)
	ctx := context.Background()

	farm := seedFarm(t, db, "Doomed")
	other := seedFarm(t, db, "Survivor")

	trees := []model.Tree{
		{FarmID: farm.ID, TreeCollected: 3},
		{FarmID: farm.ID, TreeCollected: 5},
		{FarmID: other.ID, TreeCollected: 9},
	}
	require.NoError(t, db.Create(&trees).Error)
	require.NoError(t, db.Create(&model.TreePhoto{TreeID: trees[0].ID, TreePhotoPath: "/public/tree/a.jpg"}).Error)
	require.NoError(t, db.Create(&model.Prediction{FarmID: farm.ID, TreeID: trees[0].ID}).Error)
	require.NoError(t, db.Create(&model.UserFarmTable{UserID: 1, FarmID: farm.ID}).Error)
	require.NoError(t, db.Create(&model.Disease{FarmID: farm.ID, TreeID: trees[1].ID}).Error)

	require.NoError(t, repo.DeleteWithDependents(ctx, farm.ID))

	counts := map[string]int64{}
	for name, q := range map[string]*gorm.DB{
		"trees":       db.Model(&model.Tree{}).Where("farm_id = ?", farm.ID),
		"photos":      db.Model(&model.TreePhoto{}),
		"predictions": db.Model(&model.Prediction{}).Where("farm_id = ?", farm.ID),
		"links":       db.Model(&model.UserFarmTable{}).Where("farm_id = ?", farm.ID),
		"diseases":    db.Model(&model.Disease{}).Where("farm_id = ?", farm.ID),
	} {
		var n int64
		require.NoError(t, q.Count(&n).Error)
		counts[name] = n
	}
	for name, n := range counts {
		assert.Zero(t, n, name)
	}

	_, err := repo.FindByID(ctx, farm.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The neighbouring farm keeps its tree.
	var survivors int64
	require.NoError(t, db.Model(&model.Tree{}).Where("farm_id = ?", other.ID).Count(&survivors).Error)
	assert.EqualValues(t, 1, survivors)
}

func TestTreeRepository_CreateWithPhoto(t *testing.T) {
	db := newTestDB(t)
	repo := NewTreeRepository(db)
	ctx := context.Background()
	farm := seedFarm(t, db, "F")

	t.Run("with photo", func(t *testing.T) {
		tree := &model.Tree{FarmID: farm.ID, TreeCollected: 3}
		require.NoError(t, repo.CreateWithPhoto(ctx, tree, "/public/tree/a.jpg"))

		got, err := repo.FindByID(ctx, tree.ID)
		require.NoError(t, err)
		require.Len(t, got.TreePhotos, 1)
		assert.Equal(t, "/public/tree/a.jpg", got.TreePhotos[0].TreePhotoPath)
	})

	t.Run("without photo", func(t *testing.T) {
		tree := &model.Tree{FarmID: farm.ID}
		require.NoError(t, repo.CreateWithPhoto(ctx, tree, ""))

		got, err := repo.FindByID(ctx, tree.ID)
		require.NoError(t, err)
		assert.Empty(t, got.TreePhotos)
	})
}

func TestTreeRepository_UpdatePhotoPath_KeepsSingleRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewTreeRepository(db)
	ctx := context.Background()
	farm := seedFarm(t, db, "F")

	tree := &model.Tree{FarmID: farm.ID}
	require.NoError(t, repo.CreateWithPhoto(ctx, tree, "/public/tree/old.jpg"))

	require.NoError(t, repo.UpdatePhotoPath(ctx, tree.TreePhotos[0].ID, "/public/tree/new.jpg"))

	var photos []model.TreePhoto
	require.NoError(t, db.Where("tree_id = ?", tree.ID).Find(&photos).Error)
	require.Len(t, photos, 1)
	assert.Equal(t, "/public/tree/new.jpg", photos[0].TreePhotoPath)
}

func TestTreeRepository_DeleteWithPhotos(t *testing.T) {
	db := newTestDB(t)
	repo := NewTreeRepository(db)
	ctx := context.Background()
	farm := seedFarm(t, db, "F")

	tree := &model.Tree{FarmID: farm.ID}
	require.NoError(t, repo.CreateWithPhoto(ctx, tree, "/public/tree/a.jpg"))

	require.NoError(t, repo.DeleteWithPhotos(ctx, tree.ID))

	_, err := repo.FindByID(ctx, tree.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var photoCount int64
	require.NoError(t, db.Model(&model.TreePhoto{}).Where("tree_id = ?", tree.ID).Count(&photoCount).Error)
	assert.Zero(t, photoCount)
}

func TestUserRepository_ExistsByUsernameOrEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{Username: "somchai", Email: "somchai@example.com", PasswordHash: "x"}))

	for _, tc := range []struct {
		username, email string
		want            bool
	}{
		{"somchai", "new@example.com", true},
		{"newname", "somchai@example.com", true},
		{"newname", "new@example.com", false},
	} {
		got, err := repo.ExistsByUsernameOrEmail(ctx, tc.username, tc.email)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s/%s", tc.username, tc.email)
	}
}

func TestUserRepository_Delete_Missing(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	err := repo.Delete(context.Background(), 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserFarmRepository_ListByUserWithFarmTrees(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserFarmRepository(db)
	ctx := context.Background()

	farmA := seedFarm(t, db, "A")
	farmB := seedFarm(t, db, "B")
	require.NoError(t, db.Create(&[]model.Tree{
		{FarmID: farmA.ID, TreeCollected: 3},
		{FarmID: farmA.ID, TreeCollected: 5},
		{FarmID: farmB.ID, TreeCollected: 2},
	}).Error)
	require.NoError(t, db.Create(&[]model.UserFarmTable{
		{UserID: 7, FarmID: farmA.ID},
		{UserID: 7, FarmID: farmB.ID},
		{UserID: 8, FarmID: farmB.ID},
	}).Error)

	links, err := repo.ListByUserWithFarmTrees(ctx, 7)
	require.NoError(t, err)
	require.Len(t, links, 2)
	require.NotNil(t, links[0].Farm)
	assert.Len(t, links[0].Farm.Trees, 2)
	require.NotNil(t, links[1].Farm)
	assert.Len(t, links[1].Farm.Trees, 1)
}
