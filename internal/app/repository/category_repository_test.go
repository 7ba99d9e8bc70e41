package repository

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"github.com/Manulynx/kitaluro/internal/app/model"
	"github.com/Manulynx/kitaluro/internal/db"
)

func setupCategoryTest(t *testing.T) (*gorm.DB, CategoryRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	return testDB, NewCategoryRepository(testDB)
}

func TestCategoryRepository_ExistsName(t *testing.T) {
	testDB, repo := setupCategoryTest(t)
	defer db.CleanupTestDB(testDB)

	category := &model.Category{Name: "Jardín", Slug: "jardin", Active: true}
	require.NoError(t, repo.Create(category))

	// Case-insensitive match.
	exists, err := repo.ExistsName("jardín", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsName("Jardín", category.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsName("Terraza", 0)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCategoryRepository_FindAllWithSubcategories(t *testing.T) {
	testDB, repo := setupCategoryTest(t)
	defer db.CleanupTestDB(testDB)

	active := &model.Category{Name: "Activa", Slug: "activa", Active: true}
	require.NoError(t, repo.Create(active))
	hidden := &model.Category{Name: "Oculta", Slug: "oculta", Active: false}
	require.NoError(t, repo.Create(hidden))

	require.NoError(t, testDB.Create(&model.Subcategory{
		Name: "Visible", Slug: "visible", CategoryID: active.ID, Active: true,
	}).Error)
	require.NoError(t, testDB.Create(&model.Subcategory{
		Name: "Retirada", Slug: "retirada", CategoryID: active.ID, Active: false,
	}).Error)

	categories, err := repo.FindAllWithSubcategories(true)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Activa", categories[0].Name)
	require.Len(t, categories[0].Subcategories, 1)
	assert.Equal(t, "Visible", categories[0].Subcategories[0].Name)

	categories, err = repo.FindAllWithSubcategories(false)
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}

func TestCategoryRepository_Delete_Cascade(t *testing.T) {
	testDB, repo := setupCategoryTest(t)
	defer db.CleanupTestDB(testDB)

	category := &model.Category{Name: "Cocina", Slug: "cocina", Active: true}
	require.NoError(t, repo.Create(category))

	subcategory := &model.Subcategory{Name: "Sartenes", Slug: "sartenes", CategoryID: category.ID, Active: true}
	require.NoError(t, testDB.Create(subcategory).Error)

	product := &model.Product{
		Name:          "Sartén 24cm",
		Slug:          "sarten-24cm",
		SKU:           "SAR-24",
		Price:         decimal.NewFromInt(25),
		CategoryID:    &category.ID,
		SubcategoryID: &subcategory.ID,
		Active:        true,
		Available:     true,
	}
	require.NoError(t, testDB.Create(product).Error)

	dependents, err := repo.CountDependents(category.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), dependents.Products)
	assert.Equal(t, int64(1), dependents.Subcategories)

	require.NoError(t, repo.Delete(category.ID))

	// The product survives with both references nulled out.
	var survivor model.Product
	require.NoError(t, testDB.First(&survivor, product.ID).Error)
	assert.Nil(t, survivor.CategoryID)
	assert.Nil(t, survivor.SubcategoryID)

	_, err = repo.FindByID(category.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var subcategoryCount int64
	require.NoError(t, testDB.Model(&model.Subcategory{}).Where("id = ?", subcategory.ID).Count(&subcategoryCount).Error)
	assert.Zero(t, subcategoryCount)
}
