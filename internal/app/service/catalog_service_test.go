package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"github.com/Manulynx/kitaluro/internal/app/model"
	"github.com/Manulynx/kitaluro/internal/app/repository"
	"github.com/Manulynx/kitaluro/internal/db"
)

func setupCatalogService(t *testing.T) (*gorm.DB, CatalogService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	productRepo := repository.NewProductRepository(testDB)
	ratingSvc := NewRatingService(repository.NewRatingRepository(testDB), productRepo)
	svc := NewCatalogService(
		productRepo,
		repository.NewCategoryRepository(testDB),
		repository.NewBrandRepository(testDB),
		repository.NewSupplierRepository(testDB),
		repository.NewStatusRepository(testDB),
		ratingSvc,
	)
	return testDB, svc
}

func seedCatalogProduct(t *testing.T, testDB *gorm.DB, name, slug string, mutate func(*model.Product)) *model.Product {
	t.Helper()
	product := &model.Product{
		Name:      name,
		Slug:      slug,
		SKU:       "SKU-" + slug,
		Price:     decimal.NewFromInt(50),
		Stock:     3,
		Active:    true,
		Available: true,
	}
	if mutate != nil {
		mutate(product)
	}
	require.NoError(t, testDB.Create(product).Error)
	return product
}

func TestCatalogService_ListProducts(t *testing.T) {
	testDB, svc := setupCatalogService(t)
	defer db.CleanupTestDB(testDB)

	for i := 0; i < repository.PageSize+3; i++ {
		seedCatalogProduct(t, testDB, fmt.Sprintf("Producto %02d", i), fmt.Sprintf("producto-%02d", i), nil)
	}
	seedCatalogProduct(t, testDB, "Retirado", "retirado", func(p *model.Product) { p.Active = false })

	page, err := svc.ListProducts(CatalogQuery{Page: 1})
	require.NoError(t, err)

	assert.Equal(t, int64(repository.PageSize+3), page.TotalCount)
	assert.Equal(t, 1, page.PageNumber)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.HasNext)
	assert.False(t, page.HasPrevious)
	assert.Len(t, page.Items, repository.PageSize)

	last, err := svc.ListProducts(CatalogQuery{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, last.PageNumber)
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrevious)
	assert.Len(t, last.Items, 3)

	// Out-of-range pages land on the last one.
	clamped, err := svc.ListProducts(CatalogQuery{Page: 40})
	require.NoError(t, err)
	assert.Equal(t, 2, clamped.PageNumber)
}

func TestCatalogService_ListProducts_UnknownSort(t *testing.T) {
	testDB, svc := setupCatalogService(t)
	defer db.CleanupTestDB(testDB)

	seedCatalogProduct(t, testDB, "Normal", "normal", nil)
	seedCatalogProduct(t, testDB, "Estrella", "estrella", func(p *model.Product) { p.Featured = true })

	page, err := svc.ListProducts(CatalogQuery{Sort: "no-existe", Page: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Estrella", page.Items[0].Name)
}

func TestCatalogService_GetProductDetail(t *testing.T) {
	testDB, svc := setupCatalogService(t)
	defer db.CleanupTestDB(testDB)

	category := &model.Category{Name: "Hogar", Slug: "hogar", Active: true}
	require.NoError(t, testDB.Create(category).Error)

	sale := decimal.NewFromInt(40)
	product := seedCatalogProduct(t, testDB, "Manta", "manta", func(p *model.Product) {
		p.CategoryID = &category.ID
		p.SalePrice = &sale
		p.OnSale = true
		p.ImageURL = "manta.jpg"
	})
	seedCatalogProduct(t, testDB, "Cojín", "cojin", func(p *model.Product) {
		p.CategoryID = &category.ID
	})

	require.NoError(t, testDB.Create(&model.Rating{
		ProductID: product.ID, Score: 4, ImageURLs: []string{},
	}).Error)

	detail, err := svc.GetProductDetail(context.Background(), "manta")
	require.NoError(t, err)

	assert.Equal(t, "Manta", detail.Product.Name)
	assert.True(t, detail.HasDiscount)
	assert.Equal(t, 20, detail.DiscountPercent)
	assert.True(t, detail.FinalPrice.Equal(sale))
	assert.Contains(t, detail.Badges, BadgeOnSale)

	// Falls back to the singular field; the product has no gallery rows.
	require.NotNil(t, detail.MainImage)
	assert.Equal(t, "manta.jpg", detail.MainImage.URL)

	assert.Equal(t, int64(1), detail.RatingSummary.Count)
	assert.Equal(t, 4.0, detail.RatingSummary.Average)

	require.Len(t, detail.Related, 1)
	assert.Equal(t, "Cojín", detail.Related[0].Name)
}

func TestCatalogService_GetProductDetail_NotFound(t *testing.T) {
	testDB, svc := setupCatalogService(t)
	defer db.CleanupTestDB(testDB)

	seedCatalogProduct(t, testDB, "Oculto", "oculto", func(p *model.Product) { p.Available = false })

	_, err := svc.GetProductDetail(context.Background(), "no-existe")
	assert.ErrorIs(t, err, ErrProductNotFound)

	// Hidden products do not resolve by slug either.
	_, err = svc.GetProductDetail(context.Background(), "oculto")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_QuickSearch(t *testing.T) {
	testDB, svc := setupCatalogService(t)
	defer db.CleanupTestDB(testDB)

	for i := 0; i < 10; i++ {
		seedCatalogProduct(t, testDB, fmt.Sprintf("Silla %d", i), fmt.Sprintf("silla-%d", i), nil)
	}

	tests := []struct {
		name        string
		query       string
		wantSuccess bool
		wantResults int
	}{
		{
			name:        "Too short",
			query:       "a",
			wantSuccess: false,
			wantResults: 0,
		},
		{
			name:        "Whitespace only",
			query:       "   ",
			wantSuccess: false,
			wantResults: 0,
		},
		{
			name:        "Capped at the search limit",
			query:       "silla",
			wantSuccess: true,
			wantResults: 8,
		},
		{
			name:        "No matches still succeeds",
			query:       "nevera",
			wantSuccess: true,
			wantResults: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.QuickSearch(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSuccess, result.Success)
			assert.NotNil(t, result.Results)
			assert.Len(t, result.Results, tt.wantResults)
			if !tt.wantSuccess {
				assert.Equal(t, "La búsqueda debe tener al menos 2 caracteres", result.Message)
			}
		})
	}
}

func TestCatalogService_ListNavigation(t *testing.T) {
	testDB, svc := setupCatalogService(t)
	defer db.CleanupTestDB(testDB)

	active := &model.Category{Name: "Activa", Slug: "activa", Active: true}
	require.NoError(t, testDB.Create(active).Error)
	require.NoError(t, testDB.Create(&model.Category{Name: "Inactiva", Slug: "inactiva", Active: false}).Error)
	require.NoError(t, testDB.Create(&model.Subcategory{
		Name: "Rama", Slug: "rama", CategoryID: active.ID, Active: true,
	}).Error)

	categories, err := svc.ListNavigation()
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Activa", categories[0].Name)
	assert.Len(t, categories[0].Subcategories, 1)
}

func TestCatalogService_ListFilters(t *testing.T) {
	testDB, svc := setupCatalogService(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, testDB.Create(&model.Category{Name: "Hogar", Slug: "hogar", Active: true}).Error)
	require.NoError(t, testDB.Create(&model.Brand{Name: "Acme", Slug: "acme", Active: true}).Error)
	require.NoError(t, testDB.Create(&model.Supplier{Name: "Norte", Slug: "norte", Active: true}).Error)
	require.NoError(t, testDB.Create(&model.Status{Name: "Nuevo", Slug: "nuevo", Active: true}).Error)

	filters, err := svc.ListFilters()
	require.NoError(t, err)
	assert.Len(t, filters.Categories, 1)
	assert.Len(t, filters.Brands, 1)
	assert.Len(t, filters.Suppliers, 1)
	assert.Len(t, filters.Statuses, 1)
}

func TestCatalogService_ListProducts_GalleryMainImage(t *testing.T) {
	testDB, svc := setupCatalogService(t)
	defer db.CleanupTestDB(testDB)

	product := seedCatalogProduct(t, testDB, "Florero", "florero", nil)
	require.NoError(t, testDB.Create(&model.ProductImage{
		ProductID: product.ID,
		ImageURL:  "https://cdn.example.com/florero-principal.jpg",
		IsMain:    true,
	}).Error)

	page, err := svc.ListProducts(CatalogQuery{Page: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.NotNil(t, page.Items[0].MainImage)
	assert.Equal(t, "https://cdn.example.com/florero-principal.jpg", page.Items[0].MainImage.URL)

	search, err := svc.QuickSearch("florero")
	require.NoError(t, err)
	require.Len(t, search.Results, 1)
	assert.Equal(t, "https://cdn.example.com/florero-principal.jpg", search.Results[0].ImageURL)
}
