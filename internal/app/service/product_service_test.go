package service

import (
	"bytes"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
	"github.com/Manulynx/kitaluro/internal/app/model"
	"github.com/Manulynx/kitaluro/internal/app/repository"
	"github.com/Manulynx/kitaluro/internal/db"
)

func setupProductService(t *testing.T) (*gorm.DB, ProductService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	svc := NewProductService(
		repository.NewProductRepository(testDB),
		repository.NewMediaRepository(testDB),
		repository.NewCategoryRepository(testDB),
		repository.NewSubcategoryRepository(testDB),
		repository.NewBrandRepository(testDB),
		repository.NewSupplierRepository(testDB),
		repository.NewStatusRepository(testDB),
	)
	return testDB, svc
}

func validInput(name string) ProductInput {
	return ProductInput{
		Name:      name,
		Price:     decimal.NewFromInt(100),
		Stock:     5,
		Active:    true,
		Available: true,
	}
}

func TestBuildSKU(t *testing.T) {
	at := time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		supplier string
		category string
		prefix   string
	}{
		{
			name:     "Supplier and category codes",
			supplier: "Acme Distribución",
			category: "Cocina",
			prefix:   "ACM-CO-260301-1430-",
		},
		{
			name:     "Fallbacks when names are empty",
			supplier: "",
			category: "",
			prefix:   "GEN-XX-260301-1430-",
		},
		{
			name:     "Short names keep their characters",
			supplier: "Al",
			category: "B",
			prefix:   "AL-B-260301-1430-",
		},
		{
			name:     "Symbol-only names fall back",
			supplier: "++--",
			category: "!!",
			prefix:   "GEN-XX-260301-1430-",
		},
		{
			name:     "Non-alphanumeric characters are skipped",
			supplier: "  ¡ Páramo! ",
			category: "+Té",
			prefix:   "PÁR-TÉ-260301-1430-",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sku := BuildSKU(tt.supplier, tt.category, at)
			assert.True(t, len(sku) == len(tt.prefix)+4, "unexpected SKU length: %s", sku)
			assert.Equal(t, tt.prefix, sku[:len(tt.prefix)])
			assert.Regexp(t, regexp.MustCompile(`-[0-9A-F]{4}$`), sku)
		})
	}
}

func TestProductService_CreateProduct_GeneratedSKU(t *testing.T) {
	testDB, svc := setupProductService(t)
	defer db.CleanupTestDB(testDB)

	supplier := &model.Supplier{Name: "Acme Import", Slug: "acme-import", Active: true}
	require.NoError(t, testDB.Create(supplier).Error)
	category := &model.Category{Name: "Cocina", Slug: "cocina", Active: true}
	require.NoError(t, testDB.Create(category).Error)

	input := validInput("Olla exprés")
	input.SupplierID = &supplier.ID
	input.CategoryID = &category.ID

	product, err := svc.CreateProduct(input, GalleryDelta{})
	require.NoError(t, err)

	assert.Regexp(t,
		regexp.MustCompile(`^ACM-CO-\d{6}-\d{4}-[0-9A-F]{4}$`),
		product.SKU,
	)
	assert.Equal(t, "olla-expres", product.Slug)
}

func TestProductService_CreateProduct_CallerSKU(t *testing.T) {
	testDB, svc := setupProductService(t)
	defer db.CleanupTestDB(testDB)

	input := validInput("Batidora")
	input.SKU = "MI-SKU-PROPIO"

	product, err := svc.CreateProduct(input, GalleryDelta{})
	require.NoError(t, err)
	assert.Equal(t, "MI-SKU-PROPIO", product.SKU)

	// Clashing caller SKUs are never silently regenerated.
	second := validInput("Otra batidora")
	second.SKU = "MI-SKU-PROPIO"
	_, err = svc.CreateProduct(second, GalleryDelta{})
	assert.ErrorIs(t, err, ErrSKUTaken)
}

func TestProductService_CreateProduct_SlugCollision(t *testing.T) {
	testDB, svc := setupProductService(t)
	defer db.CleanupTestDB(testDB)

	first, err := svc.CreateProduct(validInput("Mesa plegable"), GalleryDelta{})
	require.NoError(t, err)
	assert.Equal(t, "mesa-plegable", first.Slug)

	second, err := svc.CreateProduct(validInput("Mesa plegable"), GalleryDelta{})
	require.NoError(t, err)
	assert.Equal(t, "mesa-plegable-2", second.Slug)

	third, err := svc.CreateProduct(validInput("Mesa plegable"), GalleryDelta{})
	require.NoError(t, err)
	assert.Equal(t, "mesa-plegable-3", third.Slug)
}

func TestProductService_CreateProduct_Validation(t *testing.T) {
	testDB, svc := setupProductService(t)
	defer db.CleanupTestDB(testDB)

	salePriceAbove := decimal.NewFromInt(200)
	negativeSale := decimal.NewFromInt(-5)

	tests := []struct {
		name    string
		mutate  func(*ProductInput)
		wantErr error
	}{
		{
			name:    "Empty name",
			mutate:  func(in *ProductInput) { in.Name = "" },
			wantErr: ErrNameRequired,
		},
		{
			name:    "Zero price",
			mutate:  func(in *ProductInput) { in.Price = decimal.Zero },
			wantErr: ErrInvalidPrice,
		},
		{
			name:    "Negative stock",
			mutate:  func(in *ProductInput) { in.Stock = -1 },
			wantErr: ErrInvalidStock,
		},
		{
			name:    "Sale price above price",
			mutate:  func(in *ProductInput) { in.SalePrice = &salePriceAbove },
			wantErr: ErrInvalidSalePrice,
		},
		{
			name:    "Negative sale price",
			mutate:  func(in *ProductInput) { in.SalePrice = &negativeSale },
			wantErr: ErrInvalidSalePrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput("Producto")
			tt.mutate(&input)
			_, err := svc.CreateProduct(input, GalleryDelta{})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProductService_CreateProduct_TaxonomyRef(t *testing.T) {
	testDB, svc := setupProductService(t)
	defer db.CleanupTestDB(testDB)

	missing := uint(999)
	input := validInput("Fantasma")
	input.CategoryID = &missing

	_, err := svc.CreateProduct(input, GalleryDelta{})
	assert.ErrorIs(t, err, ErrTaxonomyRef)
}

func TestProductService_OnSaleDerivation(t *testing.T) {
	testDB, svc := setupProductService(t)
	defer db.CleanupTestDB(testDB)

	sale := decimal.NewFromInt(75)
	input := validInput("Aspiradora")
	input.SalePrice = &sale

	product, err := svc.CreateProduct(input, GalleryDelta{})
	require.NoError(t, err)
	assert.True(t, product.OnSale)
	assert.Equal(t, 25, product.DiscountPercent())
	assert.True(t, product.FinalPrice().Equal(sale))

	// Dropping the sale price turns the flag off on update.
	input.SalePrice = nil
	updated, err := svc.UpdateProduct(product.ID, input, GalleryDelta{})
	require.NoError(t, err)
	assert.False(t, updated.OnSale)
	assert.True(t, updated.FinalPrice().Equal(updated.Price))
}

func TestProductService_UpdateProduct_SlugOnRename(t *testing.T) {
	testDB, svc := setupProductService(t)
	defer db.CleanupTestDB(testDB)

	product, err := svc.CreateProduct(validInput("Lámpara de pie"), GalleryDelta{})
	require.NoError(t, err)
	originalSKU := product.SKU

	// Same name: slug untouched.
	input := validInput("Lámpara de pie")
	input.Price = decimal.NewFromInt(120)
	updated, err := svc.UpdateProduct(product.ID, input, GalleryDelta{})
	require.NoError(t, err)
	assert.Equal(t, "lampara-de-pie", updated.Slug)
	assert.Equal(t, originalSKU, updated.SKU)

	// Renamed: slug re-derived, SKU never regenerated.
	input.Name = "Lámpara de techo"
	updated, err = svc.UpdateProduct(product.ID, input, GalleryDelta{})
	require.NoError(t, err)
	assert.Equal(t, "lampara-de-techo", updated.Slug)
	assert.Equal(t, originalSKU, updated.SKU)
}

func TestProductService_UpdateProduct_NotFound(t *testing.T) {
	testDB, svc := setupProductService(t)
	defer db.CleanupTestDB(testDB)

	_, err := svc.UpdateProduct(999, validInput("Nada"), GalleryDelta{})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_Gallery(t *testing.T) {
	testDB, svc := setupProductService(t)
	defer db.CleanupTestDB(testDB)

	product, err := svc.CreateProduct(validInput("Espejo"), GalleryDelta{
		AddImages: []ImageInput{
			{ImageURL: "https://cdn.example.com/a.jpg", IsMain: true},
			{ImageURL: "https://cdn.example.com/b.jpg"},
		},
	})
	require.NoError(t, err)
	require.Len(t, product.Images, 2)

	// A new main image demotes the previous one.
	err = svc.AddImages(product.ID, []ImageInput{
		{ImageURL: "https://cdn.example.com/c.jpg", IsMain: true},
	})
	require.NoError(t, err)

	refreshed, err := svc.GetProduct(product.ID)
	require.NoError(t, err)
	require.Len(t, refreshed.Images, 3)

	mains := 0
	for _, img := range refreshed.Images {
		if img.IsMain {
			mains++
			assert.Equal(t, "https://cdn.example.com/c.jpg", img.ImageURL)
		}
	}
	assert.Equal(t, 1, mains)

	// Removing a foreign ID fails without touching anything.
	err = svc.RemoveMedia(product.ID, GalleryDelta{RemoveImageIDs: []uint{9999}})
	assert.ErrorIs(t, err, ErrMediaNotFound)

	err = svc.RemoveMedia(product.ID, GalleryDelta{RemoveImageIDs: []uint{refreshed.Images[0].ID}})
	require.NoError(t, err)

	refreshed, err = svc.GetProduct(product.ID)
	require.NoError(t, err)
	assert.Len(t, refreshed.Images, 2)
}

func TestProductService_DeleteProduct(t *testing.T) {
	testDB, svc := setupProductService(t)
	defer db.CleanupTestDB(testDB)

	product, err := svc.CreateProduct(validInput("Cortina"), GalleryDelta{})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(product.ID))
	_, err = svc.GetProduct(product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	assert.ErrorIs(t, svc.DeleteProduct(product.ID), ErrProductNotFound)
}

func TestProductService_SKUUniquenessUnderVolume(t *testing.T) {
	testDB, svc := setupProductService(t)
	defer db.CleanupTestDB(testDB)

	seen := make(map[string]bool)
	for i := 0; i < 60; i++ {
		product, err := svc.CreateProduct(validInput(fmt.Sprintf("Artículo %d", i)), GalleryDelta{})
		require.NoError(t, err)
		assert.False(t, seen[product.SKU], "duplicate SKU %s", product.SKU)
		seen[product.SKU] = true
	}
}

func TestProductService_ExportXLSX(t *testing.T) {
	testDB, svc := setupProductService(t)
	defer db.CleanupTestDB(testDB)

	sale := decimal.NewFromInt(75)
	input := validInput("Tostadora")
	input.SKU = "TOS-01"
	input.SalePrice = &sale
	_, err := svc.CreateProduct(input, GalleryDelta{})
	require.NoError(t, err)

	data, err := svc.ExportXLSX()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Productos")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Nombre", rows[0][1])
	assert.Equal(t, "Tostadora", rows[1][1])
	assert.Equal(t, "TOS-01", rows[1][2])
	assert.Equal(t, "Sí", rows[1][15]) // en oferta
}
