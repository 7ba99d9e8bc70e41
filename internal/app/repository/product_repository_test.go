package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"github.com/Manulynx/kitaluro/internal/app/model"
	"github.com/Manulynx/kitaluro/internal/db"
)

func setupProductTest(t *testing.T) (*gorm.DB, ProductRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewProductRepository(testDB)
	return testDB, repo
}

func makeProduct(t *testing.T, testDB *gorm.DB, name string, price float64, mutate func(*model.Product)) *model.Product {
	t.Helper()

	product := &model.Product{
		Name:      name,
		Slug:      fmt.Sprintf("%s-%d", name, time.Now().UnixNano()),
		SKU:       fmt.Sprintf("SKU-%s-%d", name, time.Now().UnixNano()),
		Price:     decimal.NewFromFloat(price),
		Stock:     10,
		Active:    true,
		Available: true,
	}
	if mutate != nil {
		mutate(product)
	}
	require.NoError(t, testDB.Create(product).Error)
	return product
}

func TestProductRepository_FindPage_VisibleOnly(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	makeProduct(t, testDB, "visible", 10, nil)
	makeProduct(t, testDB, "inactive", 10, func(p *model.Product) { p.Active = false })
	makeProduct(t, testDB, "unavailable", 10, func(p *model.Product) { p.Available = false })

	products, total, page, err := repo.FindPage(CatalogFilter{Page: 1, VisibleOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, 1, page)
	require.Len(t, products, 1)
	assert.Equal(t, "visible", products[0].Name)

	// Without the visibility predicate all three show up.
	_, total, _, err = repo.FindPage(CatalogFilter{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestProductRepository_FindPage_Filters(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	category := &model.Category{Name: "Cocina", Slug: "cocina", Active: true}
	require.NoError(t, testDB.Create(category).Error)
	brand := &model.Brand{Name: "Acme", Slug: "acme", Active: true}
	require.NoError(t, testDB.Create(brand).Error)

	makeProduct(t, testDB, "sarten", 25, func(p *model.Product) {
		p.CategoryID = &category.ID
		p.BrandID = &brand.ID
		p.Featured = true
	})
	makeProduct(t, testDB, "olla", 40, func(p *model.Product) {
		p.CategoryID = &category.ID
	})
	makeProduct(t, testDB, "toalla", 8, nil)

	featured := true
	tests := []struct {
		name      string
		filter    CatalogFilter
		wantTotal int64
		wantNames []string
	}{
		{
			name:      "By category slug",
			filter:    CatalogFilter{CategorySlug: "cocina", VisibleOnly: true},
			wantTotal: 2,
		},
		{
			name:      "By brand",
			filter:    CatalogFilter{BrandID: &brand.ID, VisibleOnly: true},
			wantTotal: 1,
			wantNames: []string{"sarten"},
		},
		{
			name:      "Category and featured compose as AND",
			filter:    CatalogFilter{CategorySlug: "cocina", Featured: &featured, VisibleOnly: true},
			wantTotal: 1,
			wantNames: []string{"sarten"},
		},
		{
			name:      "No match",
			filter:    CatalogFilter{CategorySlug: "jardin", VisibleOnly: true},
			wantTotal: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.filter.Page = 1
			products, total, _, err := repo.FindPage(tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)
			if tt.wantNames != nil {
				var names []string
				for _, p := range products {
					names = append(names, p.Name)
				}
				assert.Equal(t, tt.wantNames, names)
			}
		})
	}
}

func TestProductRepository_FindPage_Search(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	makeProduct(t, testDB, "Cafetera Italiana", 30, nil)
	makeProduct(t, testDB, "Taza", 5, func(p *model.Product) {
		p.Description = "Ideal para el cafe de la mañana"
	})
	makeProduct(t, testDB, "Plancha", 45, nil)

	// Case-insensitive across name and description.
	_, total, _, err := repo.FindPage(CatalogFilter{Search: "CAFE", Page: 1, VisibleOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, total, _, err = repo.FindPage(CatalogFilter{Search: "plancha", Page: 1, VisibleOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestProductRepository_FindPage_Sorting(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	makeProduct(t, testDB, "barato", 5, func(p *model.Product) { p.CreatedAt = base })
	makeProduct(t, testDB, "medio", 20, func(p *model.Product) { p.CreatedAt = base.Add(time.Hour) })
	makeProduct(t, testDB, "caro", 90, func(p *model.Product) {
		p.CreatedAt = base.Add(2 * time.Hour)
		p.Featured = true
	})

	tests := []struct {
		name      string
		sort      CatalogSort
		wantFirst string
	}{
		{name: "Price ascending", sort: CatalogSortPriceAsc, wantFirst: "barato"},
		{name: "Price descending", sort: CatalogSortPriceDesc, wantFirst: "caro"},
		{name: "Name ascending", sort: CatalogSortNameAsc, wantFirst: "barato"},
		{name: "Newest", sort: CatalogSortNewest, wantFirst: "caro"},
		{name: "Oldest", sort: CatalogSortOldest, wantFirst: "barato"},
		{name: "Default puts featured first", sort: CatalogSortDefault, wantFirst: "caro"},
		{name: "Unknown key falls back to default", sort: CatalogSort("garbage"), wantFirst: "caro"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, _, _, err := repo.FindPage(CatalogFilter{Sort: tt.sort, Page: 1, VisibleOnly: true})
			require.NoError(t, err)
			require.NotEmpty(t, products)
			assert.Equal(t, tt.wantFirst, products[0].Name)
		})
	}
}

func TestProductRepository_FindPage_Pagination(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	for i := 0; i < PageSize+2; i++ {
		makeProduct(t, testDB, fmt.Sprintf("producto-%02d", i), 10, nil)
	}

	products, total, page, err := repo.FindPage(CatalogFilter{Page: 1, VisibleOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(PageSize+2), total)
	assert.Equal(t, 1, page)
	assert.Len(t, products, PageSize)

	products, _, page, err = repo.FindPage(CatalogFilter{Page: 2, VisibleOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 2, page)
	assert.Len(t, products, 2)

	// Out-of-range pages clamp to the last one instead of coming back empty.
	products, _, page, err = repo.FindPage(CatalogFilter{Page: 999, VisibleOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 2, page)
	assert.Len(t, products, 2)

	products, _, page, err = repo.FindPage(CatalogFilter{Page: -3, VisibleOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 1, page)
	assert.Len(t, products, PageSize)
}

func TestProductRepository_Search_Limit(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	for i := 0; i < 10; i++ {
		makeProduct(t, testDB, fmt.Sprintf("lampara-%d", i), 15, nil)
	}
	makeProduct(t, testDB, "lampara-oculta", 15, func(p *model.Product) { p.Active = false })

	products, err := repo.Search("lampara", 8)
	require.NoError(t, err)
	assert.Len(t, products, 8)
	for _, p := range products {
		assert.True(t, p.Visible())
	}
}

func TestProductRepository_FindBySlug(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	visible := makeProduct(t, testDB, "espejo", 60, func(p *model.Product) { p.Slug = "espejo" })
	makeProduct(t, testDB, "oculto", 60, func(p *model.Product) {
		p.Slug = "oculto"
		p.Active = false
	})

	found, err := repo.FindBySlug("espejo", true)
	require.NoError(t, err)
	assert.Equal(t, visible.ID, found.ID)

	// Hidden products resolve for the admin surface but not the public one.
	_, err = repo.FindBySlug("oculto", true)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	found, err = repo.FindBySlug("oculto", false)
	require.NoError(t, err)
	assert.Equal(t, "oculto", found.Slug)
}

func TestProductRepository_FindRelated(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	category := &model.Category{Name: "Baño", Slug: "bano", Active: true}
	require.NoError(t, testDB.Create(category).Error)
	brand := &model.Brand{Name: "Rio", Slug: "rio", Active: true}
	require.NoError(t, testDB.Create(brand).Error)

	subject := makeProduct(t, testDB, "alfombra", 12, func(p *model.Product) {
		p.CategoryID = &category.ID
		p.BrandID = &brand.ID
	})
	sameCategory := makeProduct(t, testDB, "cortina", 18, func(p *model.Product) {
		p.CategoryID = &category.ID
	})
	sameBrand := makeProduct(t, testDB, "grifo", 35, func(p *model.Product) {
		p.BrandID = &brand.ID
	})
	makeProduct(t, testDB, "sin-relacion", 9, nil)
	makeProduct(t, testDB, "relacionado-oculto", 9, func(p *model.Product) {
		p.CategoryID = &category.ID
		p.Active = false
	})

	related, err := repo.FindRelated(subject, 4)
	require.NoError(t, err)

	ids := make(map[uint]bool)
	for _, p := range related {
		ids[p.ID] = true
	}
	assert.Len(t, related, 2)
	assert.True(t, ids[sameCategory.ID])
	assert.True(t, ids[sameBrand.ID])
	assert.False(t, ids[subject.ID])

	// A product with no taxonomy at all has nothing related.
	orphan := makeProduct(t, testDB, "huerfano", 5, nil)
	related, err = repo.FindRelated(orphan, 4)
	require.NoError(t, err)
	assert.Empty(t, related)
}

func TestProductRepository_ExistsSKU(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := makeProduct(t, testDB, "silla", 50, func(p *model.Product) { p.SKU = "ACM-SI-260301-1200-AB12" })

	exists, err := repo.ExistsSKU("ACM-SI-260301-1200-AB12", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	// The product itself is excluded on updates.
	exists, err = repo.ExistsSKU("ACM-SI-260301-1200-AB12", product.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsSKU("OTRO-SKU", 0)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestProductRepository_DuplicateSKU(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	makeProduct(t, testDB, "primero", 10, func(p *model.Product) { p.SKU = "DUP-01" })

	dup := &model.Product{
		Name:      "segundo",
		Slug:      "segundo",
		SKU:       "DUP-01",
		Price:     decimal.NewFromInt(10),
		Active:    true,
		Available: true,
	}
	err := repo.Create(dup)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestProductRepository_FindPage_EmptySetClampsPage(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	products, total, page, err := repo.FindPage(CatalogFilter{Page: 999, VisibleOnly: true})
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Equal(t, int64(0), total)
	assert.Equal(t, 1, page)
}

func TestProductRepository_FindPage_PreloadsGalleries(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := makeProduct(t, testDB, "lampara", 30, nil)
	require.NoError(t, testDB.Create(&model.ProductImage{
		ProductID: product.ID,
		ImageURL:  "lampara-main.jpg",
		IsMain:    true,
	}).Error)

	products, _, _, err := repo.FindPage(CatalogFilter{Page: 1, VisibleOnly: true})
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Len(t, products[0].Images, 1, "listing rows must carry their galleries")
	assert.Equal(t, "lampara-main.jpg", products[0].Images[0].ImageURL)

	results, err := repo.Search("lampara", 8)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Len(t, results[0].Images, 1, "search rows must carry their galleries")
}

func TestProductRepository_LegacyMediaMainFirstOnTiedOrder(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := makeProduct(t, testDB, "cortina", 18, nil)
	require.NoError(t, testDB.Create(&model.ProductMedia{
		ProductID: product.ID,
		Type:      model.MediaTypeImage,
		ImageURL:  "cortina-principal.jpg",
		IsMain:    true,
		Active:    true,
		CreatedAt: time.Now().Add(-time.Hour),
	}).Error)
	require.NoError(t, testDB.Create(&model.ProductMedia{
		ProductID: product.ID,
		Type:      model.MediaTypeImage,
		ImageURL:  "cortina-extra.jpg",
		Active:    true,
		CreatedAt: time.Now(),
	}).Error)

	found, err := repo.FindBySlug(product.Slug, false)
	require.NoError(t, err)
	require.Len(t, found.Medias, 2)
	assert.Equal(t, "cortina-principal.jpg", found.Medias[0].ImageURL,
		"main entry must beat a newer sibling with the same sort order")
}
