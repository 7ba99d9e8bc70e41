package repository

import (
	"fmt"
	"strings"

	"github.com/Manulynx/kitaluro/internal/app/model"
	"github.com/Manulynx/kitaluro/pkg/logger"
	"gorm.io/gorm"
)

// PageSize is the fixed page size of the public catalog listing.
const PageSize = 12

type CatalogSort string

const (
	CatalogSortDefault   CatalogSort = "default"
	CatalogSortPriceAsc  CatalogSort = "price_asc"
	CatalogSortPriceDesc CatalogSort = "price_desc"
	CatalogSortNameAsc   CatalogSort = "name_asc"
	CatalogSortNameDesc  CatalogSort = "name_desc"
	CatalogSortNewest    CatalogSort = "newest"
	CatalogSortOldest    CatalogSort = "oldest"
)

// CatalogFilter narrows the product set. Every set field composes with the
// others as a logical AND. VisibleOnly applies the active+available predicate
// and must be true for every public-facing query.
type CatalogFilter struct {
	CategorySlug    string
	SubcategorySlug string
	BrandID         *uint
	SupplierID      *uint
	StatusID        *uint
	Featured        *bool
	OnSale          *bool
	Search          string
	Sort            CatalogSort
	Page            int
	VisibleOnly     bool
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindPage(filter CatalogFilter) (products []model.Product, total int64, page int, err error)
	Search(query string, limit int) ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	FindBySlug(slug string, visibleOnly bool) (*model.Product, error)
	FindRelated(product *model.Product, limit int) ([]model.Product, error)
	ExistsSKU(sku string, excludeID uint) (bool, error)
	ExistsSlug(slug string, excludeID uint) (bool, error)
	Update(product *model.Product) error
	Delete(id uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name": product.Name,
		"slug": product.Slug,
		"sku":  product.SKU,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name": product.Name,
			"sku":  product.SKU,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"sku":        product.SKU,
	})
	return nil
}

// orderedGallery is the canonical gallery order for the current image and
// video tables.
func orderedGallery(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC, created_at DESC")
}

// orderedLegacyMedia keeps main entries ahead of tied-order siblings, matching
// the legacy table's display order.
func orderedLegacyMedia(db *gorm.DB) *gorm.DB {
	return db.Where("active = ?", true).
		Order("sort_order ASC, is_main DESC, created_at DESC")
}

// baseQuery preloads everything a product card needs, galleries included, so
// media resolution works on listing and search rows as well as on detail.
func (r *productRepository) baseQuery() *gorm.DB {
	return r.db.Model(&model.Product{}).
		Preload("Category").
		Preload("Subcategory").
		Preload("Brand").
		Preload("Supplier").
		Preload("Status").
		Preload("Medias", orderedLegacyMedia).
		Preload("Images", orderedGallery).
		Preload("Videos", orderedGallery)
}

func applyFilter(query *gorm.DB, filter CatalogFilter) *gorm.DB {
	if filter.VisibleOnly {
		query = query.Where("products.active = ? AND products.available = ?", true, true)
	}

	if filter.CategorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.SubcategorySlug != "" {
		query = query.Joins("JOIN subcategories ON subcategories.id = products.subcategory_id").
			Where("subcategories.slug = ?", filter.SubcategorySlug)
	}
	if filter.BrandID != nil {
		query = query.Where("products.brand_id = ?", *filter.BrandID)
	}
	if filter.SupplierID != nil {
		query = query.Where("products.supplier_id = ?", *filter.SupplierID)
	}
	if filter.StatusID != nil {
		query = query.Where("products.status_id = ?", *filter.StatusID)
	}
	if filter.Featured != nil {
		query = query.Where("products.featured = ?", *filter.Featured)
	}
	if filter.OnSale != nil {
		query = query.Where("products.on_sale = ?", *filter.OnSale)
	}

	if filter.Search != "" {
		like := fmt.Sprintf("%%%s%%", strings.ToLower(filter.Search))
		query = query.Where(
			"LOWER(products.name) LIKE ? OR LOWER(products.short_description) LIKE ? OR LOWER(products.description) LIKE ? OR LOWER(products.sku) LIKE ?",
			like, like, like, like,
		)
	}

	return query
}

func applySort(query *gorm.DB, sort CatalogSort) *gorm.DB {
	switch sort {
	case CatalogSortPriceAsc:
		query = query.Order("products.price ASC")
	case CatalogSortPriceDesc:
		query = query.Order("products.price DESC")
	case CatalogSortNameAsc:
		query = query.Order("products.name ASC")
	case CatalogSortNameDesc:
		query = query.Order("products.name DESC")
	case CatalogSortOldest:
		return query.Order("products.created_at ASC").Order("products.id ASC")
	case CatalogSortNewest:
		return query.Order("products.created_at DESC").Order("products.id DESC")
	default:
		// Unknown keys fall back to the storefront order: featured first,
		// discounted second, newest last.
		query = query.Order("products.featured DESC").Order("products.on_sale DESC")
	}
	return query.Order("products.created_at DESC").Order("products.id DESC")
}

func (r *productRepository) FindAll() ([]model.Product, error) {
	logger.Debug("Finding all products in database", nil)

	var products []model.Product
	err := applySort(r.baseQuery(), CatalogSortNewest).Find(&products).Error
	if err != nil {
		logger.Error("Failed to find all products in database", err, nil)
		return nil, err
	}

	logger.Debug("Products found in database", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

// FindPage runs the listing pipeline: filter, count, clamp the requested page
// into range, then fetch the page in the requested order. The clamped page
// number is returned alongside the rows.
func (r *productRepository) FindPage(filter CatalogFilter) ([]model.Product, int64, int, error) {
	logger.Debug("Finding product page with filter", map[string]interface{}{
		"category_slug":    filter.CategorySlug,
		"subcategory_slug": filter.SubcategorySlug,
		"brand_id":         filter.BrandID,
		"supplier_id":      filter.SupplierID,
		"status_id":        filter.StatusID,
		"search":           filter.Search,
		"sort":             filter.Sort,
		"page":             filter.Page,
		"visible_only":     filter.VisibleOnly,
	})

	var total int64
	countQuery := applyFilter(r.db.Model(&model.Product{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		logger.Error("Failed to count products with filter", err, map[string]interface{}{
			"search": filter.Search,
		})
		return nil, 0, 0, err
	}

	totalPages := int((total + PageSize - 1) / PageSize)
	page := filter.Page
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	query := applyFilter(r.baseQuery(), filter)
	query = applySort(query, filter.Sort)
	query = query.Limit(PageSize).Offset((page - 1) * PageSize)

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to find product page with filter", err, map[string]interface{}{
			"search": filter.Search,
			"page":   page,
		})
		return nil, 0, 0, err
	}

	logger.Debug("Product page found", map[string]interface{}{
		"count": len(products),
		"total": total,
		"page":  page,
	})
	return products, total, page, nil
}

// Search is the quick-search lookup: visible products matching the query,
// newest first, capped at limit.
func (r *productRepository) Search(query string, limit int) ([]model.Product, error) {
	filter := CatalogFilter{Search: query, VisibleOnly: true}

	q := applyFilter(r.baseQuery(), filter)
	q = applySort(q, CatalogSortNewest)
	if limit > 0 {
		q = q.Limit(limit)
	}

	var products []model.Product
	if err := q.Find(&products).Error; err != nil {
		logger.Error("Failed to search products in database", err, map[string]interface{}{
			"query": query,
		})
		return nil, err
	}
	return products, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	logger.Debug("Finding product by ID in database", map[string]interface{}{
		"product_id": id,
	})

	var product model.Product
	err := r.baseQuery().First(&product, id).Error
	if err != nil {
		logger.Error("Failed to find product by ID in database", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindBySlug(slug string, visibleOnly bool) (*model.Product, error) {
	logger.Debug("Finding product by slug in database", map[string]interface{}{
		"slug":         slug,
		"visible_only": visibleOnly,
	})

	query := r.baseQuery().
		Preload("Ratings", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("products.slug = ?", slug)
	if visibleOnly {
		query = query.Where("products.active = ? AND products.available = ?", true, true)
	}

	var product model.Product
	if err := query.First(&product).Error; err != nil {
		logger.Error("Failed to find product by slug in database", err, map[string]interface{}{
			"slug": slug,
		})
		return nil, err
	}
	return &product, nil
}

// FindRelated returns visible products sharing the category, subcategory or
// brand of the given product, excluding it, newest first.
func (r *productRepository) FindRelated(product *model.Product, limit int) ([]model.Product, error) {
	if product.CategoryID == nil && product.SubcategoryID == nil && product.BrandID == nil {
		return []model.Product{}, nil
	}

	query := r.baseQuery().
		Where("products.active = ? AND products.available = ?", true, true).
		Where("products.id <> ?", product.ID)

	conds := r.db.Where("1 = 0")
	if product.CategoryID != nil {
		conds = conds.Or("products.category_id = ?", *product.CategoryID)
	}
	if product.SubcategoryID != nil {
		conds = conds.Or("products.subcategory_id = ?", *product.SubcategoryID)
	}
	if product.BrandID != nil {
		conds = conds.Or("products.brand_id = ?", *product.BrandID)
	}
	query = query.Where(conds)

	query = applySort(query, CatalogSortNewest)
	if limit > 0 {
		query = query.Limit(limit)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to find related products in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return nil, err
	}
	return products, nil
}

func (r *productRepository) ExistsSKU(sku string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&model.Product{}).Where("sku = ?", sku)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		logger.Error("Failed to check SKU existence in database", err, map[string]interface{}{
			"sku": sku,
		})
		return false, err
	}
	return count > 0, nil
}

func (r *productRepository) ExistsSlug(slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&model.Product{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		logger.Error("Failed to check slug existence in database", err, map[string]interface{}{
			"slug": slug,
		})
		return false, err
	}
	return count > 0, nil
}

func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})

	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	if err := r.db.Delete(&model.Product{}, id).Error; err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}
