package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Manulynx/kitaluro/internal/app/model"
	"github.com/Manulynx/kitaluro/internal/app/repository"
	"github.com/Manulynx/kitaluro/pkg/logger"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

const (
	// Minimum query length for quick search.
	minSearchLen = 2
	// Quick-search result cap.
	searchLimit = 8
	// Related products shown on the detail page.
	relatedLimit = 4
)

// CatalogQuery is the public listing input. Zero values mean "no filter".
type CatalogQuery struct {
	CategorySlug    string
	SubcategorySlug string
	BrandID         *uint
	SupplierID      *uint
	StatusID        *uint
	Featured        *bool
	OnSale          *bool
	Query           string
	Sort            string
	Page            int
}

// QuickSearchResult carries success=false with a message instead of an error
// for queries that are too short.
type QuickSearchResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Results []SearchResult `json:"results"`
}

// CatalogFilters is the filter metadata the storefront renders as facets.
type CatalogFilters struct {
	Categories []model.Category `json:"categories"`
	Brands     []model.Brand    `json:"brands"`
	Suppliers  []model.Supplier `json:"suppliers"`
	Statuses   []model.Status   `json:"statuses"`
}

type CatalogService interface {
	ListProducts(query CatalogQuery) (*CatalogPage, error)
	GetProductDetail(ctx context.Context, slug string) (*ProductDetail, error)
	QuickSearch(query string) (*QuickSearchResult, error)
	ListNavigation() ([]model.Category, error)
	ListFilters() (*CatalogFilters, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
	supplierRepo repository.SupplierRepository
	statusRepo   repository.StatusRepository
	ratingSvc    RatingService
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	brandRepo repository.BrandRepository,
	supplierRepo repository.SupplierRepository,
	statusRepo repository.StatusRepository,
	ratingSvc RatingService,
) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		supplierRepo: supplierRepo,
		statusRepo:   statusRepo,
		ratingSvc:    ratingSvc,
	}
}

func parseSort(sort string) repository.CatalogSort {
	switch repository.CatalogSort(sort) {
	case repository.CatalogSortPriceAsc,
		repository.CatalogSortPriceDesc,
		repository.CatalogSortNameAsc,
		repository.CatalogSortNameDesc,
		repository.CatalogSortNewest,
		repository.CatalogSortOldest:
		return repository.CatalogSort(sort)
	default:
		// Unknown keys fall back to the composite storefront order.
		return repository.CatalogSortDefault
	}
}

func (s *catalogService) ListProducts(query CatalogQuery) (*CatalogPage, error) {
	logger.Debug("Listing catalog products", map[string]interface{}{
		"category_slug": query.CategorySlug,
		"search":        query.Query,
		"sort":          query.Sort,
		"page":          query.Page,
	})

	filter := repository.CatalogFilter{
		CategorySlug:    query.CategorySlug,
		SubcategorySlug: query.SubcategorySlug,
		BrandID:         query.BrandID,
		SupplierID:      query.SupplierID,
		StatusID:        query.StatusID,
		Featured:        query.Featured,
		OnSale:          query.OnSale,
		Search:          strings.TrimSpace(query.Query),
		Sort:            parseSort(query.Sort),
		Page:            query.Page,
		VisibleOnly:     true,
	}

	products, total, page, err := s.productRepo.FindPage(filter)
	if err != nil {
		logger.Error("Failed to list catalog products", err, nil)
		return nil, err
	}

	totalPages := int((total + repository.PageSize - 1) / repository.PageSize)
	items := make([]ProductSummary, 0, len(products))
	for i := range products {
		items = append(items, NewProductSummary(&products[i]))
	}

	result := &CatalogPage{
		Items:       items,
		TotalCount:  total,
		PageNumber:  page,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}

	logger.Info("Catalog products listed", map[string]interface{}{
		"count": len(items),
		"total": total,
		"page":  page,
	})
	return result, nil
}

func (s *catalogService) GetProductDetail(ctx context.Context, slug string) (*ProductDetail, error) {
	logger.Debug("Fetching product detail", map[string]interface{}{
		"slug": slug,
	})

	product, err := s.productRepo.FindBySlug(slug, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"slug": slug,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product detail", err, map[string]interface{}{
			"slug": slug,
		})
		return nil, err
	}

	summary, err := s.ratingSvc.GetSummary(ctx, product.ID)
	if err != nil {
		logger.Error("Failed to fetch rating summary", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return nil, err
	}

	related, err := s.productRepo.FindRelated(product, relatedLimit)
	if err != nil {
		logger.Error("Failed to fetch related products", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return nil, err
	}
	relatedSummaries := make([]ProductSummary, 0, len(related))
	for i := range related {
		relatedSummaries = append(relatedSummaries, NewProductSummary(&related[i]))
	}

	detail := &ProductDetail{
		Product:         product,
		FinalPrice:      product.FinalPrice(),
		HasDiscount:     product.HasDiscount(),
		DiscountPercent: product.DiscountPercent(),
		InStock:         product.InStock(),
		Badges:          Badges(product),
		MainImage:       ResolveMainImage(product),
		MainVideo:       ResolveMainVideo(product),
		Images:          ImageGallery(product),
		Videos:          VideoGallery(product),
		Ratings:         product.Ratings,
		RatingSummary:   summary,
		Related:         relatedSummaries,
	}
	return detail, nil
}

// QuickSearch never errors on short input: it responds success=false with an
// explanatory message so the storefront widget can render it inline.
func (s *catalogService) QuickSearch(query string) (*QuickSearchResult, error) {
	trimmed := strings.TrimSpace(query)
	if len([]rune(trimmed)) < minSearchLen {
		return &QuickSearchResult{
			Success: false,
			Message: "La búsqueda debe tener al menos 2 caracteres",
			Results: []SearchResult{},
		}, nil
	}

	products, err := s.productRepo.Search(trimmed, searchLimit)
	if err != nil {
		logger.Error("Quick search failed", err, map[string]interface{}{
			"query": trimmed,
		})
		return nil, err
	}

	results := make([]SearchResult, 0, len(products))
	for i := range products {
		results = append(results, NewSearchResult(&products[i]))
	}
	return &QuickSearchResult{Success: true, Results: results}, nil
}

// ListNavigation returns active categories with their active subcategories
// for the storefront menu.
func (s *catalogService) ListNavigation() ([]model.Category, error) {
	return s.categoryRepo.FindAllWithSubcategories(true)
}

func (s *catalogService) ListFilters() (*CatalogFilters, error) {
	categories, err := s.categoryRepo.FindAll(true)
	if err != nil {
		return nil, err
	}
	brands, err := s.brandRepo.FindAll(true)
	if err != nil {
		return nil, err
	}
	suppliers, err := s.supplierRepo.FindAll(true)
	if err != nil {
		return nil, err
	}
	statuses, err := s.statusRepo.FindAll(true)
	if err != nil {
		return nil, err
	}

	return &CatalogFilters{
		Categories: categories,
		Brands:     brands,
		Suppliers:  suppliers,
		Statuses:   statuses,
	}, nil
}
