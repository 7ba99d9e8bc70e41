package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apperrors "github.com/Manulynx/kitaluro/internal/errors"
	"github.com/Manulynx/kitaluro/internal/app/service"
	"github.com/Manulynx/kitaluro/internal/middleware"
)

// CatalogController serves the public storefront endpoints. Everything here
// goes through the visible-only predicate; nothing requires authentication.
type CatalogController struct {
	catalogService service.CatalogService
	ratingService  service.RatingService
}

func NewCatalogController(catalogService service.CatalogService, ratingService service.RatingService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
		ratingService:  ratingService,
	}
}

func queryUint(c *gin.Context, name string) *uint {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	v := uint(value)
	return &v
}

func queryBool(c *gin.Context, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}

// ListProducts returns a filtered, sorted, paginated catalog page
// GET /api/v1/catalog/products
func (ctrl *CatalogController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	query := service.CatalogQuery{
		CategorySlug:    c.Query("category"),
		SubcategorySlug: c.Query("subcategory"),
		BrandID:         queryUint(c, "brand_id"),
		SupplierID:      queryUint(c, "supplier_id"),
		StatusID:        queryUint(c, "status_id"),
		Featured:        queryBool(c, "featured"),
		OnSale:          queryBool(c, "on_sale"),
		Query:           c.Query("q"),
		Sort:            c.Query("sort"),
		Page:            page,
	}

	result, err := ctrl.catalogService.ListProducts(query)
	if err != nil {
		log.Error("Failed to list catalog products", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Catalog products listed", map[string]interface{}{
		"count": len(result.Items),
		"total": result.TotalCount,
		"page":  result.PageNumber,
	})
	c.JSON(http.StatusOK, result)
}

// GetProductDetail returns the full detail page payload for a visible product
// GET /api/v1/catalog/products/:slug
func (ctrl *CatalogController) GetProductDetail(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	slug := c.Param("slug")
	detail, err := ctrl.catalogService.GetProductDetail(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found", map[string]interface{}{
				"slug": slug,
			})
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "")
			return
		}
		log.Error("Failed to fetch product detail", err, map[string]interface{}{
			"slug": slug,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, detail)
}

// QuickSearch returns a short product list for the search widget. Queries
// under two characters get success=false rather than an HTTP error
// GET /api/v1/catalog/search
func (ctrl *CatalogController) QuickSearch(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	result, err := ctrl.catalogService.QuickSearch(c.Query("q"))
	if err != nil {
		log.Error("Quick search failed", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetNavigation returns active categories with their subcategories
// GET /api/v1/catalog/categories
func (ctrl *CatalogController) GetNavigation(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.catalogService.ListNavigation()
	if err != nil {
		log.Error("Failed to fetch navigation", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
	})
}

// GetFilters returns the facet metadata for the listing page
// GET /api/v1/catalog/filters
func (ctrl *CatalogController) GetFilters(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filters, err := ctrl.catalogService.ListFilters()
	if err != nil {
		log.Error("Failed to fetch catalog filters", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, filters)
}
