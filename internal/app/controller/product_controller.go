package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/Manulynx/kitaluro/internal/errors"
	"github.com/Manulynx/kitaluro/internal/app/service"
	"github.com/Manulynx/kitaluro/internal/middleware"
)

// ProductController is the admin write surface for products. Every route is
// behind authentication; see the router for role requirements.
type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// ProductRequest couples the typed product fields with the gallery changes
// applied in the same write.
type ProductRequest struct {
	service.ProductInput
	Gallery service.GalleryDelta `json:"gallery"`
}

func parseID(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "")
		return 0, false
	}
	return uint(id), true
}

func respondProductWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNameRequired):
		apperrors.BadRequest(c, apperrors.ValidationRequired, "El nombre es obligatorio")
	case errors.Is(err, service.ErrInvalidPrice):
		apperrors.BadRequest(c, apperrors.CatalogInvalidPrice, "El precio debe ser mayor que cero")
	case errors.Is(err, service.ErrInvalidSalePrice):
		apperrors.BadRequest(c, apperrors.CatalogInvalidPrice, "El precio de oferta debe ser positivo y menor que el precio")
	case errors.Is(err, service.ErrInvalidStock):
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "El stock no puede ser negativo")
	case errors.Is(err, service.ErrTaxonomyRef):
		apperrors.BadRequest(c, apperrors.TaxonomyNotFound, "Alguna referencia de taxonomía no existe")
	case errors.Is(err, service.ErrSKUTaken):
		apperrors.Conflict(c, apperrors.CatalogSKUConflict, "El SKU ya está en uso")
	case errors.Is(err, service.ErrSKUExhausted):
		apperrors.Conflict(c, apperrors.CatalogSKUConflict, "No se pudo generar un SKU único")
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.CatalogProductNotFound, "")
	case errors.Is(err, service.ErrMediaNotFound):
		apperrors.NotFound(c, apperrors.ResourceNotFound, "Entrada multimedia inexistente")
	default:
		apperrors.InternalError(c, "")
	}
}

// ListProducts returns every product regardless of visibility flags
// GET /api/v1/admin/products
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.productService.ListAll()
	if err != nil {
		log.Error("Failed to list products", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct returns one product with galleries
// GET /api/v1/admin/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := ctrl.productService.GetProduct(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// CreateProduct creates a product, generating slug and SKU when absent
// POST /api/v1/admin/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	product, err := ctrl.productService.CreateProduct(req.ProductInput, req.Gallery)
	if err != nil {
		log.Warn("Product creation failed", map[string]interface{}{
			"name":  req.Name,
			"error": err.Error(),
		})
		respondProductWriteError(c, err)
		return
	}

	log.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"sku":        product.SKU,
	})
	c.JSON(http.StatusCreated, gin.H{
		"message": "Producto creado correctamente",
		"product": product,
	})
}

// UpdateProduct updates a product and applies gallery deltas
// PUT /api/v1/admin/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c)
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product update request", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	product, err := ctrl.productService.UpdateProduct(id, req.ProductInput, req.Gallery)
	if err != nil {
		log.Warn("Product update failed", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		respondProductWriteError(c, err)
		return
	}

	log.Info("Product updated", map[string]interface{}{
		"product_id": id,
	})
	c.JSON(http.StatusOK, gin.H{
		"message": "Producto actualizado correctamente",
		"product": product,
	})
}

// DeleteProduct removes a product
// DELETE /api/v1/admin/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "")
			return
		}
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})
	c.JSON(http.StatusOK, gin.H{
		"message": "Producto eliminado correctamente",
	})
}

// AddMedia appends gallery entries to a product
// POST /api/v1/admin/products/:id/media
func (ctrl *ProductController) AddMedia(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c)
	if !ok {
		return
	}

	var delta service.GalleryDelta
	if err := c.ShouldBindJSON(&delta); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	if _, err := ctrl.productService.GetProduct(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	if err := ctrl.productService.AddImages(id, delta.AddImages); err != nil {
		log.Error("Failed to add product images", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}
	if err := ctrl.productService.AddVideos(id, delta.AddVideos); err != nil {
		log.Error("Failed to add product videos", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Multimedia añadida correctamente",
	})
}

// RemoveMedia deletes gallery entries from a product
// DELETE /api/v1/admin/products/:id/media
func (ctrl *ProductController) RemoveMedia(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c)
	if !ok {
		return
	}

	var delta service.GalleryDelta
	if err := c.ShouldBindJSON(&delta); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	if err := ctrl.productService.RemoveMedia(id, delta); err != nil {
		log.Warn("Failed to remove product media", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		respondProductWriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Multimedia eliminada correctamente",
	})
}

// ExportProducts streams the full product list as a spreadsheet
// GET /api/v1/admin/products/export
func (ctrl *ProductController) ExportProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	data, err := ctrl.productService.ExportXLSX()
	if err != nil {
		log.Error("Failed to export products", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	filename := fmt.Sprintf("productos-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
