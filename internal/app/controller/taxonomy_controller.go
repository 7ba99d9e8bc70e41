package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/Manulynx/kitaluro/internal/errors"
	"github.com/Manulynx/kitaluro/internal/app/service"
	"github.com/Manulynx/kitaluro/internal/middleware"
)

// TaxonomyController is the admin CRUD surface for categories,
// subcategories, brands, suppliers and statuses.
type TaxonomyController struct {
	taxonomyService service.TaxonomyService
}

func NewTaxonomyController(taxonomyService service.TaxonomyService) *TaxonomyController {
	return &TaxonomyController{
		taxonomyService: taxonomyService,
	}
}

func respondTaxonomyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTaxonomyNotFound):
		apperrors.NotFound(c, apperrors.TaxonomyNotFound, "")
	case errors.Is(err, service.ErrDuplicateName):
		apperrors.Conflict(c, apperrors.TaxonomyDuplicateName, "Ya existe una entidad con ese nombre")
	default:
		apperrors.InternalError(c, "")
	}
}

func deletedResponse(c *gin.Context, report *service.DeleteReport) {
	c.JSON(http.StatusOK, gin.H{
		"message":  "Eliminado correctamente",
		"warnings": report.Warnings,
	})
}

// ListCategories returns all categories with subcategories
// GET /api/v1/admin/categories
func (ctrl *TaxonomyController) ListCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.taxonomyService.ListCategories(false)
	if err != nil {
		log.Error("Failed to list categories", err, nil)
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory creates a category
// POST /api/v1/admin/categories
func (ctrl *TaxonomyController) CreateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var input service.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	category, err := ctrl.taxonomyService.CreateCategory(input)
	if err != nil {
		log.Warn("Category creation failed", map[string]interface{}{
			"name":  input.Name,
			"error": err.Error(),
		})
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// UpdateCategory updates a category
// PUT /api/v1/admin/categories/:id
func (ctrl *TaxonomyController) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input service.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	category, err := ctrl.taxonomyService.UpdateCategory(id, input)
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteCategory deletes a category, reporting the cascade as warnings
// DELETE /api/v1/admin/categories/:id
func (ctrl *TaxonomyController) DeleteCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c)
	if !ok {
		return
	}

	report, err := ctrl.taxonomyService.DeleteCategory(id)
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}

	log.Info("Category deleted", map[string]interface{}{
		"category_id": id,
		"warnings":    report.Warnings,
	})
	deletedResponse(c, report)
}

// ListSubcategories returns subcategories, optionally scoped to a category
// GET /api/v1/admin/subcategories?category_id=N
func (ctrl *TaxonomyController) ListSubcategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var categoryID uint
	if id := queryUint(c, "category_id"); id != nil {
		categoryID = *id
	}

	subcategories, err := ctrl.taxonomyService.ListSubcategories(categoryID, false)
	if err != nil {
		log.Error("Failed to list subcategories", err, nil)
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"subcategories": subcategories})
}

// CreateSubcategory creates a subcategory under a category
// POST /api/v1/admin/subcategories
func (ctrl *TaxonomyController) CreateSubcategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var input service.SubcategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	subcategory, err := ctrl.taxonomyService.CreateSubcategory(input)
	if err != nil {
		log.Warn("Subcategory creation failed", map[string]interface{}{
			"name":  input.Name,
			"error": err.Error(),
		})
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"subcategory": subcategory})
}

// UpdateSubcategory updates a subcategory
// PUT /api/v1/admin/subcategories/:id
func (ctrl *TaxonomyController) UpdateSubcategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input service.SubcategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	subcategory, err := ctrl.taxonomyService.UpdateSubcategory(id, input)
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subcategory": subcategory})
}

// DeleteSubcategory deletes a subcategory
// DELETE /api/v1/admin/subcategories/:id
func (ctrl *TaxonomyController) DeleteSubcategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	report, err := ctrl.taxonomyService.DeleteSubcategory(id)
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	deletedResponse(c, report)
}

// ListBrands returns all brands
// GET /api/v1/admin/brands
func (ctrl *TaxonomyController) ListBrands(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	brands, err := ctrl.taxonomyService.ListBrands(false)
	if err != nil {
		log.Error("Failed to list brands", err, nil)
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

// CreateBrand creates a brand
// POST /api/v1/admin/brands
func (ctrl *TaxonomyController) CreateBrand(c *gin.Context) {
	var input service.BrandInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	brand, err := ctrl.taxonomyService.CreateBrand(input)
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"brand": brand})
}

// UpdateBrand updates a brand
// PUT /api/v1/admin/brands/:id
func (ctrl *TaxonomyController) UpdateBrand(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input service.BrandInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	brand, err := ctrl.taxonomyService.UpdateBrand(id, input)
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"brand": brand})
}

// DeleteBrand deletes a brand
// DELETE /api/v1/admin/brands/:id
func (ctrl *TaxonomyController) DeleteBrand(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	report, err := ctrl.taxonomyService.DeleteBrand(id)
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	deletedResponse(c, report)
}

// ListSuppliers returns all suppliers with their PROV codes
// GET /api/v1/admin/suppliers
func (ctrl *TaxonomyController) ListSuppliers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	suppliers, err := ctrl.taxonomyService.ListSuppliers(false)
	if err != nil {
		log.Error("Failed to list suppliers", err, nil)
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"suppliers": suppliers})
}

// CreateSupplier creates a supplier; the PROV- code is generated on insert
// POST /api/v1/admin/suppliers
func (ctrl *TaxonomyController) CreateSupplier(c *gin.Context) {
	var input service.SupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	supplier, err := ctrl.taxonomyService.CreateSupplier(input)
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"supplier": supplier})
}

// UpdateSupplier updates a supplier
// PUT /api/v1/admin/suppliers/:id
func (ctrl *TaxonomyController) UpdateSupplier(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input service.SupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	supplier, err := ctrl.taxonomyService.UpdateSupplier(id, input)
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"supplier": supplier})
}

// DeleteSupplier deletes a supplier
// DELETE /api/v1/admin/suppliers/:id
func (ctrl *TaxonomyController) DeleteSupplier(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	report, err := ctrl.taxonomyService.DeleteSupplier(id)
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	deletedResponse(c, report)
}

// ListStatuses returns all statuses
// GET /api/v1/admin/statuses
func (ctrl *TaxonomyController) ListStatuses(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	statuses, err := ctrl.taxonomyService.ListStatuses(false)
	if err != nil {
		log.Error("Failed to list statuses", err, nil)
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"statuses": statuses})
}

// CreateStatus creates a status
// POST /api/v1/admin/statuses
func (ctrl *TaxonomyController) CreateStatus(c *gin.Context) {
	var input service.StatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	status, err := ctrl.taxonomyService.CreateStatus(input)
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": status})
}

// UpdateStatus updates a status
// PUT /api/v1/admin/statuses/:id
func (ctrl *TaxonomyController) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input service.StatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	status, err := ctrl.taxonomyService.UpdateStatus(id, input)
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// DeleteStatus deletes a status
// DELETE /api/v1/admin/statuses/:id
func (ctrl *TaxonomyController) DeleteStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	report, err := ctrl.taxonomyService.DeleteStatus(id)
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	deletedResponse(c, report)
}
