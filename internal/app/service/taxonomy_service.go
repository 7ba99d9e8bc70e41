package service

import (
	"errors"
	"fmt"

	"github.com/Manulynx/kitaluro/internal/app/model"
	"github.com/Manulynx/kitaluro/internal/app/repository"
	"github.com/Manulynx/kitaluro/pkg/logger"
	"github.com/Manulynx/kitaluro/pkg/slug"
	"gorm.io/gorm"
)

var (
	ErrTaxonomyNotFound = errors.New("taxonomy entity not found")
	ErrDuplicateName    = errors.New("name already in use")
)

type CategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Active      bool   `json:"active"`
}

type SubcategoryInput struct {
	Name        string `json:"name" binding:"required"`
	CategoryID  uint   `json:"category_id" binding:"required"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

type BrandInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
	Active      bool   `json:"active"`
}

type SupplierInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

type StatusInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

// DeleteReport carries the dependent-data warnings a taxonomy deletion
// produces. The deletion itself always proceeds.
type DeleteReport struct {
	Warnings []string `json:"warnings"`
}

type TaxonomyService interface {
	CreateCategory(input CategoryInput) (*model.Category, error)
	UpdateCategory(id uint, input CategoryInput) (*model.Category, error)
	DeleteCategory(id uint) (*DeleteReport, error)
	ListCategories(activeOnly bool) ([]model.Category, error)
	GetCategory(id uint) (*model.Category, error)

	CreateSubcategory(input SubcategoryInput) (*model.Subcategory, error)
	UpdateSubcategory(id uint, input SubcategoryInput) (*model.Subcategory, error)
	DeleteSubcategory(id uint) (*DeleteReport, error)
	ListSubcategories(categoryID uint, activeOnly bool) ([]model.Subcategory, error)

	CreateBrand(input BrandInput) (*model.Brand, error)
	UpdateBrand(id uint, input BrandInput) (*model.Brand, error)
	DeleteBrand(id uint) (*DeleteReport, error)
	ListBrands(activeOnly bool) ([]model.Brand, error)

	CreateSupplier(input SupplierInput) (*model.Supplier, error)
	UpdateSupplier(id uint, input SupplierInput) (*model.Supplier, error)
	DeleteSupplier(id uint) (*DeleteReport, error)
	ListSuppliers(activeOnly bool) ([]model.Supplier, error)

	CreateStatus(input StatusInput) (*model.Status, error)
	UpdateStatus(id uint, input StatusInput) (*model.Status, error)
	DeleteStatus(id uint) (*DeleteReport, error)
	ListStatuses(activeOnly bool) ([]model.Status, error)
}

type taxonomyService struct {
	categoryRepo repository.CategoryRepository
	subcatRepo   repository.SubcategoryRepository
	brandRepo    repository.BrandRepository
	supplierRepo repository.SupplierRepository
	statusRepo   repository.StatusRepository
}

func NewTaxonomyService(
	categoryRepo repository.CategoryRepository,
	subcatRepo repository.SubcategoryRepository,
	brandRepo repository.BrandRepository,
	supplierRepo repository.SupplierRepository,
	statusRepo repository.StatusRepository,
) TaxonomyService {
	return &taxonomyService{
		categoryRepo: categoryRepo,
		subcatRepo:   subcatRepo,
		brandRepo:    brandRepo,
		supplierRepo: supplierRepo,
		statusRepo:   statusRepo,
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTaxonomyNotFound
	}
	return err
}

// taxonomySlug derives a slug from the name and appends a numeric suffix on
// collision. Names are unique per entity (per parent for subcategories) but
// distinct names can slugify identically, and subcategory slugs are globally
// unique while their names are not.
func taxonomySlug(name string, excludeID uint, exists func(slug string, excludeID uint) (bool, error)) (string, error) {
	base := slug.Make(name)
	candidate := base
	for i := 2; ; i++ {
		taken, err := exists(candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *taxonomyService) CreateCategory(input CategoryInput) (*model.Category, error) {
	logger.Info("Creating category", map[string]interface{}{
		"name": input.Name,
	})

	exists, err := s.categoryRepo.ExistsName(input.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateName
	}

	categorySlug, err := taxonomySlug(input.Name, 0, s.categoryRepo.ExistsSlug)
	if err != nil {
		return nil, err
	}

	category := &model.Category{
		Name:        input.Name,
		Slug:        categorySlug,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Active:      input.Active,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *taxonomyService) UpdateCategory(id uint, input CategoryInput) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err)
	}

	exists, err := s.categoryRepo.ExistsName(input.Name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateName
	}

	if category.Name != input.Name {
		newSlug, err := taxonomySlug(input.Name, id, s.categoryRepo.ExistsSlug)
		if err != nil {
			return nil, err
		}
		category.Slug = newSlug
	}
	category.Name = input.Name
	category.Description = input.Description
	category.ImageURL = input.ImageURL
	category.Active = input.Active

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes the category and reports the cascade: products are
// re-parented to null, subcategories are destroyed.
func (s *taxonomyService) DeleteCategory(id uint) (*DeleteReport, error) {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		return nil, notFound(err)
	}

	deps, err := s.categoryRepo.CountDependents(id)
	if err != nil {
		return nil, err
	}

	report := &DeleteReport{Warnings: []string{}}
	if deps.Products > 0 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("%d productos quedarán sin categoría", deps.Products))
	}
	if deps.Subcategories > 0 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("Se eliminarán %d subcategorías", deps.Subcategories))
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		return nil, err
	}

	logger.Info("Category deleted", map[string]interface{}{
		"category_id":   id,
		"products":      deps.Products,
		"subcategories": deps.Subcategories,
	})
	return report, nil
}

func (s *taxonomyService) ListCategories(activeOnly bool) ([]model.Category, error) {
	return s.categoryRepo.FindAllWithSubcategories(activeOnly)
}

func (s *taxonomyService) GetCategory(id uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err)
	}
	return category, nil
}

func (s *taxonomyService) CreateSubcategory(input SubcategoryInput) (*model.Subcategory, error) {
	logger.Info("Creating subcategory", map[string]interface{}{
		"name":        input.Name,
		"category_id": input.CategoryID,
	})

	if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
		return nil, notFound(err)
	}

	exists, err := s.subcatRepo.ExistsName(input.CategoryID, input.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateName
	}

	subcategorySlug, err := taxonomySlug(input.Name, 0, s.subcatRepo.ExistsSlug)
	if err != nil {
		return nil, err
	}

	subcategory := &model.Subcategory{
		Name:        input.Name,
		Slug:        subcategorySlug,
		CategoryID:  input.CategoryID,
		Description: input.Description,
		Active:      input.Active,
	}
	if err := s.subcatRepo.Create(subcategory); err != nil {
		return nil, err
	}
	return subcategory, nil
}

func (s *taxonomyService) UpdateSubcategory(id uint, input SubcategoryInput) (*model.Subcategory, error) {
	subcategory, err := s.subcatRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err)
	}

	if input.CategoryID != subcategory.CategoryID {
		if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
			return nil, notFound(err)
		}
	}

	exists, err := s.subcatRepo.ExistsName(input.CategoryID, input.Name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateName
	}

	if subcategory.Name != input.Name {
		newSlug, err := taxonomySlug(input.Name, id, s.subcatRepo.ExistsSlug)
		if err != nil {
			return nil, err
		}
		subcategory.Slug = newSlug
	}
	subcategory.Name = input.Name
	subcategory.CategoryID = input.CategoryID
	subcategory.Description = input.Description
	subcategory.Active = input.Active
	subcategory.Category = nil

	if err := s.subcatRepo.Update(subcategory); err != nil {
		return nil, err
	}
	return subcategory, nil
}

func (s *taxonomyService) DeleteSubcategory(id uint) (*DeleteReport, error) {
	if _, err := s.subcatRepo.FindByID(id); err != nil {
		return nil, notFound(err)
	}

	count, err := s.subcatRepo.CountProducts(id)
	if err != nil {
		return nil, err
	}

	report := &DeleteReport{Warnings: []string{}}
	if count > 0 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("%d productos quedarán sin subcategoría", count))
	}

	if err := s.subcatRepo.Delete(id); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *taxonomyService) ListSubcategories(categoryID uint, activeOnly bool) ([]model.Subcategory, error) {
	if categoryID != 0 {
		return s.subcatRepo.FindByCategory(categoryID, activeOnly)
	}
	return s.subcatRepo.FindAll(activeOnly)
}

func (s *taxonomyService) CreateBrand(input BrandInput) (*model.Brand, error) {
	exists, err := s.brandRepo.ExistsName(input.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateName
	}

	brandSlug, err := taxonomySlug(input.Name, 0, s.brandRepo.ExistsSlug)
	if err != nil {
		return nil, err
	}

	brand := &model.Brand{
		Name:        input.Name,
		Slug:        brandSlug,
		Description: input.Description,
		LogoURL:     input.LogoURL,
		Active:      input.Active,
	}
	if err := s.brandRepo.Create(brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *taxonomyService) UpdateBrand(id uint, input BrandInput) (*model.Brand, error) {
	brand, err := s.brandRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err)
	}

	exists, err := s.brandRepo.ExistsName(input.Name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateName
	}

	if brand.Name != input.Name {
		newSlug, err := taxonomySlug(input.Name, id, s.brandRepo.ExistsSlug)
		if err != nil {
			return nil, err
		}
		brand.Slug = newSlug
	}
	brand.Name = input.Name
	brand.Description = input.Description
	brand.LogoURL = input.LogoURL
	brand.Active = input.Active

	if err := s.brandRepo.Update(brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *taxonomyService) DeleteBrand(id uint) (*DeleteReport, error) {
	if _, err := s.brandRepo.FindByID(id); err != nil {
		return nil, notFound(err)
	}

	count, err := s.brandRepo.CountProducts(id)
	if err != nil {
		return nil, err
	}

	report := &DeleteReport{Warnings: []string{}}
	if count > 0 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("%d productos quedarán sin marca", count))
	}

	if err := s.brandRepo.Delete(id); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *taxonomyService) ListBrands(activeOnly bool) ([]model.Brand, error) {
	return s.brandRepo.FindAll(activeOnly)
}

func (s *taxonomyService) CreateSupplier(input SupplierInput) (*model.Supplier, error) {
	exists, err := s.supplierRepo.ExistsName(input.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateName
	}

	supplierSlug, err := taxonomySlug(input.Name, 0, s.supplierRepo.ExistsSlug)
	if err != nil {
		return nil, err
	}

	supplier := &model.Supplier{
		Name:        input.Name,
		Slug:        supplierSlug,
		Description: input.Description,
		Active:      input.Active,
	}
	if err := s.supplierRepo.Create(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *taxonomyService) UpdateSupplier(id uint, input SupplierInput) (*model.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err)
	}

	exists, err := s.supplierRepo.ExistsName(input.Name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateName
	}

	if supplier.Name != input.Name {
		newSlug, err := taxonomySlug(input.Name, id, s.supplierRepo.ExistsSlug)
		if err != nil {
			return nil, err
		}
		supplier.Slug = newSlug
	}
	supplier.Name = input.Name
	supplier.Description = input.Description
	supplier.Active = input.Active

	if err := s.supplierRepo.Update(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *taxonomyService) DeleteSupplier(id uint) (*DeleteReport, error) {
	if _, err := s.supplierRepo.FindByID(id); err != nil {
		return nil, notFound(err)
	}

	count, err := s.supplierRepo.CountProducts(id)
	if err != nil {
		return nil, err
	}

	report := &DeleteReport{Warnings: []string{}}
	if count > 0 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("%d productos quedarán sin proveedor", count))
	}

	if err := s.supplierRepo.Delete(id); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *taxonomyService) ListSuppliers(activeOnly bool) ([]model.Supplier, error) {
	return s.supplierRepo.FindAll(activeOnly)
}

func (s *taxonomyService) CreateStatus(input StatusInput) (*model.Status, error) {
	exists, err := s.statusRepo.ExistsName(input.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateName
	}

	statusSlug, err := taxonomySlug(input.Name, 0, s.statusRepo.ExistsSlug)
	if err != nil {
		return nil, err
	}

	status := &model.Status{
		Name:        input.Name,
		Slug:        statusSlug,
		Description: input.Description,
		Active:      input.Active,
	}
	if err := s.statusRepo.Create(status); err != nil {
		return nil, err
	}
	return status, nil
}

func (s *taxonomyService) UpdateStatus(id uint, input StatusInput) (*model.Status, error) {
	status, err := s.statusRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err)
	}

	exists, err := s.statusRepo.ExistsName(input.Name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateName
	}

	if status.Name != input.Name {
		newSlug, err := taxonomySlug(input.Name, id, s.statusRepo.ExistsSlug)
		if err != nil {
			return nil, err
		}
		status.Slug = newSlug
	}
	status.Name = input.Name
	status.Description = input.Description
	status.Active = input.Active

	if err := s.statusRepo.Update(status); err != nil {
		return nil, err
	}
	return status, nil
}

func (s *taxonomyService) DeleteStatus(id uint) (*DeleteReport, error) {
	if _, err := s.statusRepo.FindByID(id); err != nil {
		return nil, notFound(err)
	}

	count, err := s.statusRepo.CountProducts(id)
	if err != nil {
		return nil, err
	}

	report := &DeleteReport{Warnings: []string{}}
	if count > 0 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("%d productos quedarán sin estatus", count))
	}

	if err := s.statusRepo.Delete(id); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *taxonomyService) ListStatuses(activeOnly bool) ([]model.Status, error) {
	return s.statusRepo.FindAll(activeOnly)
}
