package repository

import (
	"github.com/Manulynx/kitaluro/internal/app/model"
	"github.com/Manulynx/kitaluro/pkg/logger"
	"gorm.io/gorm"
)

type SubcategoryRepository interface {
	Create(subcategory *model.Subcategory) error
	FindAll(activeOnly bool) ([]model.Subcategory, error)
	FindByCategory(categoryID uint, activeOnly bool) ([]model.Subcategory, error)
	FindByID(id uint) (*model.Subcategory, error)
	FindBySlug(slug string) (*model.Subcategory, error)
	ExistsName(categoryID uint, name string, excludeID uint) (bool, error)
	ExistsSlug(slug string, excludeID uint) (bool, error)
	CountProducts(id uint) (int64, error)
	Update(subcategory *model.Subcategory) error
	Delete(id uint) error
}

type subcategoryRepository struct {
	db *gorm.DB
}

func NewSubcategoryRepository(db *gorm.DB) SubcategoryRepository {
	return &subcategoryRepository{db: db}
}

func (r *subcategoryRepository) Create(subcategory *model.Subcategory) error {
	logger.Debug("Creating subcategory in database", map[string]interface{}{
		"name":        subcategory.Name,
		"category_id": subcategory.CategoryID,
	})

	if err := r.db.Create(subcategory).Error; err != nil {
		logger.Error("Failed to create subcategory in database", err, map[string]interface{}{
			"name": subcategory.Name,
		})
		return err
	}
	return nil
}

func (r *subcategoryRepository) FindAll(activeOnly bool) ([]model.Subcategory, error) {
	query := r.db.Model(&model.Subcategory{}).Preload("Category").Order("name ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var subcategories []model.Subcategory
	if err := query.Find(&subcategories).Error; err != nil {
		logger.Error("Failed to find subcategories in database", err, nil)
		return nil, err
	}
	return subcategories, nil
}

func (r *subcategoryRepository) FindByCategory(categoryID uint, activeOnly bool) ([]model.Subcategory, error) {
	query := r.db.Model(&model.Subcategory{}).
		Where("category_id = ?", categoryID).
		Order("name ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var subcategories []model.Subcategory
	if err := query.Find(&subcategories).Error; err != nil {
		logger.Error("Failed to find subcategories by category in database", err, map[string]interface{}{
			"category_id": categoryID,
		})
		return nil, err
	}
	return subcategories, nil
}

func (r *subcategoryRepository) FindByID(id uint) (*model.Subcategory, error) {
	var subcategory model.Subcategory
	if err := r.db.Preload("Category").First(&subcategory, id).Error; err != nil {
		logger.Error("Failed to find subcategory by ID in database", err, map[string]interface{}{
			"subcategory_id": id,
		})
		return nil, err
	}
	return &subcategory, nil
}

func (r *subcategoryRepository) FindBySlug(slug string) (*model.Subcategory, error) {
	var subcategory model.Subcategory
	if err := r.db.Preload("Category").Where("slug = ?", slug).First(&subcategory).Error; err != nil {
		logger.Error("Failed to find subcategory by slug in database", err, map[string]interface{}{
			"slug": slug,
		})
		return nil, err
	}
	return &subcategory, nil
}

// ExistsName checks name uniqueness inside the parent category only;
// two categories may each have a subcategory with the same name.
func (r *subcategoryRepository) ExistsName(categoryID uint, name string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&model.Subcategory{}).
		Where("category_id = ? AND LOWER(name) = LOWER(?)", categoryID, name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsSlug checks the slug across all categories; the slug index is global
// so same-named siblings under different parents get suffixed slugs.
func (r *subcategoryRepository) ExistsSlug(slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&model.Subcategory{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *subcategoryRepository) CountProducts(id uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Product{}).
		Where("subcategory_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *subcategoryRepository) Update(subcategory *model.Subcategory) error {
	logger.Debug("Updating subcategory in database", map[string]interface{}{
		"subcategory_id": subcategory.ID,
		"name":           subcategory.Name,
	})

	if err := r.db.Save(subcategory).Error; err != nil {
		logger.Error("Failed to update subcategory in database", err, map[string]interface{}{
			"subcategory_id": subcategory.ID,
		})
		return err
	}
	return nil
}

func (r *subcategoryRepository) Delete(id uint) error {
	logger.Debug("Deleting subcategory from database", map[string]interface{}{
		"subcategory_id": id,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Product{}).
			Where("subcategory_id = ?", id).
			Update("subcategory_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Subcategory{}, id).Error
	})
	if err != nil {
		logger.Error("Failed to delete subcategory from database", err, map[string]interface{}{
			"subcategory_id": id,
		})
		return err
	}
	return nil
}
