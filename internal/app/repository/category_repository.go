package repository

import (
	"github.com/Manulynx/kitaluro/internal/app/model"
	"github.com/Manulynx/kitaluro/pkg/logger"
	"gorm.io/gorm"
)

// CategoryDependents counts what would be affected by deleting a category.
type CategoryDependents struct {
	Products      int64
	Subcategories int64
}

type CategoryRepository interface {
	Create(category *model.Category) error
	FindAll(activeOnly bool) ([]model.Category, error)
	FindAllWithSubcategories(activeOnly bool) ([]model.Category, error)
	FindByID(id uint) (*model.Category, error)
	FindBySlug(slug string) (*model.Category, error)
	ExistsName(name string, excludeID uint) (bool, error)
	ExistsSlug(slug string, excludeID uint) (bool, error)
	CountDependents(id uint) (CategoryDependents, error)
	Update(category *model.Category) error
	Delete(id uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *model.Category) error {
	logger.Debug("Creating category in database", map[string]interface{}{
		"name": category.Name,
		"slug": category.Slug,
	})

	if err := r.db.Create(category).Error; err != nil {
		logger.Error("Failed to create category in database", err, map[string]interface{}{
			"name": category.Name,
		})
		return err
	}
	return nil
}

func (r *categoryRepository) FindAll(activeOnly bool) ([]model.Category, error) {
	query := r.db.Model(&model.Category{}).Order("name ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var categories []model.Category
	if err := query.Find(&categories).Error; err != nil {
		logger.Error("Failed to find categories in database", err, nil)
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindAllWithSubcategories(activeOnly bool) ([]model.Category, error) {
	query := r.db.Model(&model.Category{}).Order("name ASC")
	if activeOnly {
		query = query.Where("active = ?", true).
			Preload("Subcategories", func(db *gorm.DB) *gorm.DB {
				return db.Where("active = ?", true).Order("name ASC")
			})
	} else {
		query = query.Preload("Subcategories", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		})
	}

	var categories []model.Category
	if err := query.Find(&categories).Error; err != nil {
		logger.Error("Failed to find categories with subcategories in database", err, nil)
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindByID(id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.Preload("Subcategories").First(&category, id).Error; err != nil {
		logger.Error("Failed to find category by ID in database", err, map[string]interface{}{
			"category_id": id,
		})
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindBySlug(slug string) (*model.Category, error) {
	var category model.Category
	if err := r.db.Preload("Subcategories").Where("slug = ?", slug).First(&category).Error; err != nil {
		logger.Error("Failed to find category by slug in database", err, map[string]interface{}{
			"slug": slug,
		})
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ExistsName(name string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&model.Category{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *categoryRepository) ExistsSlug(slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&model.Category{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *categoryRepository) CountDependents(id uint) (CategoryDependents, error) {
	var deps CategoryDependents

	if err := r.db.Model(&model.Product{}).
		Where("category_id = ?", id).
		Count(&deps.Products).Error; err != nil {
		return deps, err
	}
	if err := r.db.Model(&model.Subcategory{}).
		Where("category_id = ?", id).
		Count(&deps.Subcategories).Error; err != nil {
		return deps, err
	}
	return deps, nil
}

func (r *categoryRepository) Update(category *model.Category) error {
	logger.Debug("Updating category in database", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})

	if err := r.db.Save(category).Error; err != nil {
		logger.Error("Failed to update category in database", err, map[string]interface{}{
			"category_id": category.ID,
		})
		return err
	}
	return nil
}

// Delete removes the category along with its subcategories. Products keep
// existing with their category and subcategory references nulled out. The
// whole cascade runs in one transaction.
func (r *categoryRepository) Delete(id uint) error {
	logger.Debug("Deleting category from database", map[string]interface{}{
		"category_id": id,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var subcategoryIDs []uint
		if err := tx.Model(&model.Subcategory{}).
			Where("category_id = ?", id).
			Pluck("id", &subcategoryIDs).Error; err != nil {
			return err
		}

		if len(subcategoryIDs) > 0 {
			if err := tx.Model(&model.Product{}).
				Where("subcategory_id IN ?", subcategoryIDs).
				Update("subcategory_id", nil).Error; err != nil {
				return err
			}
			if err := tx.Delete(&model.Subcategory{}, subcategoryIDs).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&model.Product{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Category{}, id).Error
	})
	if err != nil {
		logger.Error("Failed to delete category from database", err, map[string]interface{}{
			"category_id": id,
		})
		return err
	}

	logger.Debug("Category deleted from database", map[string]interface{}{
		"category_id": id,
	})
	return nil
}
