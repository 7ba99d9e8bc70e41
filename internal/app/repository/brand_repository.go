package repository

import (
	"github.com/Manulynx/kitaluro/internal/app/model"
	"github.com/Manulynx/kitaluro/pkg/logger"
	"gorm.io/gorm"
)

type BrandRepository interface {
	Create(brand *model.Brand) error
	FindAll(activeOnly bool) ([]model.Brand, error)
	FindByID(id uint) (*model.Brand, error)
	ExistsName(name string, excludeID uint) (bool, error)
	ExistsSlug(slug string, excludeID uint) (bool, error)
	CountProducts(id uint) (int64, error)
	Update(brand *model.Brand) error
	Delete(id uint) error
}

type brandRepository struct {
	db *gorm.DB
}

func NewBrandRepository(db *gorm.DB) BrandRepository {
	return &brandRepository{db: db}
}

func (r *brandRepository) Create(brand *model.Brand) error {
	logger.Debug("Creating brand in database", map[string]interface{}{
		"name": brand.Name,
	})

	if err := r.db.Create(brand).Error; err != nil {
		logger.Error("Failed to create brand in database", err, map[string]interface{}{
			"name": brand.Name,
		})
		return err
	}
	return nil
}

func (r *brandRepository) FindAll(activeOnly bool) ([]model.Brand, error) {
	query := r.db.Model(&model.Brand{}).Order("name ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var brands []model.Brand
	if err := query.Find(&brands).Error; err != nil {
		logger.Error("Failed to find brands in database", err, nil)
		return nil, err
	}
	return brands, nil
}

func (r *brandRepository) FindByID(id uint) (*model.Brand, error) {
	var brand model.Brand
	if err := r.db.First(&brand, id).Error; err != nil {
		logger.Error("Failed to find brand by ID in database", err, map[string]interface{}{
			"brand_id": id,
		})
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepository) ExistsName(name string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&model.Brand{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *brandRepository) ExistsSlug(slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&model.Brand{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *brandRepository) CountProducts(id uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Product{}).
		Where("brand_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *brandRepository) Update(brand *model.Brand) error {
	if err := r.db.Save(brand).Error; err != nil {
		logger.Error("Failed to update brand in database", err, map[string]interface{}{
			"brand_id": brand.ID,
		})
		return err
	}
	return nil
}

func (r *brandRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Product{}).
			Where("brand_id = ?", id).
			Update("brand_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Brand{}, id).Error
	})
	if err != nil {
		logger.Error("Failed to delete brand from database", err, map[string]interface{}{
			"brand_id": id,
		})
		return err
	}
	return nil
}
