package repository

import (
	"github.com/Manulynx/kitaluro/internal/app/model"
	"github.com/Manulynx/kitaluro/pkg/logger"
	"gorm.io/gorm"
)

type SupplierRepository interface {
	Create(supplier *model.Supplier) error
	FindAll(activeOnly bool) ([]model.Supplier, error)
	FindByID(id uint) (*model.Supplier, error)
	FindByCode(code string) (*model.Supplier, error)
	ExistsName(name string, excludeID uint) (bool, error)
	ExistsSlug(slug string, excludeID uint) (bool, error)
	CountProducts(id uint) (int64, error)
	Update(supplier *model.Supplier) error
	Delete(id uint) error
}

type supplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(supplier *model.Supplier) error {
	logger.Debug("Creating supplier in database", map[string]interface{}{
		"name": supplier.Name,
	})

	if err := r.db.Create(supplier).Error; err != nil {
		logger.Error("Failed to create supplier in database", err, map[string]interface{}{
			"name": supplier.Name,
		})
		return err
	}

	logger.Debug("Supplier created in database", map[string]interface{}{
		"supplier_id": supplier.ID,
		"code":        supplier.Code,
	})
	return nil
}

func (r *supplierRepository) FindAll(activeOnly bool) ([]model.Supplier, error) {
	query := r.db.Model(&model.Supplier{}).Order("name ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var suppliers []model.Supplier
	if err := query.Find(&suppliers).Error; err != nil {
		logger.Error("Failed to find suppliers in database", err, nil)
		return nil, err
	}
	return suppliers, nil
}

func (r *supplierRepository) FindByID(id uint) (*model.Supplier, error) {
	var supplier model.Supplier
	if err := r.db.First(&supplier, id).Error; err != nil {
		logger.Error("Failed to find supplier by ID in database", err, map[string]interface{}{
			"supplier_id": id,
		})
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepository) FindByCode(code string) (*model.Supplier, error) {
	var supplier model.Supplier
	if err := r.db.Where("code = ?", code).First(&supplier).Error; err != nil {
		logger.Error("Failed to find supplier by code in database", err, map[string]interface{}{
			"code": code,
		})
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepository) ExistsName(name string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&model.Supplier{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *supplierRepository) ExistsSlug(slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&model.Supplier{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *supplierRepository) CountProducts(id uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Product{}).
		Where("supplier_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *supplierRepository) Update(supplier *model.Supplier) error {
	if err := r.db.Save(supplier).Error; err != nil {
		logger.Error("Failed to update supplier in database", err, map[string]interface{}{
			"supplier_id": supplier.ID,
		})
		return err
	}
	return nil
}

func (r *supplierRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Product{}).
			Where("supplier_id = ?", id).
			Update("supplier_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Supplier{}, id).Error
	})
	if err != nil {
		logger.Error("Failed to delete supplier from database", err, map[string]interface{}{
			"supplier_id": id,
		})
		return err
	}
	return nil
}
