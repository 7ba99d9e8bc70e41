package repository

import (
	"github.com/Manulynx/kitaluro/internal/app/model"
	"github.com/Manulynx/kitaluro/pkg/logger"
	"gorm.io/gorm"
)

type StatusRepository interface {
	Create(status *model.Status) error
	FindAll(activeOnly bool) ([]model.Status, error)
	FindByID(id uint) (*model.Status, error)
	ExistsName(name string, excludeID uint) (bool, error)
	ExistsSlug(slug string, excludeID uint) (bool, error)
	CountProducts(id uint) (int64, error)
	Update(status *model.Status) error
	Delete(id uint) error
}

type statusRepository struct {
	db *gorm.DB
}

func NewStatusRepository(db *gorm.DB) StatusRepository {
	return &statusRepository{db: db}
}

func (r *statusRepository) Create(status *model.Status) error {
	logger.Debug("Creating status in database", map[string]interface{}{
		"name": status.Name,
	})

	if err := r.db.Create(status).Error; err != nil {
		logger.Error("Failed to create status in database", err, map[string]interface{}{
			"name": status.Name,
		})
		return err
	}
	return nil
}

func (r *statusRepository) FindAll(activeOnly bool) ([]model.Status, error) {
	query := r.db.Model(&model.Status{}).Order("name ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var statuses []model.Status
	if err := query.Find(&statuses).Error; err != nil {
		logger.Error("Failed to find statuses in database", err, nil)
		return nil, err
	}
	return statuses, nil
}

func (r *statusRepository) FindByID(id uint) (*model.Status, error) {
	var status model.Status
	if err := r.db.First(&status, id).Error; err != nil {
		logger.Error("Failed to find status by ID in database", err, map[string]interface{}{
			"status_id": id,
		})
		return nil, err
	}
	return &status, nil
}

func (r *statusRepository) ExistsName(name string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&model.Status{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *statusRepository) ExistsSlug(slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&model.Status{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *statusRepository) CountProducts(id uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Product{}).
		Where("status_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *statusRepository) Update(status *model.Status) error {
	if err := r.db.Save(status).Error; err != nil {
		logger.Error("Failed to update status in database", err, map[string]interface{}{
			"status_id": status.ID,
		})
		return err
	}
	return nil
}

func (r *statusRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Product{}).
			Where("status_id = ?", id).
			Update("status_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Status{}, id).Error
	})
	if err != nil {
		logger.Error("Failed to delete status from database", err, map[string]interface{}{
			"status_id": id,
		})
		return err
	}
	return nil
}
