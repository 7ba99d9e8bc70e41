package repository

import (
	"github.com/Manulynx/kitaluro/internal/app/model"
	"github.com/Manulynx/kitaluro/pkg/logger"
	"gorm.io/gorm"
)

// MediaRepository persists the product galleries. It writes only the current
// ProductImage/ProductVideo shapes; the legacy ProductMedia table is read
// (and deleted from) but never written to.
type MediaRepository interface {
	AddImage(image *model.ProductImage) error
	AddVideo(video *model.ProductVideo) error
	ImagesByProduct(productID uint) ([]model.ProductImage, error)
	VideosByProduct(productID uint) ([]model.ProductVideo, error)
	LegacyByProduct(productID uint) ([]model.ProductMedia, error)
	DemoteMainImages(productID uint, exceptID uint) error
	DemoteMainVideos(productID uint, exceptID uint) error
	RemoveImage(productID, imageID uint) error
	RemoveVideo(productID, videoID uint) error
	RemoveLegacy(productID, mediaID uint) error
}

type mediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) AddImage(image *model.ProductImage) error {
	logger.Debug("Adding product image in database", map[string]interface{}{
		"product_id": image.ProductID,
		"is_main":    image.IsMain,
	})

	if err := r.db.Create(image).Error; err != nil {
		logger.Error("Failed to add product image in database", err, map[string]interface{}{
			"product_id": image.ProductID,
		})
		return err
	}
	return nil
}

func (r *mediaRepository) AddVideo(video *model.ProductVideo) error {
	logger.Debug("Adding product video in database", map[string]interface{}{
		"product_id": video.ProductID,
		"is_main":    video.IsMain,
	})

	if err := r.db.Create(video).Error; err != nil {
		logger.Error("Failed to add product video in database", err, map[string]interface{}{
			"product_id": video.ProductID,
		})
		return err
	}
	return nil
}

func (r *mediaRepository) ImagesByProduct(productID uint) ([]model.ProductImage, error) {
	var images []model.ProductImage
	err := r.db.Where("product_id = ?", productID).
		Order("sort_order ASC, created_at DESC").
		Find(&images).Error
	if err != nil {
		logger.Error("Failed to find product images in database", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return images, nil
}

func (r *mediaRepository) VideosByProduct(productID uint) ([]model.ProductVideo, error) {
	var videos []model.ProductVideo
	err := r.db.Where("product_id = ?", productID).
		Order("sort_order ASC, created_at DESC").
		Find(&videos).Error
	if err != nil {
		logger.Error("Failed to find product videos in database", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return videos, nil
}

func (r *mediaRepository) LegacyByProduct(productID uint) ([]model.ProductMedia, error) {
	var medias []model.ProductMedia
	err := r.db.Where("product_id = ? AND active = ?", productID, true).
		Order("sort_order ASC, is_main DESC, created_at DESC").
		Find(&medias).Error
	if err != nil {
		logger.Error("Failed to find legacy product media in database", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return medias, nil
}

// DemoteMainImages clears the is_main flag on every image of the product
// except the given one, keeping at most one main entry.
func (r *mediaRepository) DemoteMainImages(productID uint, exceptID uint) error {
	query := r.db.Model(&model.ProductImage{}).
		Where("product_id = ? AND is_main = ?", productID, true)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Update("is_main", false).Error; err != nil {
		logger.Error("Failed to demote main product images in database", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}
	return nil
}

func (r *mediaRepository) DemoteMainVideos(productID uint, exceptID uint) error {
	query := r.db.Model(&model.ProductVideo{}).
		Where("product_id = ? AND is_main = ?", productID, true)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Update("is_main", false).Error; err != nil {
		logger.Error("Failed to demote main product videos in database", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}
	return nil
}

func (r *mediaRepository) RemoveImage(productID, imageID uint) error {
	result := r.db.Where("product_id = ?", productID).Delete(&model.ProductImage{}, imageID)
	if result.Error != nil {
		logger.Error("Failed to remove product image from database", result.Error, map[string]interface{}{
			"product_id": productID,
			"image_id":   imageID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *mediaRepository) RemoveVideo(productID, videoID uint) error {
	result := r.db.Where("product_id = ?", productID).Delete(&model.ProductVideo{}, videoID)
	if result.Error != nil {
		logger.Error("Failed to remove product video from database", result.Error, map[string]interface{}{
			"product_id": productID,
			"video_id":   videoID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *mediaRepository) RemoveLegacy(productID, mediaID uint) error {
	result := r.db.Where("product_id = ?", productID).Delete(&model.ProductMedia{}, mediaID)
	if result.Error != nil {
		logger.Error("Failed to remove legacy product media from database", result.Error, map[string]interface{}{
			"product_id": productID,
			"media_id":   mediaID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
