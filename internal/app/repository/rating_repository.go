package repository

import (
	"math"

	"github.com/Manulynx/kitaluro/internal/app/model"
	"github.com/Manulynx/kitaluro/pkg/logger"
	"gorm.io/gorm"
)

// RatingSummary is the aggregate shape served on product detail pages.
// Average is rounded to one decimal; Distribution always carries all five
// score buckets, zero-filled.
type RatingSummary struct {
	Average      float64     `json:"average"`
	Count        int64       `json:"count"`
	Distribution map[int]int `json:"distribution"`
}

type RatingRepository interface {
	Create(rating *model.Rating) error
	FindByProduct(productID uint) ([]model.Rating, error)
	FindByProductAndUser(productID, userID uint) (*model.Rating, error)
	Summarize(productID uint) (RatingSummary, error)
	Delete(id uint) error
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(rating *model.Rating) error {
	logger.Debug("Creating rating in database", map[string]interface{}{
		"product_id": rating.ProductID,
		"score":      rating.Score,
	})

	if err := r.db.Create(rating).Error; err != nil {
		logger.Error("Failed to create rating in database", err, map[string]interface{}{
			"product_id": rating.ProductID,
		})
		return err
	}
	return nil
}

func (r *ratingRepository) FindByProduct(productID uint) ([]model.Rating, error) {
	var ratings []model.Rating
	err := r.db.Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&ratings).Error
	if err != nil {
		logger.Error("Failed to find ratings in database", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return ratings, nil
}

func (r *ratingRepository) FindByProductAndUser(productID, userID uint) (*model.Rating, error) {
	var rating model.Rating
	err := r.db.Where("product_id = ? AND user_id = ?", productID, userID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// Summarize aggregates score counts per bucket in one grouped query and
// derives the mean from the buckets.
func (r *ratingRepository) Summarize(productID uint) (RatingSummary, error) {
	summary := RatingSummary{
		Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}

	var rows []struct {
		Score int
		Count int64
	}
	err := r.db.Model(&model.Rating{}).
		Select("score, COUNT(*) AS count").
		Where("product_id = ?", productID).
		Group("score").
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to summarize ratings in database", err, map[string]interface{}{
			"product_id": productID,
		})
		return summary, err
	}

	var sum int64
	for _, row := range rows {
		if row.Score < 1 || row.Score > 5 {
			continue
		}
		summary.Distribution[row.Score] = int(row.Count)
		summary.Count += row.Count
		sum += int64(row.Score) * row.Count
	}

	if summary.Count > 0 {
		avg := float64(sum) / float64(summary.Count)
		summary.Average = math.Round(avg*10) / 10
	}
	return summary, nil
}

func (r *ratingRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Rating{}, id).Error; err != nil {
		logger.Error("Failed to delete rating from database", err, map[string]interface{}{
			"rating_id": id,
		})
		return err
	}
	return nil
}
