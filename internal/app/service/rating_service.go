package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Manulynx/kitaluro/internal/app/model"
	"github.com/Manulynx/kitaluro/internal/app/repository"
	"github.com/Manulynx/kitaluro/pkg/logger"
	"github.com/Manulynx/kitaluro/pkg/redis"
	"gorm.io/gorm"
)

var (
	ErrInvalidScore  = errors.New("score must be between 1 and 5")
	ErrAlreadyRated  = errors.New("user already rated this product")
	ErrRatingProduct = errors.New("product not found for rating")
)

const (
	ratingSummaryTTL = 10 * time.Minute
)

func ratingSummaryKey(productID uint) string {
	return fmt.Sprintf("rating:summary:%d", productID)
}

type RatingInput struct {
	ProductID uint     `json:"product_id" binding:"required"`
	Score     int      `json:"score" binding:"required"`
	Title     string   `json:"title"`
	Comment   string   `json:"comment"`
	ImageURLs []string `json:"image_urls"`
	Verified  bool     `json:"verified"`
}

type RatingService interface {
	AddRating(ctx context.Context, userID *uint, input RatingInput) (*model.Rating, error)
	GetRatings(productID uint) ([]model.Rating, error)
	GetSummary(ctx context.Context, productID uint) (repository.RatingSummary, error)
	WarmSummaries(ctx context.Context) error
}

type ratingService struct {
	ratingRepo  repository.RatingRepository
	productRepo repository.ProductRepository
}

func NewRatingService(ratingRepo repository.RatingRepository, productRepo repository.ProductRepository) RatingService {
	return &ratingService{
		ratingRepo:  ratingRepo,
		productRepo: productRepo,
	}
}

func (s *ratingService) AddRating(ctx context.Context, userID *uint, input RatingInput) (*model.Rating, error) {
	logger.Info("Adding rating", map[string]interface{}{
		"product_id": input.ProductID,
		"score":      input.Score,
	})

	if input.Score < 1 || input.Score > 5 {
		return nil, ErrInvalidScore
	}

	if _, err := s.productRepo.FindByID(input.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRatingProduct
		}
		return nil, err
	}

	if userID != nil {
		if _, err := s.ratingRepo.FindByProductAndUser(input.ProductID, *userID); err == nil {
			logger.Warn("Duplicate rating rejected", map[string]interface{}{
				"product_id": input.ProductID,
				"user_id":    *userID,
			})
			return nil, ErrAlreadyRated
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	rating := &model.Rating{
		ProductID: input.ProductID,
		UserID:    userID,
		Score:     input.Score,
		Title:     input.Title,
		Comment:   input.Comment,
		ImageURLs: input.ImageURLs,
		Verified:  input.Verified,
	}
	if rating.ImageURLs == nil {
		rating.ImageURLs = []string{}
	}

	if err := s.ratingRepo.Create(rating); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyRated
		}
		logger.Error("Failed to add rating", err, map[string]interface{}{
			"product_id": input.ProductID,
		})
		return nil, err
	}

	// The cached aggregate is stale now.
	if err := redis.DropCached(ctx, ratingSummaryKey(input.ProductID)); err != nil {
		logger.Warn("Failed to drop cached rating summary", map[string]interface{}{
			"product_id": input.ProductID,
			"error":      err.Error(),
		})
	}

	logger.Info("Rating added", map[string]interface{}{
		"rating_id":  rating.ID,
		"product_id": rating.ProductID,
	})
	return rating, nil
}

func (s *ratingService) GetRatings(productID uint) ([]model.Rating, error) {
	return s.ratingRepo.FindByProduct(productID)
}

// GetSummary serves the aggregate from cache when possible, recomputing and
// re-caching on a miss.
func (s *ratingService) GetSummary(ctx context.Context, productID uint) (repository.RatingSummary, error) {
	key := ratingSummaryKey(productID)

	var cached repository.RatingSummary
	hit, err := redis.GetCachedJSON(ctx, key, &cached)
	if err != nil {
		logger.Warn("Failed to read cached rating summary", map[string]interface{}{
			"product_id": productID,
			"error":      err.Error(),
		})
	}
	if hit {
		return cached, nil
	}

	summary, err := s.ratingRepo.Summarize(productID)
	if err != nil {
		return summary, err
	}

	if err := redis.CacheJSON(ctx, key, summary, ratingSummaryTTL); err != nil {
		logger.Warn("Failed to cache rating summary", map[string]interface{}{
			"product_id": productID,
			"error":      err.Error(),
		})
	}
	return summary, nil
}

// WarmSummaries precomputes and caches the rating aggregate of every
// product. Invoked from the scheduler.
func (s *ratingService) WarmSummaries(ctx context.Context) error {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return err
	}

	for i := range products {
		summary, err := s.ratingRepo.Summarize(products[i].ID)
		if err != nil {
			logger.Error("Failed to warm rating summary", err, map[string]interface{}{
				"product_id": products[i].ID,
			})
			continue
		}
		if err := redis.CacheJSON(ctx, ratingSummaryKey(products[i].ID), summary, ratingSummaryTTL); err != nil {
			logger.Warn("Failed to cache rating summary", map[string]interface{}{
				"product_id": products[i].ID,
				"error":      err.Error(),
			})
		}
	}

	logger.Info("Rating summaries warmed", map[string]interface{}{
		"product_count": len(products),
	})
	return nil
}
