package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"github.com/Manulynx/kitaluro/internal/app/model"
	"github.com/Manulynx/kitaluro/internal/app/repository"
	"github.com/Manulynx/kitaluro/internal/db"
)

func setupRatingService(t *testing.T) (*gorm.DB, RatingService, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	product := &model.Product{
		Name:      "Hervidor",
		Slug:      "hervidor",
		SKU:       "HER-01",
		Price:     decimal.NewFromInt(30),
		Active:    true,
		Available: true,
	}
	require.NoError(t, testDB.Create(product).Error)

	svc := NewRatingService(
		repository.NewRatingRepository(testDB),
		repository.NewProductRepository(testDB),
	)
	return testDB, svc, product
}

func TestRatingService_AddRating(t *testing.T) {
	testDB, svc, product := setupRatingService(t)
	defer db.CleanupTestDB(testDB)

	rating, err := svc.AddRating(context.Background(), nil, RatingInput{
		ProductID: product.ID,
		Score:     5,
		Title:     "Excelente",
		Comment:   "Hierve en nada",
	})
	require.NoError(t, err)
	assert.NotZero(t, rating.ID)
	assert.Nil(t, rating.UserID)
	// Nil image slice normalizes to empty, never null.
	assert.NotNil(t, rating.ImageURLs)
}

func TestRatingService_AddRating_InvalidScore(t *testing.T) {
	testDB, svc, product := setupRatingService(t)
	defer db.CleanupTestDB(testDB)

	for _, score := range []int{0, -1, 6} {
		_, err := svc.AddRating(context.Background(), nil, RatingInput{
			ProductID: product.ID,
			Score:     score,
		})
		assert.ErrorIs(t, err, ErrInvalidScore, "score %d", score)
	}
}

func TestRatingService_AddRating_UnknownProduct(t *testing.T) {
	testDB, svc, _ := setupRatingService(t)
	defer db.CleanupTestDB(testDB)

	_, err := svc.AddRating(context.Background(), nil, RatingInput{
		ProductID: 999,
		Score:     4,
	})
	assert.ErrorIs(t, err, ErrRatingProduct)
}

func TestRatingService_AddRating_OncePerUser(t *testing.T) {
	testDB, svc, product := setupRatingService(t)
	defer db.CleanupTestDB(testDB)

	userID := uint(3)
	_, err := svc.AddRating(context.Background(), &userID, RatingInput{
		ProductID: product.ID,
		Score:     4,
	})
	require.NoError(t, err)

	_, err = svc.AddRating(context.Background(), &userID, RatingInput{
		ProductID: product.ID,
		Score:     5,
	})
	assert.ErrorIs(t, err, ErrAlreadyRated)

	// Anonymous callers are exempt from the once-per-user rule.
	_, err = svc.AddRating(context.Background(), nil, RatingInput{
		ProductID: product.ID,
		Score:     5,
	})
	require.NoError(t, err)
	_, err = svc.AddRating(context.Background(), nil, RatingInput{
		ProductID: product.ID,
		Score:     3,
	})
	require.NoError(t, err)
}

func TestRatingService_GetSummary(t *testing.T) {
	testDB, svc, product := setupRatingService(t)
	defer db.CleanupTestDB(testDB)

	ctx := context.Background()

	// No ratings yet: all zeros with the five buckets present.
	summary, err := svc.GetSummary(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(0), summary.Average)
	assert.Equal(t, int64(0), summary.Count)
	assert.Len(t, summary.Distribution, 5)

	for _, score := range []int{5, 4, 4} {
		_, err := svc.AddRating(ctx, nil, RatingInput{ProductID: product.ID, Score: score})
		require.NoError(t, err)
	}

	summary, err = svc.GetSummary(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.3, summary.Average)
	assert.Equal(t, int64(3), summary.Count)
	assert.Equal(t, 1, summary.Distribution[5])
	assert.Equal(t, 2, summary.Distribution[4])
}

func TestRatingService_WarmSummaries(t *testing.T) {
	testDB, svc, product := setupRatingService(t)
	defer db.CleanupTestDB(testDB)

	_, err := svc.AddRating(context.Background(), nil, RatingInput{ProductID: product.ID, Score: 5})
	require.NoError(t, err)

	// Without redis configured the warm-up is a no-op and must not fail.
	assert.NoError(t, svc.WarmSummaries(context.Background()))
}
