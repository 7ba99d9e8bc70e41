package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/Manulynx/kitaluro/internal/errors"
	"github.com/Manulynx/kitaluro/internal/app/service"
	"github.com/Manulynx/kitaluro/internal/middleware"
)

type RatingController struct {
	ratingService service.RatingService
}

func NewRatingController(ratingService service.RatingService) *RatingController {
	return &RatingController{
		ratingService: ratingService,
	}
}

// CreateRating stores a 1-5 star rating. Authentication is optional; a
// logged-in user can rate each product once, guests rate anonymously
// POST /api/v1/catalog/ratings
func (ctrl *RatingController) CreateRating(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var input service.RatingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warn("Invalid rating request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "")
		return
	}

	var userID *uint
	if id, ok := middleware.GetUserID(c); ok {
		userID = &id
	}

	rating, err := ctrl.ratingService.AddRating(c.Request.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidScore):
			apperrors.BadRequest(c, apperrors.RatingInvalidScore, "La puntuación debe estar entre 1 y 5")
		case errors.Is(err, service.ErrAlreadyRated):
			apperrors.Conflict(c, apperrors.RatingAlreadyExists, "Ya has valorado este producto")
		case errors.Is(err, service.ErrRatingProduct):
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "")
		default:
			log.Error("Failed to create rating", err, map[string]interface{}{
				"product_id": input.ProductID,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	log.Info("Rating created", map[string]interface{}{
		"rating_id":  rating.ID,
		"product_id": rating.ProductID,
	})
	c.JSON(http.StatusCreated, gin.H{
		"rating": rating,
	})
}

// GetRatings lists the ratings of one product
// GET /api/v1/catalog/ratings?product_id=N
func (ctrl *RatingController) GetRatings(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID := queryUint(c, "product_id")
	if productID == nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "")
		return
	}

	ratings, err := ctrl.ratingService.GetRatings(*productID)
	if err != nil {
		log.Error("Failed to fetch ratings", err, map[string]interface{}{
			"product_id": *productID,
		})
		apperrors.InternalError(c, "")
		return
	}

	summary, err := ctrl.ratingService.GetSummary(c.Request.Context(), *productID)
	if err != nil {
		log.Error("Failed to fetch rating summary", err, map[string]interface{}{
			"product_id": *productID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ratings": ratings,
		"summary": summary,
	})
}
