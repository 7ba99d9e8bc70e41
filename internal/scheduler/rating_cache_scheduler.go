package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/Manulynx/kitaluro/internal/app/service"
	"github.com/Manulynx/kitaluro/pkg/logger"
)

// RatingCacheScheduler periodically rewarms the rating summary cache so
// product pages do not pay for the aggregation.
type RatingCacheScheduler struct {
	cron          *cron.Cron
	ratingService service.RatingService
}

func NewRatingCacheScheduler(ratingService service.RatingService) *RatingCacheScheduler {
	return &RatingCacheScheduler{
		cron:          cron.New(),
		ratingService: ratingService,
	}
}

// Start registers the warm-up job. It runs every 30 minutes and once
// immediately so the cache is hot right after deploy.
func (s *RatingCacheScheduler) Start() error {
	warm := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		logger.Info("Starting scheduled rating summary warm-up", nil)
		if err := s.ratingService.WarmSummaries(ctx); err != nil {
			logger.Error("Failed to warm rating summaries from scheduler", err)
			return
		}
		logger.Info("Rating summaries warmed successfully", nil)
	}

	_, err := s.cron.AddFunc("*/30 * * * *", warm)
	if err != nil {
		logger.Error("Failed to add cron job for rating summary warm-up", err)
		return err
	}

	s.cron.Start()
	go warm()
	logger.Info("Rating cache scheduler started successfully (every 30 minutes)", nil)

	return nil
}

func (s *RatingCacheScheduler) Stop() {
	logger.Info("Stopping rating cache scheduler...", nil)
	s.cron.Stop()
	logger.Info("Rating cache scheduler stopped", nil)
}
