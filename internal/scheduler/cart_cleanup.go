package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopworks/storefront-backend/internal/app/repository"
	"github.com/shopworks/storefront-backend/pkg/logger"
)

// CartCleanupScheduler purges carts that have sat untouched longer than
// the configured retention window.
type CartCleanupScheduler struct {
	cron           *cron.Cron
	cartRepo       repository.CartRepository
	staleAfterDays int
}

func NewCartCleanupScheduler(cartRepo repository.CartRepository, staleAfterDays int) *CartCleanupScheduler {
	return &CartCleanupScheduler{
		cron:           cron.New(),
		cartRepo:       cartRepo,
		staleAfterDays: staleAfterDays,
	}
}

// Start schedules the purge to run daily at 03:00 server time.
func (s *CartCleanupScheduler) Start() error {
	_, err := s.cron.AddFunc("0 3 * * *", func() {
		logger.Info("Starting scheduled stale cart cleanup", map[string]interface{}{
			"stale_after_days": s.staleAfterDays,
		})

		cutoff := time.Now().AddDate(0, 0, -s.staleAfterDays)
		deleted, err := s.cartRepo.DeleteStale(cutoff)
		if err != nil {
			logger.Error("Failed to clean up stale carts", err, nil)
			return
		}

		logger.Info("Stale cart cleanup completed", map[string]interface{}{
			"deleted": deleted,
		})
	})
	if err != nil {
		logger.Error("Failed to add cron job for cart cleanup", err, nil)
		return err
	}

	s.cron.Start()
	logger.Info("Cart cleanup scheduler started (daily at 3:00 AM)", nil)
	return nil
}

func (s *CartCleanupScheduler) Stop() {
	logger.Info("Stopping cart cleanup scheduler", nil)
	s.cron.Stop()
}
