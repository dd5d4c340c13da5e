package scheduler

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	notifService "gradhub_backend/internals/features/notifications/notification/service"
	authModel "gradhub_backend/internals/features/users/auth/model"
)

// StartNotificationScheduler runs the single background poller: one tick
// executes the quota-alert evaluation, both deadline evaluations, and the
// token blacklist sweep, sequentially. Ticks never overlap; a panicking or
// failing tick is logged and the loop continues. The stop signal is observed
// at the top of the wait, in-flight database calls are not cancelled.
func StartNotificationScheduler(ctx context.Context, db *gorm.DB, svc *notifService.NotificationService, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}

	go func() {
		log.Printf("[SCHEDULER] notification poller started (interval %s)", interval)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		// first cycle right away so a restart doesn't wait a full interval;
		// the per-day guard keeps repeated warnings idempotent
		runTick(db, svc)

		for {
			select {
			case <-ctx.Done():
				log.Println("[SCHEDULER] notification poller stopped")
				return
			case <-ticker.C:
				runTick(db, svc)
			}
		}
	}()
}

func runTick(db *gorm.DB, svc *notifService.NotificationService) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[SCHEDULER ERROR] tick panic: %v", r)
		}
	}()

	svc.RunChecks()
	sweepTokenBlacklist(db)
}

// sweepTokenBlacklist drops revoked tokens that expired more than a week
// ago, in small batches.
func sweepTokenBlacklist(db *gorm.DB) {
	deleteBefore := time.Now().Add(-7 * 24 * time.Hour)

	var expired []authModel.TokenBlacklist
	if err := db.Where("expired_at < ?", deleteBefore).Limit(100).Find(&expired).Error; err != nil {
		log.Printf("[SCHEDULER ERROR] blacklist sweep: %v", err)
		return
	}
	if len(expired) == 0 {
		return
	}
	if err := db.Delete(&expired).Error; err != nil {
		log.Printf("[SCHEDULER ERROR] blacklist delete: %v", err)
		return
	}
	log.Printf("[SCHEDULER] %d expired blacklist tokens removed", len(expired))
}
