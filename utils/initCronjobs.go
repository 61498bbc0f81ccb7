package utils

import (
	"time"

	"motionit/challenge"
	"motionit/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StartCronJobs wires the daily background jobs and starts the scheduler.
// Job times are interpreted in loc. Overlapping runs are tolerated by the
// jobs themselves, so no run-level locking here.
func StartCronJobs(db *gorm.DB, logger *zap.Logger, loc *time.Location) *cron.Cron {
	c := cron.New(cron.WithLocation(loc))

	// Materialize today's mission row for every active participant.
	initializer := challenge.NewMissionInitializer(db, loc, logger)
	c.AddFunc("0 6 * * *", initializer.Run)

	// Close rooms whose challenge period has ended.
	c.AddFunc("30 3 * * *", func() {
		closeExpiredRooms(db, logger)
	})

	c.Start()
	return c
}

func closeExpiredRooms(db *gorm.DB, logger *zap.Logger) {
	result := db.Model(&models.ChallengeRoom{}).
		Where("open_status = ? AND challenge_end_date < ?", models.RoomOpen, time.Now()).
		Update("open_status", models.RoomClosed)
	if result.Error != nil {
		logger.Error("failed to close expired challenge rooms", zap.Error(result.Error))
		return
	}
	if result.RowsAffected > 0 {
		logger.Info("closed expired challenge rooms", zap.Int64("rooms", result.RowsAffected))
	}
}
