package main

import (
	"go.uber.org/zap"

	"motionit/database"
	"motionit/models"
)

// Standalone schema migration: creates the challenge tables along with the
// unique indexes the business rules depend on: (user_id, challenge_room_id)
// on participants and (participant_id, mission_date) on mission status
// rows. Run with:
//
//	go run ./migrations
func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	config, err := database.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("failed to load config.json", zap.Error(err))
	}

	db, err := database.InitPostgreSQL(config, logger)
	if err != nil {
		logger.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.ChallengeRoom{},
		&models.ChallengeParticipant{},
		&models.ChallengeMissionStatus{},
		&models.ChallengeVideo{},
		&models.Comment{},
		&models.CommentLike{},
	)
	if err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	logger.Info("challenge tables migrated")
}
