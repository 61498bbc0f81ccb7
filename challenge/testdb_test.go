package challenge

import (
	"fmt"
	"os"
	"testing"
	"time"

	"motionit/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testDB opens the database named by MOTIONIT_TEST_DSN and resets the
// challenge tables. Tests needing a real database skip when it is unset;
// the pessimistic-locking paths cannot be exercised without PostgreSQL.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("MOTIONIT_TEST_DSN")
	if dsn == "" {
		t.Skip("MOTIONIT_TEST_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
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
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	tables := []string{
		"comment_likes", "comments", "challenge_videos",
		"challenge_mission_statuses", "challenge_participants",
		"challenge_rooms", "users",
	}
	for _, table := range tables {
		if err := db.Exec("TRUNCATE TABLE " + table + " RESTART IDENTITY CASCADE").Error; err != nil {
			t.Fatalf("failed to reset table %s: %v", table, err)
		}
	}
	return db
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func seedUser(t *testing.T, db *gorm.DB, n int) *models.User {
	t.Helper()
	user := models.User{
		Nickname:       fmt.Sprintf("runner%d", n),
		Email:          fmt.Sprintf("runner%d@example.com", n),
		CredentialHash: "hash",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return &user
}

// seedRoom creates a room through RoomService so the host is seated the
// same way production does it.
func seedRoom(t *testing.T, db *gorm.DB, hostID uint, capacity int) *models.ChallengeRoom {
	t.Helper()
	rooms := NewRoomService(db, nil, testLogger())
	room, err := rooms.Create(testCtx(), hostID, CreateRoomInput{
		Title:     "morning squats",
		Capacity:  capacity,
		StartDate: time.Now(),
		EndDate:   time.Now().Add(14 * 24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("failed to seed room: %v", err)
	}
	return room
}
