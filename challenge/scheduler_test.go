package challenge

import (
	"testing"
	"time"

	"motionit/models"
)

func TestDailyMissionInitializationIsIdempotent(t *testing.T) {
	db := testDB(t)
	co := NewCoordinator(db, nil, testLogger())

	host := seedUser(t, db, 1)
	room := seedRoom(t, db, host.ID, 5)
	runner := seedUser(t, db, 2)
	quitter := seedUser(t, db, 3)

	if err := co.Join(testCtx(), runner.ID, room.ID); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if err := co.Join(testCtx(), quitter.ID, room.ID); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if err := co.Leave(testCtx(), quitter.ID, room.ID); err != nil {
		t.Fatalf("leave failed: %v", err)
	}

	initializer := NewMissionInitializer(db, time.UTC, testLogger())
	initializer.Run()
	initializer.Run() // second run on the same date must change nothing

	today := Today(time.UTC)

	var total int64
	if err := db.Model(&models.ChallengeMissionStatus{}).
		Where("mission_date = ?", today).
		Count(&total).Error; err != nil {
		t.Fatalf("failed to count mission rows: %v", err)
	}
	// host + runner are active, the quitter is not
	if total != 2 {
		t.Errorf("mission rows for today = %d, want 2", total)
	}

	var perParticipant []struct {
		ParticipantID uint
		Cnt           int64
	}
	err := db.Model(&models.ChallengeMissionStatus{}).
		Select("participant_id, count(*) as cnt").
		Where("mission_date = ?", today).
		Group("participant_id").
		Scan(&perParticipant).Error
	if err != nil {
		t.Fatalf("failed to group mission rows: %v", err)
	}
	for _, row := range perParticipant {
		if row.Cnt != 1 {
			t.Errorf("participant %d has %d rows for today, want 1", row.ParticipantID, row.Cnt)
		}
	}

	var quitterParticipant models.ChallengeParticipant
	if err := db.Where("user_id = ? AND challenge_room_id = ?", quitter.ID, room.ID).
		First(&quitterParticipant).Error; err != nil {
		t.Fatalf("failed to load quitter row: %v", err)
	}
	var quitterMissions int64
	if err := db.Model(&models.ChallengeMissionStatus{}).
		Where("participant_id = ?", quitterParticipant.ID).
		Count(&quitterMissions).Error; err != nil {
		t.Fatalf("failed to count quitter missions: %v", err)
	}
	if quitterMissions != 0 {
		t.Errorf("quited participant got %d mission rows, want 0", quitterMissions)
	}
}

func TestSchedulerToleratesExistingLazyRow(t *testing.T) {
	db := testDB(t)

	host := seedUser(t, db, 1)
	room := seedRoom(t, db, host.ID, 5)

	var participant models.ChallengeParticipant
	if err := db.Where("user_id = ? AND challenge_room_id = ?", host.ID, room.ID).
		First(&participant).Error; err != nil {
		t.Fatalf("failed to load host participant: %v", err)
	}

	today := Today(time.UTC)
	lazy := models.ChallengeMissionStatus{
		ParticipantID: participant.ID,
		MissionDate:   today,
		Completed:     true,
	}
	if err := db.Create(&lazy).Error; err != nil {
		t.Fatalf("failed to create lazy mission row: %v", err)
	}

	initializer := NewMissionInitializer(db, time.UTC, testLogger())
	initializer.Run()

	var rows []models.ChallengeMissionStatus
	if err := db.Where("participant_id = ? AND mission_date = ?", participant.ID, today).
		Find(&rows).Error; err != nil {
		t.Fatalf("failed to load mission rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("mission rows = %d, want the single lazy row", len(rows))
	}
	if !rows[0].Completed {
		t.Error("scheduler must not overwrite the completed lazy row")
	}
}
