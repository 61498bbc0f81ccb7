package challenge

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"motionit/models"

	"gorm.io/gorm/clause"
)

func testCtx() context.Context {
	return context.Background()
}

func TestJoinLeaveStatusCycle(t *testing.T) {
	db := testDB(t)
	co := NewCoordinator(db, nil, testLogger())

	host := seedUser(t, db, 1)
	room := seedRoom(t, db, host.ID, 5)
	user := seedUser(t, db, 2)

	if err := co.Join(testCtx(), user.ID, room.ID); err != nil {
		t.Fatalf("join failed: %v", err)
	}

	active, err := co.IsActiveParticipant(testCtx(), user.ID, room.ID)
	if err != nil || !active {
		t.Fatalf("expected active participant after join, got active=%v err=%v", active, err)
	}

	if err := co.Join(testCtx(), user.ID, room.ID); !errors.Is(err, ErrAlreadyJoined) {
		t.Fatalf("second join = %v, want ErrAlreadyJoined", err)
	}

	if err := co.Leave(testCtx(), user.ID, room.ID); err != nil {
		t.Fatalf("leave failed: %v", err)
	}

	active, err = co.IsActiveParticipant(testCtx(), user.ID, room.ID)
	if err != nil || active {
		t.Fatalf("expected inactive participant after leave, got active=%v err=%v", active, err)
	}

	if err := co.Leave(testCtx(), user.ID, room.ID); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("second leave = %v, want ErrNotParticipant", err)
	}
}

func TestRejoinReusesSameRow(t *testing.T) {
	db := testDB(t)
	co := NewCoordinator(db, nil, testLogger())

	host := seedUser(t, db, 1)
	room := seedRoom(t, db, host.ID, 5)
	user := seedUser(t, db, 2)

	if err := co.Join(testCtx(), user.ID, room.ID); err != nil {
		t.Fatalf("join failed: %v", err)
	}

	var first models.ChallengeParticipant
	if err := db.Where("user_id = ? AND challenge_room_id = ?", user.ID, room.ID).
		First(&first).Error; err != nil {
		t.Fatalf("failed to load participant row: %v", err)
	}

	if err := co.Leave(testCtx(), user.ID, room.ID); err != nil {
		t.Fatalf("leave failed: %v", err)
	}
	if err := co.Join(testCtx(), user.ID, room.ID); err != nil {
		t.Fatalf("rejoin failed: %v", err)
	}

	var rows []models.ChallengeParticipant
	if err := db.Where("user_id = ? AND challenge_room_id = ?", user.ID, room.ID).
		Find(&rows).Error; err != nil {
		t.Fatalf("failed to load participant rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("participant rows = %d, want exactly 1", len(rows))
	}
	if rows[0].ID != first.ID {
		t.Errorf("rejoin created row %d, want reused row %d", rows[0].ID, first.ID)
	}
	if rows[0].Quited {
		t.Error("rejoined row must be active")
	}
	if rows[0].QuitDate != nil {
		t.Error("rejoined row must have quit_date cleared")
	}
}

func TestHostRoleAssignedOnce(t *testing.T) {
	db := testDB(t)
	co := NewCoordinator(db, nil, testLogger())

	host := seedUser(t, db, 1)
	room := seedRoom(t, db, host.ID, 3)

	isHost, err := co.IsRoomHost(testCtx(), host.ID, room.ID)
	if err != nil || !isHost {
		t.Fatalf("expected creator to be host, got isHost=%v err=%v", isHost, err)
	}

	user := seedUser(t, db, 2)
	if err := co.Join(testCtx(), user.ID, room.ID); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	isHost, err = co.IsRoomHost(testCtx(), user.ID, room.ID)
	if err != nil || isHost {
		t.Fatalf("expected normal participant, got isHost=%v err=%v", isHost, err)
	}
}

func TestJoinSoftDeletedRoom(t *testing.T) {
	db := testDB(t)
	co := NewCoordinator(db, nil, testLogger())
	rooms := NewRoomService(db, nil, testLogger())

	host := seedUser(t, db, 1)
	room := seedRoom(t, db, host.ID, 5)
	user := seedUser(t, db, 2)

	if err := co.Join(testCtx(), user.ID, room.ID); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if err := rooms.SoftDelete(testCtx(), host.ID, room.ID); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}

	if err := co.Leave(testCtx(), user.ID, room.ID); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("leave after delete = %v, want ErrRoomNotFound", err)
	}
	if err := co.Join(testCtx(), user.ID, room.ID); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("join after delete = %v, want ErrRoomNotFound", err)
	}
}

func TestConcurrentJoinsRespectCapacity(t *testing.T) {
	db := testDB(t)
	co := NewCoordinator(db, nil, testLogger())

	host := seedUser(t, db, 1)
	// Capacity 3 with the host already seated leaves 2 free slots.
	room := seedRoom(t, db, host.ID, 3)

	const contenders = 10
	userIDs := make([]uint, contenders)
	for i := 0; i < contenders; i++ {
		userIDs[i] = seedUser(t, db, i+2).ID
	}

	var wg sync.WaitGroup
	results := make(chan error, contenders)
	for _, id := range userIDs {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			results <- co.Join(testCtx(), userID, room.ID)
		}(id)
	}
	wg.Wait()
	close(results)

	succeeded, full := 0, 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrFullRoom):
			full++
		case errors.Is(err, ErrJoinContention):
			// transient loss is acceptable, but it must not admit anyone
		default:
			t.Errorf("unexpected join error: %v", err)
		}
	}

	if succeeded > 2 {
		t.Errorf("joins succeeded = %d, capacity allows at most 2", succeeded)
	}
	if succeeded == 2 && full != contenders-2 {
		t.Logf("full-room rejections = %d (some callers may have hit contention)", full)
	}

	var active int64
	if err := db.Model(&models.ChallengeParticipant{}).
		Where("challenge_room_id = ? AND quited = ?", room.ID, false).
		Count(&active).Error; err != nil {
		t.Fatalf("failed to count active participants: %v", err)
	}
	if active > 3 {
		t.Errorf("active participants = %d, capacity is 3", active)
	}
	if int(active) != succeeded+1 {
		t.Errorf("active participants = %d, want host plus %d winners", active, succeeded)
	}
}

func TestJoinUnderHeldLockReportsContention(t *testing.T) {
	db := testDB(t)
	co := NewCoordinator(db, nil, testLogger())

	host := seedUser(t, db, 1)
	room := seedRoom(t, db, host.ID, 5)
	user := seedUser(t, db, 2)

	// Hold the room lock in a competing transaction so the join cannot
	// acquire it before its deadline expires.
	blocker := db.Begin()
	if blocker.Error != nil {
		t.Fatalf("failed to begin blocking transaction: %v", blocker.Error)
	}
	var locked models.ChallengeRoom
	if err := blocker.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&locked, room.ID).Error; err != nil {
		blocker.Rollback()
		t.Fatalf("failed to lock room: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	err := co.Join(ctx, user.ID, room.ID)
	cancel()
	blocker.Rollback()

	if !errors.Is(err, ErrJoinContention) {
		t.Fatalf("join under held lock = %v, want ErrJoinContention", err)
	}

	// The timed-out join must not leave a row behind.
	var rows int64
	if err := db.Model(&models.ChallengeParticipant{}).
		Where("user_id = ? AND challenge_room_id = ?", user.ID, room.ID).
		Count(&rows).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	if rows != 0 {
		t.Errorf("timed-out join left %d participant rows", rows)
	}

	// Once the lock is released the same caller succeeds.
	if err := co.Join(testCtx(), user.ID, room.ID); err != nil {
		t.Fatalf("join after lock release failed: %v", err)
	}
}

func TestJoinFullRoomFailsCleanly(t *testing.T) {
	db := testDB(t)
	co := NewCoordinator(db, nil, testLogger())

	host := seedUser(t, db, 1)
	room := seedRoom(t, db, host.ID, 1) // host fills the only slot

	user := seedUser(t, db, 2)
	if err := co.Join(testCtx(), user.ID, room.ID); !errors.Is(err, ErrFullRoom) {
		t.Fatalf("join = %v, want ErrFullRoom", err)
	}

	// A failed join must not leave a row behind.
	var rows int64
	if err := db.Model(&models.ChallengeParticipant{}).
		Where("user_id = ? AND challenge_room_id = ?", user.ID, room.ID).
		Count(&rows).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	if rows != 0 {
		t.Errorf("rejected join left %d participant rows", rows)
	}
}

func TestJoinUnknownUserOrRoom(t *testing.T) {
	db := testDB(t)
	co := NewCoordinator(db, nil, testLogger())

	host := seedUser(t, db, 1)
	room := seedRoom(t, db, host.ID, 3)

	if err := co.Join(testCtx(), 9999, room.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("join with unknown user = %v, want ErrUserNotFound", err)
	}
	if err := co.Join(testCtx(), host.ID, 9999); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("join with unknown room = %v, want ErrRoomNotFound", err)
	}
}
