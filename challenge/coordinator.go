package challenge

import (
	"context"
	"errors"
	"time"

	"motionit/events"
	"motionit/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// joinLockTimeout bounds how long a join waits on the room lock before the
// caller gets a transient R-505 instead of blocking indefinitely.
const joinLockTimeout = 3 * time.Second

// Coordinator executes join and leave as transactional operations against
// the participant and room tables. Capacity is enforced under an exclusive
// row lock on the room, so the count of active participants never exceeds
// capacity no matter how many joins race.
type Coordinator struct {
	db     *gorm.DB
	events events.Publisher
	logger *zap.Logger
}

func NewCoordinator(db *gorm.DB, publisher events.Publisher, logger *zap.Logger) *Coordinator {
	return &Coordinator{db: db, events: publisher, logger: logger}
}

// Join adds the user to the room as a NORMAL participant.
func (co *Coordinator) Join(ctx context.Context, userID, roomID uint) error {
	lockCtx, cancel := context.WithTimeout(ctx, joinLockTimeout)
	defer cancel()

	err := co.db.WithContext(lockCtx).Transaction(func(tx *gorm.DB) error {
		return joinTx(tx, userID, roomID, models.RoleNormal)
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrJoinContention
		}
		return err
	}

	co.publish(ctx, events.ParticipantJoined, roomID, userID)
	return nil
}

// joinTx runs the capacity-safe join inside the caller's transaction.
// The room row is locked FOR UPDATE first, so the duplicate check, the
// active count and the insert/reactivate all commit atomically.
func joinTx(tx *gorm.DB, userID, roomID uint, role string) error {
	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	// Soft-deleted rooms are filtered by gorm, so they surface here as
	// not found.
	var room models.ChallengeRoom
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return err
	}

	var existing models.ChallengeParticipant
	err := tx.Where("user_id = ? AND challenge_room_id = ?", userID, roomID).
		First(&existing).Error
	switch {
	case err == nil:
		if !existing.Quited {
			return ErrAlreadyJoined
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// first join, insert below
	default:
		return err
	}

	var active int64
	if err := tx.Model(&models.ChallengeParticipant{}).
		Where("challenge_room_id = ? AND quited = ?", roomID, false).
		Count(&active).Error; err != nil {
		return err
	}
	if active >= int64(room.Capacity) {
		return ErrFullRoom
	}

	if existing.ID != 0 {
		// Re-join reactivates the single existing row, never a duplicate.
		return tx.Model(&existing).
			Updates(map[string]interface{}{"quited": false, "quit_date": nil}).Error
	}

	participant := models.ChallengeParticipant{
		UserID:          userID,
		ChallengeRoomID: roomID,
		Role:            role,
	}
	return tx.Create(&participant).Error
}

// Leave marks the participant as quited. The row is kept so the (user,
// room) uniqueness survives a later re-join. Only ever decreases the
// active count, so no room lock is needed.
func (co *Coordinator) Leave(ctx context.Context, userID, roomID uint) error {
	err := co.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.ChallengeRoom
		if err := tx.First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}

		participant, err := activeParticipant(tx, userID, roomID)
		if err != nil {
			return err
		}

		participant.QuitChallenge()
		return tx.Model(participant).
			Updates(map[string]interface{}{"quited": true, "quit_date": participant.QuitDate}).Error
	})
	if err != nil {
		return err
	}

	co.publish(ctx, events.ParticipantLeft, roomID, userID)
	return nil
}

// IsActiveParticipant reports whether the user currently has an active
// (non-quited) participant row in the room.
func (co *Coordinator) IsActiveParticipant(ctx context.Context, userID, roomID uint) (bool, error) {
	var count int64
	err := co.db.WithContext(ctx).Model(&models.ChallengeParticipant{}).
		Where("user_id = ? AND challenge_room_id = ? AND quited = ?", userID, roomID, false).
		Count(&count).Error
	return count > 0, err
}

// IsRoomHost reports whether the user holds the HOST role in the room.
func (co *Coordinator) IsRoomHost(ctx context.Context, userID, roomID uint) (bool, error) {
	participant, err := activeParticipant(co.db.WithContext(ctx), userID, roomID)
	if err != nil {
		return false, err
	}
	return participant.Role == models.RoleHost, nil
}

// activeParticipant loads the user's active participant row in the room.
func activeParticipant(tx *gorm.DB, userID, roomID uint) (*models.ChallengeParticipant, error) {
	var participant models.ChallengeParticipant
	err := tx.Where("user_id = ? AND challenge_room_id = ? AND quited = ?", userID, roomID, false).
		First(&participant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotParticipant
		}
		return nil, err
	}
	return &participant, nil
}

// publish is fire-and-forget: a broken publisher must never roll back or
// fail the operation that triggered the event.
func (co *Coordinator) publish(ctx context.Context, eventType events.EventType, roomID, userID uint) {
	if co.events == nil {
		return
	}
	ev := events.RoomEvent{
		Type:       eventType,
		RoomID:     roomID,
		UserID:     userID,
		OccurredAt: time.Now(),
	}
	if err := co.events.Publish(ctx, ev); err != nil {
		co.logger.Warn("failed to publish room event",
			zap.String("type", string(eventType)),
			zap.Uint("roomID", roomID),
			zap.Error(err),
		)
	}
}
