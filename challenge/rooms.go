package challenge

import (
	"context"
	"errors"
	"time"

	"motionit/events"
	"motionit/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RoomService はチャレンジルームの作成・取得・削除を担当します。
type RoomService struct {
	db     *gorm.DB
	events events.Publisher
	logger *zap.Logger
}

func NewRoomService(db *gorm.DB, publisher events.Publisher, logger *zap.Logger) *RoomService {
	return &RoomService{db: db, events: publisher, logger: logger}
}

type CreateRoomInput struct {
	Title       string
	Description string
	Capacity    int
	StartDate   time.Time
	EndDate     time.Time
}

// Create creates a room and joins the host inside the same transaction;
// if the host cannot be seated the room creation rolls back too.
func (s *RoomService) Create(ctx context.Context, hostID uint, in CreateRoomInput) (*models.ChallengeRoom, error) {
	if in.Capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	if !in.EndDate.After(in.StartDate) {
		return nil, ErrInvalidPeriod
	}

	room := models.ChallengeRoom{
		UserID:             hostID,
		Title:              in.Title,
		Description:        in.Description,
		Capacity:           in.Capacity,
		OpenStatus:         models.RoomOpen,
		InviteCode:         uuid.NewString(),
		ChallengeStartDate: in.StartDate,
		ChallengeEndDate:   in.EndDate,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var host models.User
		if err := tx.First(&host, hostID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if err := tx.Create(&room).Error; err != nil {
			return err
		}
		return joinTx(tx, hostID, room.ID, models.RoleHost)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.RoomCreated, room.ID, hostID)
	return &room, nil
}

// Get returns the room with its active participants.
func (s *RoomService) Get(ctx context.Context, roomID uint) (*models.ChallengeRoom, []models.ChallengeParticipant, error) {
	var room models.ChallengeRoom
	if err := s.db.WithContext(ctx).First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrRoomNotFound
		}
		return nil, nil, err
	}

	var participants []models.ChallengeParticipant
	err := s.db.WithContext(ctx).Preload("User").
		Where("challenge_room_id = ? AND quited = ?", roomID, false).
		Find(&participants).Error
	if err != nil {
		return nil, nil, err
	}
	return &room, participants, nil
}

// ListOpen returns a page of open rooms, newest first, with the total count.
func (s *RoomService) ListOpen(ctx context.Context, page, size int) ([]models.ChallengeRoom, int64, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.ChallengeRoom{}).
		Where("open_status = ?", models.RoomOpen).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rooms []models.ChallengeRoom
	err := s.db.WithContext(ctx).
		Where("open_status = ?", models.RoomOpen).
		Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&rooms).Error
	if err != nil {
		return nil, 0, err
	}
	return rooms, total, nil
}

// SoftDelete closes the room and sets the delete tombstone. Host only.
// The participant rows stay; later joins fail with RoomNotFound.
func (s *RoomService) SoftDelete(ctx context.Context, actorID, roomID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.ChallengeRoom
		if err := tx.First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}

		participant, err := activeParticipant(tx, actorID, roomID)
		if err != nil {
			return err
		}
		if participant.Role != models.RoleHost {
			return ErrNotRoomHost
		}

		if err := tx.Model(&room).Update("open_status", models.RoomClosed).Error; err != nil {
			return err
		}
		return tx.Delete(&room).Error
	})
	if err != nil {
		return err
	}

	s.publish(ctx, events.RoomClosed, roomID, actorID)
	return nil
}

func (s *RoomService) publish(ctx context.Context, eventType events.EventType, roomID, userID uint) {
	if s.events == nil {
		return
	}
	ev := events.RoomEvent{
		Type:       eventType,
		RoomID:     roomID,
		UserID:     userID,
		OccurredAt: time.Now(),
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.logger.Warn("failed to publish room event",
			zap.String("type", string(eventType)),
			zap.Uint("roomID", roomID),
			zap.Error(err),
		)
	}
}
