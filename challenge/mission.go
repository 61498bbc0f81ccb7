package challenge

import (
	"context"
	"errors"
	"time"

	"motionit/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MissionService はデイリーミッションの完了・照会を担当します。
type MissionService struct {
	db     *gorm.DB
	loc    *time.Location
	logger *zap.Logger
}

func NewMissionService(db *gorm.DB, loc *time.Location, logger *zap.Logger) *MissionService {
	return &MissionService{db: db, loc: loc, logger: logger}
}

// Today returns the current calendar day in loc, normalized to a bare
// date so it compares equal to the DATE column regardless of clock time.
func Today(loc *time.Location) time.Time {
	now := time.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Complete marks today's mission done for the acting participant.
// Requires a mission video posted in the room today. The mission row is
// created lazily when the scheduler has not materialized it yet.
func (s *MissionService) Complete(ctx context.Context, userID, roomID uint) (*models.ChallengeMissionStatus, error) {
	var mission models.ChallengeMissionStatus

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		participant, err := activeParticipant(tx, userID, roomID)
		if err != nil {
			return err
		}

		today := Today(s.loc)

		var videos int64
		if err := tx.Model(&models.ChallengeVideo{}).
			Where("challenge_room_id = ? AND upload_date = ?", roomID, today).
			Count(&videos).Error; err != nil {
			return err
		}
		if videos == 0 {
			return ErrNoVideoToday
		}

		err = tx.Where("participant_id = ? AND mission_date = ?", participant.ID, today).
			First(&mission).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			mission = models.ChallengeMissionStatus{
				ParticipantID: participant.ID,
				MissionDate:   today,
			}
			if createErr := tx.Create(&mission).Error; createErr != nil {
				// Lost the race against the scheduler: the unique index
				// guarantees a row exists now, so load that one.
				if loadErr := tx.Where("participant_id = ? AND mission_date = ?", participant.ID, today).
					First(&mission).Error; loadErr != nil {
					return createErr
				}
			}
		} else if err != nil {
			return err
		}

		if mission.Completed {
			return ErrMissionAlreadyCompleted
		}

		mission.CompleteMission()
		return tx.Model(&mission).Update("completed", true).Error
	})
	if err != nil {
		return nil, err
	}
	return &mission, nil
}

// TodayStatus returns the acting participant's mission row for today.
func (s *MissionService) TodayStatus(ctx context.Context, userID, roomID uint) (*models.ChallengeMissionStatus, error) {
	participant, err := activeParticipant(s.db.WithContext(ctx), userID, roomID)
	if err != nil {
		return nil, err
	}

	var mission models.ChallengeMissionStatus
	err = s.db.WithContext(ctx).
		Where("participant_id = ? AND mission_date = ?", participant.ID, Today(s.loc)).
		First(&mission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMissionNotInitialized
	}
	if err != nil {
		return nil, err
	}
	return &mission, nil
}

// RoomToday returns today's mission state for every active participant in
// the room. Participants without a persisted row yet get an unsaved
// placeholder so the caller always sees the full roster.
func (s *MissionService) RoomToday(ctx context.Context, actorID, roomID uint) ([]models.ChallengeMissionStatus, error) {
	if _, err := activeParticipant(s.db.WithContext(ctx), actorID, roomID); err != nil {
		return nil, err
	}

	today := Today(s.loc)

	var participants []models.ChallengeParticipant
	if err := s.db.WithContext(ctx).Preload("User").
		Where("challenge_room_id = ? AND quited = ?", roomID, false).
		Find(&participants).Error; err != nil {
		return nil, err
	}

	var missions []models.ChallengeMissionStatus
	if err := s.db.WithContext(ctx).
		Joins("JOIN challenge_participants ON challenge_participants.id = challenge_mission_statuses.participant_id").
		Where("challenge_participants.challenge_room_id = ? AND challenge_mission_statuses.mission_date = ?", roomID, today).
		Find(&missions).Error; err != nil {
		return nil, err
	}

	byParticipant := make(map[uint]models.ChallengeMissionStatus, len(missions))
	for _, m := range missions {
		byParticipant[m.ParticipantID] = m
	}

	statuses := make([]models.ChallengeMissionStatus, 0, len(participants))
	for _, p := range participants {
		if m, ok := byParticipant[p.ID]; ok {
			m.Participant = p
			statuses = append(statuses, m)
			continue
		}
		statuses = append(statuses, models.ChallengeMissionStatus{
			ParticipantID: p.ID,
			MissionDate:   today,
			Participant:   p,
		})
	}

	if len(statuses) == 0 {
		s.logger.Warn("no mission data for room today",
			zap.Uint("roomID", roomID), zap.Time("date", today))
	}
	return statuses, nil
}

// History returns the acting participant's full mission record, oldest first.
func (s *MissionService) History(ctx context.Context, userID, roomID uint) ([]models.ChallengeMissionStatus, error) {
	participant, err := activeParticipant(s.db.WithContext(ctx), userID, roomID)
	if err != nil {
		return nil, err
	}

	var missions []models.ChallengeMissionStatus
	err = s.db.WithContext(ctx).
		Where("participant_id = ?", participant.ID).
		Order("mission_date ASC").
		Find(&missions).Error
	if err != nil {
		return nil, err
	}
	return missions, nil
}
