package challenge

import (
	"time"

	"motionit/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MissionInitializer materializes a mission-status row for every active
// participant once per calendar day. Runs are idempotent: the unique
// (participant_id, mission_date) index is the source of truth, so an
// overlapping or repeated run changes nothing. There is deliberately no
// distributed lock; at-least-once execution is accepted.
type MissionInitializer struct {
	db     *gorm.DB
	loc    *time.Location
	logger *zap.Logger
}

func NewMissionInitializer(db *gorm.DB, loc *time.Location, logger *zap.Logger) *MissionInitializer {
	return &MissionInitializer{db: db, loc: loc, logger: logger}
}

// Run initializes today's mission rows. Invoked by cron with no caller to
// report to, so every failure is handled locally: one participant's error
// never aborts the rest of the batch.
func (m *MissionInitializer) Run() {
	today := Today(m.loc)
	m.logger.Info("daily mission initialization started", zap.Time("date", today))

	var participants []models.ChallengeParticipant
	if err := m.db.Where("quited = ?", false).Find(&participants).Error; err != nil {
		m.logger.Error("failed to load active participants", zap.Error(err))
		return
	}

	created := 0
	for _, participant := range participants {
		var count int64
		if err := m.db.Model(&models.ChallengeMissionStatus{}).
			Where("participant_id = ? AND mission_date = ?", participant.ID, today).
			Count(&count).Error; err != nil {
			m.logger.Warn("mission existence check failed",
				zap.Uint("participantID", participant.ID), zap.Error(err))
			continue
		}
		if count > 0 {
			continue
		}

		status := models.ChallengeMissionStatus{
			ParticipantID: participant.ID,
			MissionDate:   today,
		}
		if err := m.db.Create(&status).Error; err != nil {
			// Usually the unique index firing on a race with a lazy
			// creation or an overlapping run. Log and move on.
			m.logger.Warn("duplicate mission ignored",
				zap.Uint("participantID", participant.ID),
				zap.Time("date", today),
				zap.Error(err))
			continue
		}
		created++
	}

	m.logger.Info("daily mission initialization finished",
		zap.Time("date", today),
		zap.Int("participants", len(participants)),
		zap.Int("created", created))
}
