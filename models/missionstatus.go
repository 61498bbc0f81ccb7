package models

import (
	"time"

	"gorm.io/gorm"
)

// ChallengeMissionStatus モデルの定義
// One row per participant per calendar day, created by the daily scheduler
// or lazily on completion. The unique index is the source of truth for
// duplicate suppression.
type ChallengeMissionStatus struct {
	gorm.Model
	ParticipantID uint      `gorm:"not null;uniqueIndex:idx_mission_participant_date"`
	MissionDate   time.Time `gorm:"type:date;not null;uniqueIndex:idx_mission_participant_date"`
	Completed     bool      `gorm:"not null;default:false"`

	Participant ChallengeParticipant `gorm:"foreignKey:ParticipantID"`
}

// CompleteMission marks today's mission as done.
func (m *ChallengeMissionStatus) CompleteMission() {
	m.Completed = true
}
