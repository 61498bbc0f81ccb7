package models

import (
	"time"

	"gorm.io/gorm"
)

// 参加者のロール。HOSTはルーム作成時に一度だけ割り当てられる。
const (
	RoleHost   = "HOST"
	RoleNormal = "NORMAL"
)

// ChallengeParticipant モデルの定義
// One row per (user, room), enforced by the unique index. Leaving never
// deletes the row; it flips Quited so a re-join reuses the same identity.
type ChallengeParticipant struct {
	gorm.Model
	UserID          uint       `gorm:"not null;uniqueIndex:idx_participant_user_room"`
	ChallengeRoomID uint       `gorm:"not null;uniqueIndex:idx_participant_user_room"`
	Role            string     `gorm:"not null"`
	Quited          bool       `gorm:"not null;default:false"`
	QuitDate        *time.Time `gorm:"column:quit_date"`

	User          User          `gorm:"foreignKey:UserID"`
	ChallengeRoom ChallengeRoom `gorm:"foreignKey:ChallengeRoomID"`
}

// QuitChallenge marks the participant as left without deleting the row.
func (p *ChallengeParticipant) QuitChallenge() {
	now := time.Now()
	p.Quited = true
	p.QuitDate = &now
}
