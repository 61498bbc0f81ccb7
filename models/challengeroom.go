package models

import (
	"time"

	"gorm.io/gorm"
)

// ChallengeRoom の公開状態
const (
	RoomOpen   = "OPEN"
	RoomClosed = "CLOSED"
)

// ChallengeRoom モデルの定義
type ChallengeRoom struct {
	gorm.Model // DeletedAt serves as the soft-delete tombstone; gorm filters it on every query

	UserID             uint      `gorm:"not null;index"` // room host
	Title              string    `gorm:"not null"`
	Description        string    `gorm:"size:2000"`
	Capacity           int       `gorm:"not null;check:capacity > 0"` // fixed at creation
	OpenStatus         string    `gorm:"not null;default:OPEN"`
	InviteCode         string    `gorm:"unique;not null"`
	ChallengeStartDate time.Time `gorm:"not null"`
	ChallengeEndDate   time.Time `gorm:"not null"`
}
