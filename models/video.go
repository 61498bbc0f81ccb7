package models

import (
	"time"

	"gorm.io/gorm"
)

// ChallengeVideo モデルの定義
// A daily mission video posted into a room. Metadata fields come from the
// external metadata fetcher and may be empty when it is unavailable.
type ChallengeVideo struct {
	gorm.Model
	ChallengeRoomID uint      `gorm:"not null;index"`
	UserID          uint      `gorm:"not null"`
	VideoURL        string    `gorm:"not null"`
	Title           string
	ThumbnailURL    string
	DurationSeconds int
	UploadDate      time.Time `gorm:"type:date;not null;index"`
}
