package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment モデルの定義
type Comment struct {
	gorm.Model
	ChallengeRoomID uint   `gorm:"not null;index"`
	UserID          uint   `gorm:"not null"`
	Content         string `gorm:"size:500;not null"`
}

// CommentLike rows are deleted outright on un-like, so no gorm.Model here;
// a soft-deleted row would collide with the unique index on re-like.
type CommentLike struct {
	ID        uint `gorm:"primarykey"`
	CommentID uint `gorm:"not null;uniqueIndex:idx_like_comment_user"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_like_comment_user"`
	CreatedAt time.Time
}
