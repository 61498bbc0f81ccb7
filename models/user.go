package models

import (
	"gorm.io/gorm"
)

// User モデルの定義
type User struct {
	gorm.Model
	Nickname       string `gorm:"not null"`
	Email          string `gorm:"unique;not null"`
	CredentialHash string `gorm:"not null"` // opaque credential supplied by the edge, never a raw password
}
