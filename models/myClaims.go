package models

import (
	jwt "github.com/dgrijalva/jwt-go"
)

// MyClaims はJWTトークンに内包されるクレームです。
type MyClaims struct {
	UserID uint `json:"userId"`
	jwt.StandardClaims
}
