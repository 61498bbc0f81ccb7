package auth

import (
	"os"

	"motionit/models"

	jwt "github.com/dgrijalva/jwt-go"
)

// JwtKey はトークン署名に使うシークレットキーです。本番環境では必ず環境変数で設定。
var JwtKey = []byte(secretFromEnv())

func secretFromEnv() string {
	if key := os.Getenv("MOTIONIT_JWT_SECRET"); key != "" {
		return key
	}
	return "motionit-dev-secret"
}

func IsValidToken(tokenString string) (bool, error) {
	claims := &models.MyClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return JwtKey, nil
	})

	if err != nil {
		return false, err
	}

	return token.Valid, nil
}
