package middlewares

import (
	"time"

	"motionit/auth"
	"motionit/models"

	jwt "github.com/dgrijalva/jwt-go"
)

const tokenLifetime = 72 * time.Hour

// GenerateToken issues a signed JWT for the given user.
func GenerateToken(userID uint) (string, error) {
	expirationTime := time.Now().Add(tokenLifetime)

	claims := &models.MyClaims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(auth.JwtKey)
}
