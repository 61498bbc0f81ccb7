package screens

import (
	"net/http"

	"motionit/middlewares"
	"motionit/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RegisterRequest はユーザー登録リクエストのボディを表す構造体です。
type RegisterRequest struct {
	Nickname       string `json:"nickname" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	CredentialHash string `json:"credentialHash" binding:"required"`
}

// Register creates a user. Credential hashing happens at the edge; the
// backend only stores the opaque hash.
func Register(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user := models.User{
		Nickname:       req.Nickname,
		Email:          req.Email,
		CredentialHash: req.CredentialHash,
	}
	if err := db.Create(&user).Error; err != nil {
		logger.Error("failed to create user", zap.Error(err))
		c.JSON(http.StatusConflict, gin.H{"error": "could not register user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"userId": user.ID})
}

// TokenRequest はトークン発行リクエストのボディを表す構造体です。
type TokenRequest struct {
	Email          string `json:"email" binding:"required,email"`
	CredentialHash string `json:"credentialHash" binding:"required"`
}

// IssueToken exchanges valid credentials for a JWT.
func IssueToken(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if user.CredentialHash != req.CredentialHash {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := middlewares.GenerateToken(user.ID)
	if err != nil {
		logger.Error("failed to sign token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "userId": user.ID})
}
