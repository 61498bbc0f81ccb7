package middlewares

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/rooms/1/participants/me", nil)
	c.Request.Header.Set("Authorization", "Bearer "+token)

	userID, err := GetUserIDFromToken(c, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	if userID != 42 {
		t.Errorf("userID = %d, want 42", userID)
	}
}

func TestMissingTokenRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/rooms/1/participants/me", nil)

	if _, err := GetUserIDFromToken(c, zap.NewNop()); err == nil {
		t.Fatal("expected an error for a missing token")
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/rooms/1/participants/me", nil)
	c.Request.Header.Set("Authorization", "Bearer not-a-jwt")

	if _, err := GetUserIDFromToken(c, zap.NewNop()); err == nil {
		t.Fatal("expected an error for a malformed token")
	}
}
