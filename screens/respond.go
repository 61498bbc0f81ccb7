package screens

import (
	"net/http"
	"strconv"

	"motionit/challenge"
	"motionit/middlewares"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// writeError maps coded business errors to their stable JSON shape and
// everything else to a plain 500.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	if ce, ok := challenge.AsError(err); ok {
		c.JSON(ce.Status, gin.H{"code": ce.Code, "message": ce.Message})
		return
	}
	logger.Error("unhandled error", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// actingUser resolves the authenticated user from the bearer token. On
// failure the response has already been written.
func actingUser(c *gin.Context, logger *zap.Logger) (uint, bool) {
	userID, err := middlewares.GetUserIDFromToken(c, logger)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication failed"})
		return 0, false
	}
	return userID, true
}

// pathID parses a numeric path parameter.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}
