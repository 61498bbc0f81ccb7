package screens

import (
	"net/http"

	"motionit/challenge"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JoinRoom seats the caller in the room, re-activating an earlier
// membership when one exists.
func JoinRoom(c *gin.Context, coordinator *challenge.Coordinator, logger *zap.Logger) {
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}
	roomID, ok := pathID(c, "roomId")
	if !ok {
		return
	}

	if err := coordinator.Join(c.Request.Context(), userID, roomID); err != nil {
		writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "joined challenge room"})
}

// LeaveRoom marks the caller's participation as quited.
func LeaveRoom(c *gin.Context, coordinator *challenge.Coordinator, logger *zap.Logger) {
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}
	roomID, ok := pathID(c, "roomId")
	if !ok {
		return
	}

	if err := coordinator.Leave(c.Request.Context(), userID, roomID); err != nil {
		writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "left challenge room"})
}

// ParticipationStatus reports whether the caller is an active participant.
func ParticipationStatus(c *gin.Context, coordinator *challenge.Coordinator, logger *zap.Logger) {
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}
	roomID, ok := pathID(c, "roomId")
	if !ok {
		return
	}

	active, err := coordinator.IsActiveParticipant(c.Request.Context(), userID, roomID)
	if err != nil {
		writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": active})
}
