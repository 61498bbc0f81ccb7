package screens

import (
	"net/http"
	"strconv"
	"time"

	"motionit/challenge"
	"motionit/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateRoomRequest はルーム作成リクエストのボディを表す構造体です。
type CreateRoomRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Capacity    int       `json:"capacity" binding:"required"`
	StartDate   time.Time `json:"startDate" binding:"required"`
	EndDate     time.Time `json:"endDate" binding:"required"`
}

// CreateRoom creates a challenge room with the caller as host.
func CreateRoom(c *gin.Context, rooms *challenge.RoomService, logger *zap.Logger) {
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	room, err := rooms.Create(c.Request.Context(), userID, challenge.CreateRoomInput{
		Title:       req.Title,
		Description: req.Description,
		Capacity:    req.Capacity,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		writeError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"roomId":     room.ID,
		"inviteCode": room.InviteCode,
	})
}

// GetRoom returns one room with its active participants.
func GetRoom(c *gin.Context, rooms *challenge.RoomService, logger *zap.Logger) {
	roomID, ok := pathID(c, "roomId")
	if !ok {
		return
	}

	room, participants, err := rooms.Get(c.Request.Context(), roomID)
	if err != nil {
		writeError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room":         roomView(room),
		"participants": participantViews(participants),
	})
}

// ListRooms returns a page of open rooms.
func ListRooms(c *gin.Context, rooms *challenge.RoomService, logger *zap.Logger) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	list, total, err := rooms.ListOpen(c.Request.Context(), page, size)
	if err != nil {
		writeError(c, logger, err)
		return
	}

	views := make([]gin.H, 0, len(list))
	for i := range list {
		views = append(views, roomView(&list[i]))
	}
	c.JSON(http.StatusOK, gin.H{"rooms": views, "total": total})
}

// DeleteRoom soft-deletes a room. Host only.
func DeleteRoom(c *gin.Context, rooms *challenge.RoomService, logger *zap.Logger) {
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}
	roomID, ok := pathID(c, "roomId")
	if !ok {
		return
	}

	if err := rooms.SoftDelete(c.Request.Context(), userID, roomID); err != nil {
		writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "room deleted"})
}

func roomView(room *models.ChallengeRoom) gin.H {
	return gin.H{
		"roomId":      room.ID,
		"hostId":      room.UserID,
		"title":       room.Title,
		"description": room.Description,
		"capacity":    room.Capacity,
		"openStatus":  room.OpenStatus,
		"startDate":   room.ChallengeStartDate,
		"endDate":     room.ChallengeEndDate,
		"createdAt":   room.CreatedAt,
	}
}

func participantViews(participants []models.ChallengeParticipant) []gin.H {
	views := make([]gin.H, 0, len(participants))
	for _, p := range participants {
		views = append(views, gin.H{
			"participantId": p.ID,
			"userId":        p.UserID,
			"nickname":      p.User.Nickname,
			"role":          p.Role,
		})
	}
	return views
}
