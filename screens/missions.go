package screens

import (
	"net/http"

	"motionit/challenge"
	"motionit/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CompleteMission marks today's mission done for the caller.
func CompleteMission(c *gin.Context, missions *challenge.MissionService, logger *zap.Logger) {
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}
	roomID, ok := pathID(c, "roomId")
	if !ok {
		return
	}

	mission, err := missions.Complete(c.Request.Context(), userID, roomID)
	if err != nil {
		writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, missionView(mission))
}

// TodayMission returns the caller's mission row for today.
func TodayMission(c *gin.Context, missions *challenge.MissionService, logger *zap.Logger) {
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}
	roomID, ok := pathID(c, "roomId")
	if !ok {
		return
	}

	mission, err := missions.TodayStatus(c.Request.Context(), userID, roomID)
	if err != nil {
		writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, missionView(mission))
}

// RoomTodayMissions returns today's state for the whole room roster.
func RoomTodayMissions(c *gin.Context, missions *challenge.MissionService, logger *zap.Logger) {
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}
	roomID, ok := pathID(c, "roomId")
	if !ok {
		return
	}

	statuses, err := missions.RoomToday(c.Request.Context(), userID, roomID)
	if err != nil {
		writeError(c, logger, err)
		return
	}

	views := make([]gin.H, 0, len(statuses))
	for i := range statuses {
		view := missionView(&statuses[i])
		view["nickname"] = statuses[i].Participant.User.Nickname
		views = append(views, view)
	}
	c.JSON(http.StatusOK, gin.H{"missions": views})
}

// MissionHistory returns the caller's mission record in the room.
func MissionHistory(c *gin.Context, missions *challenge.MissionService, logger *zap.Logger) {
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}
	roomID, ok := pathID(c, "roomId")
	if !ok {
		return
	}

	history, err := missions.History(c.Request.Context(), userID, roomID)
	if err != nil {
		writeError(c, logger, err)
		return
	}

	views := make([]gin.H, 0, len(history))
	for i := range history {
		views = append(views, missionView(&history[i]))
	}
	c.JSON(http.StatusOK, gin.H{"missions": views})
}

func missionView(m *models.ChallengeMissionStatus) gin.H {
	return gin.H{
		"participantId": m.ParticipantID,
		"missionDate":   m.MissionDate.Format("2006-01-02"),
		"completed":     m.Completed,
	}
}
