package screens

import (
	"net/http"
	"time"

	"motionit/challenge"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PostVideoRequest はミッション動画投稿リクエストのボディを表す構造体です。
type PostVideoRequest struct {
	VideoURL string `json:"videoUrl" binding:"required,url"`
}

// PostVideo stores today's mission video for the room.
func PostVideo(c *gin.Context, videos *challenge.VideoService, logger *zap.Logger) {
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}
	roomID, ok := pathID(c, "roomId")
	if !ok {
		return
	}

	var req PostVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	video, err := videos.Post(c.Request.Context(), userID, roomID, req.VideoURL)
	if err != nil {
		writeError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"videoId":    video.ID,
		"title":      video.Title,
		"uploadDate": video.UploadDate.Format("2006-01-02"),
	})
}

// ListVideos returns the room's videos for one date (today by default).
func ListVideos(c *gin.Context, videos *challenge.VideoService, loc *time.Location, logger *zap.Logger) {
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}
	roomID, ok := pathID(c, "roomId")
	if !ok {
		return
	}

	date := challenge.Today(loc)
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, want YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	list, err := videos.ListByRoom(c.Request.Context(), userID, roomID, date)
	if err != nil {
		writeError(c, logger, err)
		return
	}

	views := make([]gin.H, 0, len(list))
	for _, v := range list {
		views = append(views, gin.H{
			"videoId":         v.ID,
			"userId":          v.UserID,
			"videoUrl":        v.VideoURL,
			"title":           v.Title,
			"thumbnailUrl":    v.ThumbnailURL,
			"durationSeconds": v.DurationSeconds,
			"uploadDate":      v.UploadDate.Format("2006-01-02"),
		})
	}
	c.JSON(http.StatusOK, gin.H{"videos": views})
}
