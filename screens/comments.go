package screens

import (
	"net/http"

	"motionit/challenge"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CommentRequest はコメント作成・編集リクエストのボディを表す構造体です。
type CommentRequest struct {
	Content string `json:"content" binding:"required,max=500"`
}

// CreateComment posts a comment into the room.
func CreateComment(c *gin.Context, comments *challenge.CommentService, logger *zap.Logger) {
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}
	roomID, ok := pathID(c, "roomId")
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	comment, err := comments.Create(c.Request.Context(), userID, roomID, req.Content)
	if err != nil {
		writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"commentId": comment.ID})
}

// ListComments returns the room's comments.
func ListComments(c *gin.Context, comments *challenge.CommentService, logger *zap.Logger) {
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}
	roomID, ok := pathID(c, "roomId")
	if !ok {
		return
	}

	list, err := comments.ListByRoom(c.Request.Context(), userID, roomID)
	if err != nil {
		writeError(c, logger, err)
		return
	}

	views := make([]gin.H, 0, len(list))
	for _, comment := range list {
		views = append(views, gin.H{
			"commentId": comment.ID,
			"userId":    comment.UserID,
			"content":   comment.Content,
			"createdAt": comment.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"comments": views})
}

// EditComment rewrites a comment. Author only.
func EditComment(c *gin.Context, comments *challenge.CommentService, logger *zap.Logger) {
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	comment, err := comments.Edit(c.Request.Context(), userID, commentID, req.Content)
	if err != nil {
		writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"commentId": comment.ID, "content": comment.Content})
}

// DeleteComment removes a comment. Author only.
func DeleteComment(c *gin.Context, comments *challenge.CommentService, logger *zap.Logger) {
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}

	if err := comments.Delete(c.Request.Context(), userID, commentID); err != nil {
		writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}

// ToggleCommentLike likes or un-likes a comment.
func ToggleCommentLike(c *gin.Context, comments *challenge.CommentService, logger *zap.Logger) {
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}

	liked, err := comments.ToggleLike(c.Request.Context(), userID, commentID)
	if err != nil {
		writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}
