package challenge

import (
	"context"
	"errors"

	"motionit/models"
	"motionit/moderation"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CommentService はルームのコメントといいねを担当します。
type CommentService struct {
	db     *gorm.DB
	filter *moderation.KeywordFilter
	logger *zap.Logger
}

func NewCommentService(db *gorm.DB, filter *moderation.KeywordFilter, logger *zap.Logger) *CommentService {
	return &CommentService{db: db, filter: filter, logger: logger}
}

// Create posts a comment into the room after the moderation gate.
func (s *CommentService) Create(ctx context.Context, userID, roomID uint, content string) (*models.Comment, error) {
	if _, err := activeParticipant(s.db.WithContext(ctx), userID, roomID); err != nil {
		return nil, err
	}
	if err := s.moderate(content, userID, roomID); err != nil {
		return nil, err
	}

	comment := models.Comment{
		ChallengeRoomID: roomID,
		UserID:          userID,
		Content:         content,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Edit rewrites a comment. Author only; the new text passes moderation too.
func (s *CommentService) Edit(ctx context.Context, userID, commentID uint, content string) (*models.Comment, error) {
	comment, err := s.ownedComment(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}
	if err := s.moderate(content, userID, comment.ChallengeRoomID); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(comment).Update("content", content).Error; err != nil {
		return nil, err
	}
	comment.Content = content
	return comment, nil
}

// Delete removes a comment. Author only.
func (s *CommentService) Delete(ctx context.Context, userID, commentID uint) error {
	comment, err := s.ownedComment(ctx, userID, commentID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(comment).Error
}

// ListByRoom returns the room's comments, oldest first.
func (s *CommentService) ListByRoom(ctx context.Context, actorID, roomID uint) ([]models.Comment, error) {
	if _, err := activeParticipant(s.db.WithContext(ctx), actorID, roomID); err != nil {
		return nil, err
	}

	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Where("challenge_room_id = ?", roomID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// ToggleLike likes the comment, or removes the like if one exists.
// Returns whether the comment is liked after the call.
func (s *CommentService) ToggleLike(ctx context.Context, userID, commentID uint) (bool, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrCommentNotFound
		}
		return false, err
	}

	liked := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.CommentLike
		err := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).
			First(&existing).Error
		switch {
		case err == nil:
			return tx.Delete(&existing).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			liked = true
			return tx.Create(&models.CommentLike{CommentID: commentID, UserID: userID}).Error
		default:
			return err
		}
	})
	return liked, err
}

func (s *CommentService) ownedComment(ctx context.Context, userID, commentID uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if comment.UserID != userID {
		return nil, ErrNotCommentAuthor
	}
	return &comment, nil
}

func (s *CommentService) moderate(content string, userID, roomID uint) error {
	if s.filter == nil {
		return nil
	}
	if word, banned := s.filter.Rejects(content); banned {
		s.logger.Info("comment rejected by moderation",
			zap.Uint("userID", userID),
			zap.Uint("roomID", roomID),
			zap.String("keyword", word))
		return ErrCommentRejected
	}
	return nil
}
