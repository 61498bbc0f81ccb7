package challenge

import (
	"context"
	"time"

	"motionit/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VideoMetadata is what the external metadata service knows about a video.
type VideoMetadata struct {
	Title           string
	ThumbnailURL    string
	DurationSeconds int
}

// MetadataFetcher resolves display metadata for a posted video URL. The
// real implementation talks to the video platform; it is consumed here as
// an external collaborator and may fail without blocking the post.
type MetadataFetcher interface {
	Fetch(ctx context.Context, videoURL string) (VideoMetadata, error)
}

// NoopMetadataFetcher is used when no metadata backend is configured.
type NoopMetadataFetcher struct{}

func (NoopMetadataFetcher) Fetch(ctx context.Context, videoURL string) (VideoMetadata, error) {
	return VideoMetadata{}, nil
}

// VideoService はミッション動画の投稿・照会を担当します。
type VideoService struct {
	db      *gorm.DB
	fetcher MetadataFetcher
	loc     *time.Location
	logger  *zap.Logger
}

func NewVideoService(db *gorm.DB, fetcher MetadataFetcher, loc *time.Location, logger *zap.Logger) *VideoService {
	if fetcher == nil {
		fetcher = NoopMetadataFetcher{}
	}
	return &VideoService{db: db, fetcher: fetcher, loc: loc, logger: logger}
}

// Post stores today's mission video for the room. Metadata fetch failures
// degrade to a bare URL instead of failing the post.
func (s *VideoService) Post(ctx context.Context, userID, roomID uint, videoURL string) (*models.ChallengeVideo, error) {
	if _, err := activeParticipant(s.db.WithContext(ctx), userID, roomID); err != nil {
		return nil, err
	}

	meta, err := s.fetcher.Fetch(ctx, videoURL)
	if err != nil {
		s.logger.Warn("video metadata fetch failed, storing URL only",
			zap.String("url", videoURL), zap.Error(err))
		meta = VideoMetadata{}
	}

	video := models.ChallengeVideo{
		ChallengeRoomID: roomID,
		UserID:          userID,
		VideoURL:        videoURL,
		Title:           meta.Title,
		ThumbnailURL:    meta.ThumbnailURL,
		DurationSeconds: meta.DurationSeconds,
		UploadDate:      Today(s.loc),
	}
	if err := s.db.WithContext(ctx).Create(&video).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// ListByRoom returns the room's videos for one date, newest first.
func (s *VideoService) ListByRoom(ctx context.Context, actorID, roomID uint, date time.Time) ([]models.ChallengeVideo, error) {
	if _, err := activeParticipant(s.db.WithContext(ctx), actorID, roomID); err != nil {
		return nil, err
	}

	var videos []models.ChallengeVideo
	err := s.db.WithContext(ctx).
		Where("challenge_room_id = ? AND upload_date = ?", roomID, date).
		Order("created_at DESC").
		Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}
