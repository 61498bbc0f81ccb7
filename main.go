package main

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"motionit/challenge"
	"motionit/database"
	"motionit/events"
	"motionit/moderation"
	"motionit/screens"
	"motionit/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

func main() {
	var logger *zap.Logger
	var err error
	logger, err = utils.InitLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	config, err := database.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("failed to load config.json", zap.Error(err))
	}

	// PostgreSQLとRedisを非同期で初期化
	var db *gorm.DB
	var rdb *redis.Client
	done := make(chan bool)

	go func() {
		pg, err := database.InitPostgreSQL(config, logger)
		if err != nil {
			logger.Fatal("failed to initialize PostgreSQL", zap.Error(err))
		}
		db = pg
		done <- true
	}()

	go func() {
		client, err := database.InitRedis(logger)
		if err != nil {
			logger.Fatal("failed to initialize Redis", zap.Error(err))
		}
		rdb = client
		done <- true
	}()

	<-done
	<-done

	tz := config.CronTimezone
	if tz == "" {
		tz = "Asia/Seoul"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		logger.Fatal("invalid cron timezone", zap.String("tz", tz), zap.Error(err))
	}

	// 毎日のミッション初期化と期限切れルームのクローズ
	cronJobs := utils.StartCronJobs(db, logger, loc)
	defer cronJobs.Stop()

	publisher := events.NewRedisPublisher(rdb)
	coordinator := challenge.NewCoordinator(db, publisher, logger)
	rooms := challenge.NewRoomService(db, publisher, logger)
	missions := challenge.NewMissionService(db, loc, logger)
	videos := challenge.NewVideoService(db, challenge.NoopMetadataFetcher{}, loc, logger)
	filter := moderation.NewKeywordFilter(moderation.DefaultBannedWords)
	comments := challenge.NewCommentService(db, filter, logger)

	// ルームイベントをWebsocketクライアントへ配信
	hub := events.NewHub(logger)
	hubCtx, cancelHub := context.WithCancel(context.Background())
	defer cancelHub()
	go hub.Run(hubCtx, rdb)

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	router := gin.New()
	router.Use(gin.Recovery(), utils.RequestLogger(logger))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.POST("/auth/register", func(c *gin.Context) {
		screens.Register(c, db, logger)
	})
	router.POST("/auth/token", func(c *gin.Context) {
		screens.IssueToken(c, db, logger)
	})

	router.POST("/rooms", func(c *gin.Context) {
		screens.CreateRoom(c, rooms, logger)
	})
	router.GET("/rooms", func(c *gin.Context) {
		screens.ListRooms(c, rooms, logger)
	})
	router.GET("/rooms/:roomId", func(c *gin.Context) {
		screens.GetRoom(c, rooms, logger)
	})
	router.DELETE("/rooms/:roomId", func(c *gin.Context) {
		screens.DeleteRoom(c, rooms, logger)
	})

	router.POST("/rooms/:roomId/participants", func(c *gin.Context) {
		screens.JoinRoom(c, coordinator, logger)
	})
	router.DELETE("/rooms/:roomId/participants/me", func(c *gin.Context) {
		screens.LeaveRoom(c, coordinator, logger)
	})
	router.GET("/rooms/:roomId/participants/me", func(c *gin.Context) {
		screens.ParticipationStatus(c, coordinator, logger)
	})

	router.POST("/rooms/:roomId/missions/complete", func(c *gin.Context) {
		screens.CompleteMission(c, missions, logger)
	})
	router.GET("/rooms/:roomId/missions/today", func(c *gin.Context) {
		screens.TodayMission(c, missions, logger)
	})
	router.GET("/rooms/:roomId/missions", func(c *gin.Context) {
		screens.RoomTodayMissions(c, missions, logger)
	})
	router.GET("/rooms/:roomId/missions/history", func(c *gin.Context) {
		screens.MissionHistory(c, missions, logger)
	})

	router.POST("/rooms/:roomId/videos", func(c *gin.Context) {
		screens.PostVideo(c, videos, logger)
	})
	router.GET("/rooms/:roomId/videos", func(c *gin.Context) {
		screens.ListVideos(c, videos, loc, logger)
	})

	router.POST("/rooms/:roomId/comments", func(c *gin.Context) {
		screens.CreateComment(c, comments, logger)
	})
	router.GET("/rooms/:roomId/comments", func(c *gin.Context) {
		screens.ListComments(c, comments, logger)
	})
	router.PUT("/comments/:commentId", func(c *gin.Context) {
		screens.EditComment(c, comments, logger)
	})
	router.DELETE("/comments/:commentId", func(c *gin.Context) {
		screens.DeleteComment(c, comments, logger)
	})
	router.POST("/comments/:commentId/like", func(c *gin.Context) {
		screens.ToggleCommentLike(c, comments, logger)
	})

	router.GET("/ws", func(c *gin.Context) {
		hub.ServeWS(c, upgrader)
	})

	router.Run()
}
