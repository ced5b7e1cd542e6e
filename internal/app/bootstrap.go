package app

import (
	"backend/internal/app/activity"
	"backend/internal/app/board"
	"backend/internal/app/card"
	"backend/internal/app/health"
	"backend/internal/app/label"
	"backend/internal/app/list"
	"backend/internal/app/member"
	"backend/internal/app/notification"
	"backend/internal/app/session"
	"backend/internal/app/user"
	"backend/internal/config"
	"backend/internal/db"
	"backend/internal/db/seeder"
	"backend/internal/gateways/websocket"
	"backend/internal/providers/redis"
	"backend/internal/router"
	"backend/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Application struct {
	Router *router.Router
	DB     *gorm.DB
}

func Bootstrap(cfg *config.Config, logger *zap.Logger) (*Application, error) {
	dbConn, err := db.Connect(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(dbConn, logger); err != nil {
		return nil, err
	}

	seed := seeder.NewSeeder(dbConn, logger)
	if err := seed.Seed(); err != nil {
		logger.Warn("Failed to run seeders", zap.Error(err))
	}

	redisProvider := redis.NewRedisProvider(cfg.RedisURL, logger, cfg.RedisTTL)
	eventBus := utils.NewEventBus(cfg.EventBufferSize)

	userRepo := user.NewRepository(dbConn)
	sessionRepo := session.NewRepository(dbConn)
	memberRepo := member.NewRepository(dbConn)
	boardRepo := board.NewRepository(dbConn)
	listRepo := list.NewRepository(dbConn)
	cardRepo := card.NewRepository(dbConn)
	labelRepo := label.NewRepository(dbConn)
	activityRepo := activity.NewRepository(dbConn)
	notificationRepo := notification.NewRepository(dbConn)

	sessionService := session.NewService(sessionRepo, userRepo)
	memberService := member.NewService(memberRepo)
	notificationService := notification.NewService(notificationRepo, logger)
	activityService := activity.NewService(activityRepo, notificationService, cardRepo, eventBus, logger)
	cardService := card.NewService(cardRepo, memberService, activityService, notificationService, redisProvider, eventBus, cfg.MoveTimeout, logger)
	listService := list.NewService(listRepo, memberService, redisProvider, eventBus, logger)
	boardService := board.NewService(boardRepo, listRepo, cardRepo, labelRepo, memberService, redisProvider, logger)

	hub := websocket.NewHub(eventBus, sessionService, userRepo, memberService, logger)
	go hub.Run()

	healthHandler := health.NewHandler(&utils.HealthChecker{
		DB:    dbConn,
		Redis: redisProvider.Client,
	})
	sessionHandler := session.NewHandler(sessionService)
	boardHandler := board.NewHandler(boardService)
	listHandler := list.NewHandler(listService)
	cardHandler := card.NewHandler(cardService)
	activityHandler := activity.NewHandler(activityService)
	notificationHandler := notification.NewHandler(notificationService)

	r := router.NewRouter(logger, sessionService)

	r.RegisterHealthRoutes(healthHandler)
	r.RegisterWebSocketRoutes(hub)
	r.RegisterSessionRoutes(sessionHandler)
	r.RegisterBoardRoutes(boardHandler)
	r.RegisterListRoutes(listHandler)
	r.RegisterCardRoutes(cardHandler)
	r.RegisterActivityRoutes(activityHandler)
	r.RegisterNotificationRoutes(notificationHandler)
	r.RegisterSwaggerRoutes()

	return &Application{
		Router: r,
		DB:     dbConn,
	}, nil
}
