package bootstrap

import (
	"context"
	"log"

	"todolist-be/internal/bot"
	"todolist-be/internal/config"
	"todolist-be/internal/controller"
	"todolist-be/internal/pkg/logger"
	"todolist-be/internal/repository/contract"
	"todolist-be/internal/repository/memory"
	"todolist-be/internal/repository/redisstore"
	"todolist-be/internal/repository/unitofwork"
	"todolist-be/internal/service"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController controller.IAuthController
	TaskController controller.ITaskController

	// Bot command dispatcher (Exposed for cmd/bot to wrap in a transport)
	BotHandler *bot.Handler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	publisherService := service.NewPublisherService(cfg.App.TaskEventsTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.TaskEventsTopic, sysLogger)

	// 3. Session Storage (in-memory by default, Redis when configured)
	sessionRepo := newSessionStore(cfg)

	// 4. Services
	sessionService := service.NewSessionService(sessionRepo, cfg.Session.TTL)
	authService := service.NewAuthService(uowFactory, publisherService, cfg.Database.QueryTimeout)
	taskService := service.NewTaskService(uowFactory, publisherService, cfg.Database.QueryTimeout)

	// 5. Controllers
	return &Container{
		AuthController:  controller.NewAuthController(authService, sessionService, cfg.Session.TTL),
		TaskController:  controller.NewTaskController(taskService, sessionService),
		BotHandler:      bot.NewHandler(authService, taskService, sysLogger),
		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}

func newSessionStore(cfg *config.Config) contract.SessionStore {
	if cfg.Session.Store != "redis" {
		return memory.NewSessionRepository(cfg.Session.TTL)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}
	return redisstore.NewSessionRepository(rdb, cfg.Session.TTL)
}
