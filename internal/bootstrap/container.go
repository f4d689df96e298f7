package bootstrap

import (
	"context"
	"log"

	"pixfusion-be/internal/config"
	"pixfusion-be/internal/controller"
	"pixfusion-be/internal/handler"
	"pixfusion-be/internal/pkg/logger"
	"pixfusion-be/internal/pkg/mailer"
	"pixfusion-be/internal/repository/unitofwork"
	"pixfusion-be/internal/service"
	"pixfusion-be/internal/websocket"
	"pixfusion-be/pkg/events"
	pkgnats "pixfusion-be/pkg/nats"
	"pixfusion-be/pkg/provider"
	"pixfusion-be/pkg/provider/gemini"
	"pixfusion-be/pkg/provider/huggingface"
	"pixfusion-be/pkg/provider/local"
	"pixfusion-be/pkg/provider/replicate"
	"pixfusion-be/pkg/storage"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController       controller.IAuthController
	OAuthController      controller.IOAuthController
	GenerationController controller.IGenerationController
	ToolsController      controller.IToolsController
	CreditController     controller.ICreditController
	BillingController    controller.IBillingController
	AdminController      controller.IAdminController

	// WebSockets & events
	WsHandler    *handler.WsHandler
	WebSocketHub *websocket.Hub
	EventRelay   *service.EventRelay
	EventBus     *events.Bus

	// Shared infrastructure (exposed for middleware wiring)
	Redis  *redis.Client
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// Event bus
	bus := events.NewBus()

	// NATS
	natsPub, err := pkgnats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket hub
	wsLogger := logger.NewIsolatedLogger("logs/push.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	relay := service.NewEventRelay(bus, wsHub, natsPub, sysLogger)

	// Artifact storage
	artifacts, err := storage.NewS3Store(storage.Config{
		Endpoint:  cfg.Storage.S3Endpoint,
		Region:    cfg.Storage.S3Region,
		Bucket:    cfg.Storage.S3Bucket,
		AccessKey: cfg.Storage.S3AccessKey,
		SecretKey: cfg.Storage.S3SecretKey,
		PublicURL: cfg.Storage.S3PublicURL,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize artifact storage: %v", err)
	}

	// Provider chains. Order is priority: the first entry is the primary,
	// the rest are fallbacks.
	hf := huggingface.NewProvider(cfg.Providers.HuggingFaceKey, cfg.Providers.HuggingFaceURL, cfg.Providers.HuggingFaceChat)
	rep := replicate.NewProvider(cfg.Providers.ReplicateToken, cfg.Providers.ReplicateURL)
	gem := gemini.NewProvider(cfg.Providers.GeminiKey, cfg.Providers.GeminiModel)

	imageProviders := []provider.ImageProvider{hf, rep}
	videoProviders := []provider.VideoProvider{rep}
	// The local enhancer never fails, so prompt enhancement always succeeds.
	textProviders := []provider.TextProvider{gem, hf, local.NewEnhancer()}
	editProviders := []provider.ImageEditProvider{hf}

	// Services
	creditService := service.NewCreditService(uowFactory)
	generationService := service.NewGenerationService(
		uowFactory, creditService, artifacts, bus, sysLogger,
		imageProviders, videoProviders, textProviders,
	)
	toolsService := service.NewToolsService(creditService, artifacts, sysLogger, editProviders)
	authService := service.NewAuthService(uowFactory, emailService)
	oauthService := service.NewOAuthService(uowFactory, cfg.OAuth)
	billingService := service.NewBillingService(uowFactory, creditService, emailService, bus, sysLogger, cfg.Stripe)
	adminService := service.NewAdminService(uowFactory, creditService, sysLogger)

	return &Container{
		AuthController:       controller.NewAuthController(authService),
		OAuthController:      controller.NewOAuthController(oauthService),
		GenerationController: controller.NewGenerationController(generationService),
		ToolsController:      controller.NewToolsController(toolsService),
		CreditController:     controller.NewCreditController(creditService),
		BillingController:    controller.NewBillingController(billingService),
		AdminController:      controller.NewAdminController(adminService),

		WsHandler:    handler.NewWsHandler(wsHub, wsLogger),
		WebSocketHub: wsHub,
		EventRelay:   relay,
		EventBus:     bus,

		Redis:  rdb,
		Logger: sysLogger,
	}
}
