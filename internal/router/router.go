package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	commonmw "github.com/OrangesCloud/wealist-advanced-go-pkg/middleware"

	"workspace-service/internal/config"
	"workspace-service/internal/handler"
	"workspace-service/internal/middleware"
	"workspace-service/internal/realtime"
	"workspace-service/internal/repository"
	"workspace-service/internal/service"
)

// Config holds router configuration
type Config struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Logger *zap.Logger
	Cfg    *config.Config
}

// Services groups the wired service layer so main can hand the dispatch
// engine to the cron scheduler.
type Services struct {
	Leave        *service.LeaveService
	Dispatch     *service.DispatchService
	Notification *service.NotificationService
	Action       *service.ActionService
}

// Setup sets up the router with all routes
func Setup(cfg Config) (*gin.Engine, *Services) {
	r := gin.New()

	// Middleware (using common package)
	r.Use(commonmw.Recovery(cfg.Logger))
	r.Use(commonmw.Logger(cfg.Logger))
	r.Use(commonmw.DefaultCORS())
	r.Use(commonmw.Metrics())

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "workspace-service"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if cfg.DB == nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "workspace-service"})
			return
		}
		sqlDB, err := cfg.DB.DB()
		if err != nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "workspace-service"})
			return
		}
		if err := sqlDB.Ping(); err != nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "workspace-service"})
			return
		}
		c.JSON(200, gin.H{"status": "ready", "service": "workspace-service"})
	})

	// Initialize repositories
	memberRepo := repository.NewWorkspaceMemberRepository(cfg.DB)
	workspaceRepo := repository.NewWorkspaceRepository(cfg.DB)
	userRepo := repository.NewUserRepository(cfg.DB)
	surveyRepo := repository.NewSurveyRepository(cfg.DB)
	notifRepo := repository.NewNotificationRepository(cfg.DB)

	// Initialize services
	channel := realtime.NewRedisChannel(cfg.Redis, cfg.Logger)
	buffer := service.NewGroupBuffer(
		time.Duration(cfg.Cfg.App.GroupWindowSeconds)*time.Second,
		cfg.Cfg.App.MaxGroupSize,
	)
	dispatchService := service.NewDispatchService(notifRepo, memberRepo, userRepo, buffer, channel, cfg.Redis, cfg.Logger)
	leaveService := service.NewLeaveService(memberRepo, workspaceRepo, surveyRepo, notifRepo, dispatchService, cfg.Logger)
	notificationService := service.NewNotificationService(notifRepo, cfg.Redis, cfg.Cfg, cfg.Logger)
	actionService := service.NewActionService(notifRepo, memberRepo, dispatchService, cfg.Logger)

	// Initialize handlers
	workspaceHandler := handler.NewWorkspaceHandler(leaveService)
	notificationHandler := handler.NewNotificationHandler(notificationService, dispatchService, actionService)
	wsHandler := handler.NewWSHandler(cfg.Redis, cfg.Cfg.Auth.SecretKey, cfg.Logger)

	authMiddleware := middleware.Auth(cfg.Cfg.Auth.SecretKey)

	api := r.Group("/api")

	// ============================================================
	// Workspace membership routes
	// ============================================================
	workspaces := api.Group("/workspaces")
	workspaces.Use(authMiddleware)
	{
		workspaces.POST("/:workspaceId/leave", workspaceHandler.Leave)
		workspaces.GET("/:workspaceId/leave/preview", workspaceHandler.LeavePreview)
		workspaces.POST("/:workspaceId/transfer-ownership", workspaceHandler.TransferOwnership)
		workspaces.DELETE("/:workspaceId/members/:userId", workspaceHandler.RemoveMember)
	}

	// ============================================================
	// Notification routes
	// ============================================================
	notifications := api.Group("/notifications")
	notifications.Use(authMiddleware)
	{
		notifications.POST("/dispatch", notificationHandler.Dispatch)
		notifications.GET("", notificationHandler.List)
		notifications.GET("/unread-count", notificationHandler.UnreadCount)
		notifications.PUT("/read-all", notificationHandler.MarkAllAsRead)
		notifications.PUT("/:notificationId/read", notificationHandler.MarkAsRead)
		notifications.PUT("/:notificationId/archive", notificationHandler.Archive)
		notifications.POST("/:notificationId/action", notificationHandler.HandleAction)
	}

	// Realtime stream (token via query parameter)
	r.GET("/ws/notifications", wsHandler.HandleNotificationStream)

	return r, &Services{
		Leave:        leaveService,
		Dispatch:     dispatchService,
		Notification: notificationService,
		Action:       actionService,
	}
}
