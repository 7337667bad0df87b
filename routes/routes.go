package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sharath018/ewm-backend/config"
	_ "github.com/sharath018/ewm-backend/docs"
	"github.com/sharath018/ewm-backend/internal/auditlog"
	"github.com/sharath018/ewm-backend/internal/category"
	"github.com/sharath018/ewm-backend/internal/comment"
	"github.com/sharath018/ewm-backend/internal/compilation"
	"github.com/sharath018/ewm-backend/internal/event"
	"github.com/sharath018/ewm-backend/internal/request"
	"github.com/sharath018/ewm-backend/internal/statsclient"
	"github.com/sharath018/ewm-backend/internal/user"
	"github.com/sharath018/ewm-backend/middleware"
)

// Deps are the shared resources the main service routes are built from.
// Redis and HitsWriter are optional.
type Deps struct {
	Config     *config.Config
	DB         *gorm.DB
	Redis      *redis.Client
	HitsWriter *kafka.Writer
	Tracer     trace.TracerProvider
	Log        *zap.Logger
}

// Common mounts the ops endpoints and the middleware chain shared by both services.
func Common(r *gin.Engine, service string, db *gorm.DB, tp trace.TracerProvider, log *zap.Logger) {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	r.Use(middleware.RequestID())
	r.Use(middleware.Tracing(service, tp)...)
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Metrics(service))

	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DOWN", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
	r.GET("/metrics", middleware.MetricsHandler())
}

// Setup wires every main-service module and mounts the public, private and
// admin APIs.
func Setup(r *gin.Engine, d Deps) {
	cfg := d.Config
	db := d.DB
	log := d.Log

	Common(r, cfg.AppName, db, d.Tracer, log)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/")
	api.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, d.Redis, log))
	api.Use(middleware.AuditMiddleware())

	// ========== Stats boundary ==========
	statsHTTP := statsclient.NewClient(cfg.StatsServerURL, cfg.StatsTimeout)
	var publisher statsclient.HitPublisher = statsHTTP
	if d.HitsWriter != nil {
		publisher = statsclient.NewKafkaPublisher(d.HitsWriter)
	}
	var viewsCache statsclient.ViewsCache
	if d.Redis != nil {
		viewsCache = statsclient.NewRedisViewsCache(d.Redis, cfg.ViewsCacheTTL)
	}
	statsGateway := statsclient.NewGateway(cfg.AppName, publisher, statsHTTP, viewsCache, log)

	// ========== Modules ==========
	auditSvc := auditlog.NewService(auditlog.NewRepository(db), log)
	auditHandler := auditlog.NewHandler(auditSvc, log)

	userSvc := user.NewService(user.NewRepository(db), log)
	userHandler := user.NewHandler(userSvc)

	categorySvc := category.NewService(category.NewRepository(db), log)
	categoryHandler := category.NewHandler(categorySvc)

	eventSvc := event.NewService(event.NewRepository(db), categorySvc, userSvc, statsGateway, auditSvc, log)
	eventHandler := event.NewHandler(eventSvc)

	requestSvc := request.NewService(request.NewRepository(db), eventSvc, userSvc, auditSvc, log)
	requestHandler := request.NewHandler(requestSvc)

	commentSvc := comment.NewService(comment.NewRepository(db), eventSvc, userSvc, auditSvc, log)
	commentHandler := comment.NewHandler(commentSvc)

	compilationSvc := compilation.NewService(compilation.NewRepository(db), eventSvc, log)
	compilationHandler := compilation.NewHandler(compilationSvc)

	// ========== Public ==========
	api.GET("/events", eventHandler.SearchPublicEvents)
	api.GET("/events/:id", eventHandler.GetPublicEvent)
	api.GET("/events/:id/comments", commentHandler.ListEventComments)
	api.GET("/categories", categoryHandler.ListCategories)
	api.GET("/categories/:catId", categoryHandler.GetCategory)
	api.GET("/compilations", compilationHandler.ListCompilations)
	api.GET("/compilations/:compId", compilationHandler.GetCompilation)
	api.GET("/comments/search", commentHandler.SearchComments)

	// ========== Private ==========
	private := api.Group("/users/:userId")
	{
		private.POST("/events", eventHandler.CreateEvent)
		private.GET("/events", eventHandler.ListUserEvents)
		private.GET("/events/:eventId", eventHandler.GetUserEvent)
		private.PATCH("/events/:eventId", eventHandler.UpdateUserEvent)

		private.GET("/events/:eventId/requests", requestHandler.ListEventRequests)
		private.PATCH("/events/:eventId/requests", requestHandler.UpdateEventRequests)

		private.GET("/requests", requestHandler.ListUserRequests)
		private.POST("/requests", requestHandler.CreateRequest)
		private.PATCH("/requests/:requestId/cancel", requestHandler.CancelRequest)

		private.POST("/events/:eventId/comments", commentHandler.CreateComment)
		private.GET("/comments", commentHandler.ListUserComments)
		private.GET("/comments/:commentId", commentHandler.GetUserComment)
		private.PATCH("/comments/:commentId", commentHandler.UpdateComment)
		private.DELETE("/comments/:commentId", commentHandler.DeleteUserComment)
	}

	// ========== Admin ==========
	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth(cfg.JWTAdminSecret))
	{
		admin.POST("/users", userHandler.CreateUser)
		admin.GET("/users", userHandler.ListUsers)
		admin.DELETE("/users/:userId", userHandler.DeleteUser)

		admin.POST("/categories", categoryHandler.CreateCategory)
		admin.PATCH("/categories/:catId", categoryHandler.UpdateCategory)
		admin.DELETE("/categories/:catId", categoryHandler.DeleteCategory)

		admin.GET("/events", eventHandler.SearchAdminEvents)
		admin.PATCH("/events/:eventId", eventHandler.UpdateAdminEvent)

		admin.POST("/compilations", compilationHandler.CreateCompilation)
		admin.PATCH("/compilations/:compId", compilationHandler.UpdateCompilation)
		admin.DELETE("/compilations/:compId", compilationHandler.DeleteCompilation)

		admin.DELETE("/comments/:commentId", commentHandler.DeleteAdminComment)

		admin.GET("/audit-logs", auditHandler.GetAuditLogs)
	}

	if cfg.JWTAdminSecret == "" {
		log.Warn("JWT_ADMIN_SECRET is empty, admin API is unauthenticated")
	}
}
