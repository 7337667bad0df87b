// @title Explore With Me API
// @version 1.0
// @description Event publishing, participation requests, comments and compilations.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sharath018/ewm-backend/config"
	"github.com/sharath018/ewm-backend/database"
	"github.com/sharath018/ewm-backend/internal/auditlog"
	"github.com/sharath018/ewm-backend/internal/category"
	"github.com/sharath018/ewm-backend/internal/comment"
	"github.com/sharath018/ewm-backend/internal/compilation"
	"github.com/sharath018/ewm-backend/internal/event"
	"github.com/sharath018/ewm-backend/internal/request"
	"github.com/sharath018/ewm-backend/internal/user"
	"github.com/sharath018/ewm-backend/routes"
	"github.com/sharath018/ewm-backend/telemetry"
	"github.com/sharath018/ewm-backend/utils"
)

const (
	shutdownTimeout = 15 * time.Second
	version         = "1.0.0"
)

func main() {
	cfg := config.Load()

	log, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		panic("❌ logger init failed: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	tracing, err := telemetry.NewProvider(telemetry.Config{
		ServiceName:    cfg.AppName,
		ServiceVersion: version,
		Exporter:       cfg.TraceExporter,
		SampleRate:     cfg.TraceSampleRate,
	})
	if err != nil {
		log.Fatal("❌ tracing init failed", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tracing.Shutdown(ctx)
	}()

	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatal("❌ database connection failed", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	log.Info("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&user.User{},
		&category.Category{},
		&event.Event{},
		&request.Request{},
		&compilation.Compilation{},
		&comment.Comment{},
		&auditlog.AuditLog{},
	); err != nil {
		log.Fatal("❌ DB AutoMigrate failed", zap.Error(err))
	}

	// Init Redis
	rdb, err := utils.InitRedis(cfg)
	if err != nil {
		log.Warn("⚠️ Redis unavailable, continuing without cache", zap.Error(err))
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	// Init Kafka
	hits := utils.NewHitsWriter(cfg, log)
	if hits != nil {
		defer func() { _ = hits.Close() }()
		log.Info("hits are published to kafka", zap.String("topic", cfg.KafkaHitsTopic))
	}

	router := gin.New()
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:   []string{"Content-Length", "Content-Type", "X-Request-ID"},
		MaxAge:          12 * time.Hour,
	}))

	routes.Setup(router, routes.Deps{
		Config:     cfg,
		DB:         db,
		Redis:      rdb,
		HitsWriter: hits,
		Tracer:     tracing.TracerProvider(),
		Log:        log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("🚀 main service listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("❌ server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
