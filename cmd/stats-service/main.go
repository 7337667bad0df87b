package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sharath018/ewm-backend/config"
	"github.com/sharath018/ewm-backend/database"
	"github.com/sharath018/ewm-backend/internal/stats"
	"github.com/sharath018/ewm-backend/routes"
	"github.com/sharath018/ewm-backend/telemetry"
	"github.com/sharath018/ewm-backend/utils"
)

const (
	shutdownTimeout = 15 * time.Second
	version         = "1.0.0"
)

func main() {
	cfg := config.Load().ForStats()

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

	if err := db.AutoMigrate(&stats.EndpointHit{}); err != nil {
		log.Fatal("❌ DB AutoMigrate failed", zap.Error(err))
	}

	router := gin.New()
	svc := routes.SetupStats(router, cfg.AppName, db, tracing.TracerProvider(), log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	if reader := utils.NewHitsReader(cfg); reader != nil {
		defer func() { _ = reader.Close() }()
		wg.Add(1)
		go func() {
			defer wg.Done()
			stats.ConsumeHits(ctx, reader, svc, log)
		}()
		log.Info("consuming hits from kafka", zap.String("topic", cfg.KafkaHitsTopic))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("🚀 stats service listening", zap.String("addr", srv.Addr))
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
	wg.Wait()
}
