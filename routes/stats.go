package routes

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sharath018/ewm-backend/internal/stats"
)

// SetupStats mounts the stats-service API and returns the service so the
// caller can feed it from the hits consumer.
func SetupStats(r *gin.Engine, app string, db *gorm.DB, tp trace.TracerProvider, log *zap.Logger) *stats.Service {
	Common(r, app, db, tp, log)

	svc := stats.NewService(stats.NewRepository(db), stats.NewExporter(), log)
	h := stats.NewHandler(svc)

	r.POST("/hit", h.RecordHit)
	r.GET("/stats", h.GetStats)
	r.GET("/stats/export", h.ExportStats)

	return svc
}
