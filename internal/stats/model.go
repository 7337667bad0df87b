package stats

import (
	"time"

	"github.com/sharath018/ewm-backend/utils"
)

// Export formats
const (
	FormatCSV   = "csv"
	FormatExcel = "xlsx"
	FormatPDF   = "pdf"
)

// ============================
// 🔷 GORM Hit Model
type EndpointHit struct {
	ID        uint      `gorm:"primaryKey"`
	App       string    `gorm:"type:varchar(255);not null;index:idx_hits_app_uri"`
	URI       string    `gorm:"column:uri;type:varchar(512);not null;index:idx_hits_app_uri"`
	IP        string    `gorm:"column:ip;type:varchar(45);not null"`
	Timestamp time.Time `gorm:"column:timestamp;not null;index"`
}

func (EndpointHit) TableName() string {
	return "hits"
}

// ============================
// 🟡 Hit transfer object, shared by HTTP and Kafka ingestion
type EndpointHitDto struct {
	ID        uint            `json:"id,omitempty"`
	App       string          `json:"app" binding:"required,max=255"`
	URI       string          `json:"uri" binding:"required,max=512"`
	IP        string          `json:"ip" binding:"required,max=45"`
	Timestamp *utils.DateTime `json:"timestamp" binding:"required"`
}

type ViewStats struct {
	App  string `json:"app"`
	URI  string `json:"uri"`
	Hits int64  `json:"hits"`
}

// StatsQuery selects hits in [Start, End], optionally limited to Uris.
type StatsQuery struct {
	Start  time.Time
	End    time.Time
	Uris   []string
	Unique bool
}
