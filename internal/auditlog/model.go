package auditlog

import (
	"time"

	"gorm.io/datatypes"
)

// Moderation actions recorded in the audit trail
const (
	ActionEventPublished     = "EVENT_PUBLISHED"
	ActionEventRejected      = "EVENT_REJECTED"
	ActionEventCanceled      = "EVENT_CANCELED"
	ActionEventResubmitted   = "EVENT_RESUBMITTED"
	ActionRequestsModerated  = "REQUESTS_MODERATED"
	ActionCommentAdminDelete = "COMMENT_DELETED_BY_ADMIN"

	StatusSuccess = "success"
	StatusFailure = "failure"
)

// AuditLog represents the audit_logs table
type AuditLog struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorID   *uint          `gorm:"index" json:"actorId"` // nil for admin actions
	EventID   *uint          `gorm:"index" json:"eventId"`
	Action    string         `gorm:"size:100;not null;index" json:"action"`
	Details   datatypes.JSON `gorm:"type:jsonb" json:"details"`
	IPAddress string         `gorm:"size:45" json:"ip"`
	Status    string         `gorm:"size:20;not null;index" json:"status"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"createdAt"`
}

// TableName overrides table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// AuditLogFilter represents filters for querying audit logs
type AuditLogFilter struct {
	ActorID  *uint
	EventID  *uint
	Action   string
	Status   string
	FromDate *time.Time
	ToDate   *time.Time
	Offset   int
	Limit    int
}

// PaginatedAuditLogs represents paginated audit log response
type PaginatedAuditLogs struct {
	Data  []AuditLog `json:"data"`
	Total int64      `json:"total"`
}
