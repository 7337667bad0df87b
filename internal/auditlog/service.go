package auditlog

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type Service interface {
	LogAction(ctx context.Context, actorID *uint, eventID *uint, action string, details map[string]interface{}, status string)
	GetAuditLogs(ctx context.Context, filter AuditLogFilter) (*PaginatedAuditLogs, error)
}

type service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) Service {
	return &service{repo: repo, log: log}
}

type ipKey struct{}

// WithIP stores the caller address so LogAction can record it.
func WithIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ipKey{}, ip)
}

func ipFrom(ctx context.Context) string {
	ip, _ := ctx.Value(ipKey{}).(string)
	return ip
}

// LogAction records a moderation action. A failed write is logged, never returned:
// the moderation itself has already been committed.
func (s *service) LogAction(ctx context.Context, actorID *uint, eventID *uint, action string, details map[string]interface{}, status string) {
	if details == nil {
		details = make(map[string]interface{})
	}

	detailsJSON, err := json.Marshal(details)
	if err != nil {
		detailsJSON = []byte("{}")
	}

	entry := &AuditLog{
		ActorID:   actorID,
		EventID:   eventID,
		Action:    action,
		Details:   datatypes.JSON(detailsJSON),
		IPAddress: ipFrom(ctx),
		Status:    status,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		s.log.Warn("audit log write failed",
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

// GetAuditLogs retrieves paginated audit logs with filters
func (s *service) GetAuditLogs(ctx context.Context, filter AuditLogFilter) (*PaginatedAuditLogs, error) {
	logs, total, err := s.repo.GetByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []AuditLog{}
	}
	return &PaginatedAuditLogs{Data: logs, Total: total}, nil
}

// Nop discards every entry; used where no audit trail is wired.
type Nop struct{}

func (Nop) LogAction(context.Context, *uint, *uint, string, map[string]interface{}, string) {}

func (Nop) GetAuditLogs(context.Context, AuditLogFilter) (*PaginatedAuditLogs, error) {
	return &PaginatedAuditLogs{Data: []AuditLog{}}, nil
}
