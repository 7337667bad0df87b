package auditlog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sharath018/ewm-backend/internal/apierror"
	"github.com/sharath018/ewm-backend/utils"
)

type Handler struct {
	service Service
	log     *zap.Logger
}

func NewHandler(service Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// GetAuditLogs handles GET /admin/audit-logs - moderation history with filters
// @Summary Get moderation audit logs
// @Tags Admin
// @Produce json
// @Param actorId query uint false "Filter by acting user"
// @Param eventId query uint false "Filter by event"
// @Param action query string false "Filter by action (partial match)"
// @Param status query string false "Filter by status"
// @Param rangeStart query string false "From (yyyy-MM-dd HH:mm:ss)"
// @Param rangeEnd query string false "To (yyyy-MM-dd HH:mm:ss)"
// @Param from query int false "Offset"
// @Param size query int false "Page size"
// @Success 200 {object} PaginatedAuditLogs
// @Router /admin/audit-logs [get]
func (h *Handler) GetAuditLogs(c *gin.Context) {
	filter := AuditLogFilter{
		Action: c.Query("action"),
		Status: c.Query("status"),
	}

	if raw := c.Query("actorId"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			uid := uint(id)
			filter.ActorID = &uid
		}
	}
	if raw := c.Query("eventId"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			eid := uint(id)
			filter.EventID = &eid
		}
	}

	if raw := c.Query("rangeStart"); raw != "" {
		t, err := utils.ParseDateTime(raw)
		if err != nil {
			apierror.Respond(c, h.log, apierror.Validation("Invalid rangeStart %q", raw))
			return
		}
		filter.FromDate = &t
	}
	if raw := c.Query("rangeEnd"); raw != "" {
		t, err := utils.ParseDateTime(raw)
		if err != nil {
			apierror.Respond(c, h.log, apierror.Validation("Invalid rangeEnd %q", raw))
			return
		}
		filter.ToDate = &t
	}

	page, err := utils.ParsePage(c)
	if err != nil {
		apierror.Respond(c, h.log, err)
		return
	}
	filter.Offset = page.Offset()
	filter.Limit = page.Limit()

	result, err := h.service.GetAuditLogs(c.Request.Context(), filter)
	if err != nil {
		apierror.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
