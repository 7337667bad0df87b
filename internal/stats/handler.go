package stats

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sharath018/ewm-backend/internal/apierror"
	"github.com/sharath018/ewm-backend/utils"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// 🎯 Record Hit - POST /hit
// @Summary Record an endpoint hit
// @Tags Stats
// @Accept json
// @Produce json
// @Param hit body EndpointHitDto true "Hit"
// @Success 201 {object} EndpointHitDto
// @Failure 400 {object} apierror.Response
// @Router /hit [post]
func (h *Handler) RecordHit(c *gin.Context) {
	var dto EndpointHitDto
	if err := c.ShouldBindJSON(&dto); err != nil {
		apierror.RespondBinding(c, err)
		return
	}

	saved, err := h.Service.RecordHit(c.Request.Context(), dto)
	if err != nil {
		apierror.Respond(c, h.Service.Log, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// ===========================
// 📊 Get Stats - GET /stats?start=&end=&uris=&unique=
// @Summary Hit counts per app and uri
// @Tags Stats
// @Produce json
// @Param start query string true "yyyy-MM-dd HH:mm:ss"
// @Param end query string true "yyyy-MM-dd HH:mm:ss"
// @Param uris query []string false "Uris to include"
// @Param unique query bool false "Count distinct ip only"
// @Success 200 {array} ViewStats
// @Failure 400 {object} apierror.Response
// @Router /stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		apierror.Respond(c, h.Service.Log, err)
		return
	}

	out, err := h.Service.GetStats(c.Request.Context(), q)
	if err != nil {
		apierror.Respond(c, h.Service.Log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// ===========================
// 📤 Export Stats - GET /stats/export?format=csv|xlsx|pdf
func (h *Handler) ExportStats(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		apierror.Respond(c, h.Service.Log, err)
		return
	}

	data, filename, contentType, err := h.Service.Export(c.Request.Context(), q, c.DefaultQuery("format", FormatCSV))
	if err != nil {
		apierror.Respond(c, h.Service.Log, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

func parseQuery(c *gin.Context) (StatsQuery, error) {
	var q StatsQuery

	start, err := utils.ParseTimeQuery(c, "start")
	if err != nil {
		return q, err
	}
	end, err := utils.ParseTimeQuery(c, "end")
	if err != nil {
		return q, err
	}
	if start == nil || end == nil {
		return q, apierror.Validation("Parameters start and end are required")
	}
	q.Start, q.End = *start, *end
	q.Uris = utils.SplitQuery(c.QueryArray("uris"))

	if raw := c.Query("unique"); raw != "" {
		unique, err := strconv.ParseBool(raw)
		if err != nil {
			return q, apierror.Validation("Parameter unique must be true or false, got %q", raw)
		}
		q.Unique = unique
	}
	return q, nil
}
