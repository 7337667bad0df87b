package event

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sharath018/ewm-backend/internal/apierror"
	"github.com/sharath018/ewm-backend/middleware"
	"github.com/sharath018/ewm-backend/utils"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

func (h *Handler) fail(c *gin.Context, err error) {
	apierror.Respond(c, h.Service.Log, err)
}

// ===========================
// 🎯 Create Event - POST /users/:userId/events
// @Summary Submit a new event for moderation
// @Tags Private: Events
// @Accept json
// @Produce json
// @Param userId path int true "Initiator id"
// @Param event body NewEventRequest true "Event draft"
// @Success 201 {object} EventFullDto
// @Failure 400 {object} apierror.Response
// @Failure 404 {object} apierror.Response
// @Router /users/{userId}/events [post]
func (h *Handler) CreateEvent(c *gin.Context) {
	userID, err := utils.ParseID(c, "userId")
	if err != nil {
		h.fail(c, err)
		return
	}

	var req NewEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.RespondBinding(c, err)
		return
	}

	dto, err := h.Service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto)
}

// ===========================
// 📄 List own events - GET /users/:userId/events
func (h *Handler) ListUserEvents(c *gin.Context) {
	userID, err := utils.ParseID(c, "userId")
	if err != nil {
		h.fail(c, err)
		return
	}
	page, err := utils.ParsePage(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	events, err := h.Service.ListByUser(c.Request.Context(), userID, page)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// ===========================
// 🔍 Get own event - GET /users/:userId/events/:eventId
func (h *Handler) GetUserEvent(c *gin.Context) {
	userID, err := utils.ParseID(c, "userId")
	if err != nil {
		h.fail(c, err)
		return
	}
	eventID, err := utils.ParseID(c, "eventId")
	if err != nil {
		h.fail(c, err)
		return
	}

	dto, err := h.Service.GetByUser(c.Request.Context(), userID, eventID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// ===========================
// 🛠 Update own event - PATCH /users/:userId/events/:eventId
// @Summary Edit a pending or canceled event
// @Tags Private: Events
// @Accept json
// @Produce json
// @Param userId path int true "Initiator id"
// @Param eventId path int true "Event id"
// @Param patch body UpdateEventUserRequest true "Fields and optional stateAction"
// @Success 200 {object} EventFullDto
// @Failure 409 {object} apierror.Response
// @Router /users/{userId}/events/{eventId} [patch]
func (h *Handler) UpdateUserEvent(c *gin.Context) {
	userID, err := utils.ParseID(c, "userId")
	if err != nil {
		h.fail(c, err)
		return
	}
	eventID, err := utils.ParseID(c, "eventId")
	if err != nil {
		h.fail(c, err)
		return
	}

	var req UpdateEventUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.RespondBinding(c, err)
		return
	}

	dto, err := h.Service.UpdateByUser(c.Request.Context(), userID, eventID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// ===========================
// 🛡️ Admin search - GET /admin/events
func (h *Handler) SearchAdminEvents(c *gin.Context) {
	var f AdminFilter
	var err error

	if f.Users, err = utils.ParseIDs(c, "users"); err != nil {
		h.fail(c, err)
		return
	}
	if f.Categories, err = utils.ParseIDs(c, "categories"); err != nil {
		h.fail(c, err)
		return
	}
	for _, st := range utils.SplitQuery(c.QueryArray("states")) {
		f.States = append(f.States, State(st))
	}
	if f.RangeStart, err = utils.ParseTimeQuery(c, "rangeStart"); err != nil {
		h.fail(c, err)
		return
	}
	if f.RangeEnd, err = utils.ParseTimeQuery(c, "rangeEnd"); err != nil {
		h.fail(c, err)
		return
	}

	page, err := utils.ParsePage(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	f.Offset, f.Limit = page.Offset(), page.Limit()

	events, err := h.Service.SearchAdmin(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// ===========================
// 🛡️ Admin moderation - PATCH /admin/events/:eventId
// @Summary Edit, publish or reject an event
// @Tags Admin: Events
// @Accept json
// @Produce json
// @Param eventId path int true "Event id"
// @Param patch body UpdateEventAdminRequest true "Fields and optional stateAction"
// @Success 200 {object} EventFullDto
// @Failure 409 {object} apierror.Response
// @Router /admin/events/{eventId} [patch]
func (h *Handler) UpdateAdminEvent(c *gin.Context) {
	eventID, err := utils.ParseID(c, "eventId")
	if err != nil {
		h.fail(c, err)
		return
	}

	var req UpdateEventAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.RespondBinding(c, err)
		return
	}

	dto, err := h.Service.UpdateByAdmin(c.Request.Context(), eventID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// ===========================
// 🌐 Public search - GET /events
// @Summary Search published events
// @Tags Public: Events
// @Produce json
// @Param text query string false "Substring of annotation or description"
// @Param categories query []int false "Category ids"
// @Param paid query bool false "Paid filter"
// @Param rangeStart query string false "yyyy-MM-dd HH:mm:ss"
// @Param rangeEnd query string false "yyyy-MM-dd HH:mm:ss"
// @Param onlyAvailable query bool false "Only events with free slots"
// @Param sort query string false "EVENT_DATE or VIEWS"
// @Param from query int false "Offset"
// @Param size query int false "Page size"
// @Success 200 {array} EventShortDto
// @Router /events [get]
func (h *Handler) SearchPublicEvents(c *gin.Context) {
	f := PublicFilter{
		Text: c.Query("text"),
		Sort: c.Query("sort"),
	}
	var err error

	if f.Categories, err = utils.ParseIDs(c, "categories"); err != nil {
		h.fail(c, err)
		return
	}
	if f.Paid, err = utils.ParseBoolQuery(c, "paid"); err != nil {
		h.fail(c, err)
		return
	}
	onlyAvailable, err := utils.ParseBoolQuery(c, "onlyAvailable")
	if err != nil {
		h.fail(c, err)
		return
	}
	f.OnlyAvailable = onlyAvailable != nil && *onlyAvailable
	if f.RangeStart, err = utils.ParseTimeQuery(c, "rangeStart"); err != nil {
		h.fail(c, err)
		return
	}
	if f.RangeEnd, err = utils.ParseTimeQuery(c, "rangeEnd"); err != nil {
		h.fail(c, err)
		return
	}

	page, err := utils.ParsePage(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	f.Offset, f.Limit = page.Offset(), page.Limit()

	events, err := h.Service.SearchPublic(c.Request.Context(), f, middleware.GetIPFromContext(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// ===========================
// 🌐 Public event - GET /events/:id
func (h *Handler) GetPublicEvent(c *gin.Context) {
	eventID, err := utils.ParseID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	dto, err := h.Service.GetPublished(c.Request.Context(), eventID, middleware.GetIPFromContext(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}
