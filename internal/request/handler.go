package request

import (
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

func (h *Handler) fail(c *gin.Context, err error) {
	apierror.Respond(c, h.Service.Log, err)
}

// ===========================
// 🎯 Create Request - POST /users/:userId/requests?eventId=
// @Summary Request participation in a published event
// @Tags Private: Requests
// @Produce json
// @Param userId path int true "Requester id"
// @Param eventId query int true "Event id"
// @Success 201 {object} ParticipationRequestDto
// @Failure 409 {object} apierror.Response
// @Router /users/{userId}/requests [post]
func (h *Handler) CreateRequest(c *gin.Context) {
	userID, err := utils.ParseID(c, "userId")
	if err != nil {
		h.fail(c, err)
		return
	}
	raw := c.Query("eventId")
	eventID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || eventID == 0 {
		h.fail(c, apierror.Validation("Parameter eventId must be a positive number, got %q", raw))
		return
	}

	dto, err := h.Service.Create(c.Request.Context(), userID, uint(eventID))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto)
}

// ===========================
// 📄 Own requests - GET /users/:userId/requests
func (h *Handler) ListUserRequests(c *gin.Context) {
	userID, err := utils.ParseID(c, "userId")
	if err != nil {
		h.fail(c, err)
		return
	}

	reqs, err := h.Service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}

// ===========================
// ❌ Cancel Request - PATCH /users/:userId/requests/:requestId/cancel
func (h *Handler) CancelRequest(c *gin.Context) {
	userID, err := utils.ParseID(c, "userId")
	if err != nil {
		h.fail(c, err)
		return
	}
	requestID, err := utils.ParseID(c, "requestId")
	if err != nil {
		h.fail(c, err)
		return
	}

	dto, err := h.Service.Cancel(c.Request.Context(), userID, requestID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// ===========================
// 📄 Event requests - GET /users/:userId/events/:eventId/requests
func (h *Handler) ListEventRequests(c *gin.Context) {
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

	reqs, err := h.Service.ListByEvent(c.Request.Context(), userID, eventID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}

// ===========================
// 🛡️ Moderate Requests - PATCH /users/:userId/events/:eventId/requests
// @Summary Confirm or reject pending requests in bulk
// @Tags Private: Requests
// @Accept json
// @Produce json
// @Param userId path int true "Initiator id"
// @Param eventId path int true "Event id"
// @Param body body EventRequestStatusUpdateRequest true "Request ids and target status"
// @Success 200 {object} EventRequestStatusUpdateResult
// @Failure 409 {object} apierror.Response
// @Router /users/{userId}/events/{eventId}/requests [patch]
func (h *Handler) UpdateEventRequests(c *gin.Context) {
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

	var req EventRequestStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.RespondBinding(c, err)
		return
	}

	result, err := h.Service.UpdateStatuses(c.Request.Context(), userID, eventID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
