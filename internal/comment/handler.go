package comment

import (
	"net/http"

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
// 🎯 Create Comment - POST /users/:userId/events/:eventId/comments
// @Summary Comment on a published event
// @Tags Private: Comments
// @Accept json
// @Produce json
// @Param userId path int true "Author id"
// @Param eventId path int true "Event id"
// @Param body body CommentRequest true "Comment text"
// @Success 201 {object} CommentDto
// @Failure 409 {object} apierror.Response
// @Router /users/{userId}/events/{eventId}/comments [post]
func (h *Handler) CreateComment(c *gin.Context) {
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

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.RespondBinding(c, err)
		return
	}

	dto, err := h.Service.Create(c.Request.Context(), userID, eventID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto)
}

// ===========================
// 🛠 Update Comment - PATCH /users/:userId/comments/:commentId
func (h *Handler) UpdateComment(c *gin.Context) {
	userID, err := utils.ParseID(c, "userId")
	if err != nil {
		h.fail(c, err)
		return
	}
	commentID, err := utils.ParseID(c, "commentId")
	if err != nil {
		h.fail(c, err)
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.RespondBinding(c, err)
		return
	}

	dto, err := h.Service.Update(c.Request.Context(), userID, commentID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// ===========================
// ❌ Delete own Comment - DELETE /users/:userId/comments/:commentId
func (h *Handler) DeleteUserComment(c *gin.Context) {
	userID, err := utils.ParseID(c, "userId")
	if err != nil {
		h.fail(c, err)
		return
	}
	commentID, err := utils.ParseID(c, "commentId")
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.Service.DeleteByUser(c.Request.Context(), userID, commentID); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ===========================
// 🛡️ Delete any Comment - DELETE /admin/comments/:commentId
func (h *Handler) DeleteAdminComment(c *gin.Context) {
	commentID, err := utils.ParseID(c, "commentId")
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.Service.DeleteByAdmin(c.Request.Context(), commentID); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /users/:userId/comments
func (h *Handler) ListUserComments(c *gin.Context) {
	userID, err := utils.ParseID(c, "userId")
	if err != nil {
		h.fail(c, err)
		return
	}

	comments, err := h.Service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// GET /users/:userId/comments/:commentId
func (h *Handler) GetUserComment(c *gin.Context) {
	userID, err := utils.ParseID(c, "userId")
	if err != nil {
		h.fail(c, err)
		return
	}
	commentID, err := utils.ParseID(c, "commentId")
	if err != nil {
		h.fail(c, err)
		return
	}

	dto, err := h.Service.GetUserComment(c.Request.Context(), userID, commentID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// GET /events/:id/comments
func (h *Handler) ListEventComments(c *gin.Context) {
	eventID, err := utils.ParseID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	page, err := utils.ParsePage(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	comments, err := h.Service.ListByEvent(c.Request.Context(), eventID, page)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// ===========================
// 🔍 Search Comments - GET /comments/search?text=
// @Summary Case-insensitive search over comment text
// @Tags Public: Comments
// @Produce json
// @Param text query string false "Substring to look for"
// @Param from query int false "Offset"
// @Param size query int false "Page size"
// @Success 200 {array} CommentDto
// @Router /comments/search [get]
func (h *Handler) SearchComments(c *gin.Context) {
	page, err := utils.ParsePage(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	comments, err := h.Service.Search(c.Request.Context(), c.Query("text"), page)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}
