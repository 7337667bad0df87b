package user

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

// ===========================
// 🎯 Create User - POST /admin/users
func (h *Handler) CreateUser(c *gin.Context) {
	var req NewUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.RespondBinding(c, err)
		return
	}

	dto, err := h.Service.Create(c.Request.Context(), req)
	if err != nil {
		apierror.Respond(c, h.Service.Log, err)
		return
	}

	c.JSON(http.StatusCreated, dto)
}

// ===========================
// 📄 List Users - GET /admin/users?ids=&from=&size=
func (h *Handler) ListUsers(c *gin.Context) {
	ids, err := utils.ParseIDs(c, "ids")
	if err != nil {
		apierror.Respond(c, h.Service.Log, err)
		return
	}
	page, err := utils.ParsePage(c)
	if err != nil {
		apierror.Respond(c, h.Service.Log, err)
		return
	}

	users, err := h.Service.List(c.Request.Context(), ids, page)
	if err != nil {
		apierror.Respond(c, h.Service.Log, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// ===========================
// ❌ Delete User - DELETE /admin/users/:userId
func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := utils.ParseID(c, "userId")
	if err != nil {
		apierror.Respond(c, h.Service.Log, err)
		return
	}

	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		apierror.Respond(c, h.Service.Log, err)
		return
	}

	c.Status(http.StatusNoContent)
}
