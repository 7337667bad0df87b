package category

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
// 🎯 Create Category - POST /admin/categories
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
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
// 🛠 Update Category - PATCH /admin/categories/:catId
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, err := utils.ParseID(c, "catId")
	if err != nil {
		apierror.Respond(c, h.Service.Log, err)
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.RespondBinding(c, err)
		return
	}

	dto, err := h.Service.Update(c.Request.Context(), id, req)
	if err != nil {
		apierror.Respond(c, h.Service.Log, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// ===========================
// ❌ Delete Category - DELETE /admin/categories/:catId
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, err := utils.ParseID(c, "catId")
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

// ===========================
// 📄 List Categories - GET /categories?from=&size=
func (h *Handler) ListCategories(c *gin.Context) {
	page, err := utils.ParsePage(c)
	if err != nil {
		apierror.Respond(c, h.Service.Log, err)
		return
	}

	categories, err := h.Service.List(c.Request.Context(), page)
	if err != nil {
		apierror.Respond(c, h.Service.Log, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// ===========================
// 🔍 Get Category - GET /categories/:catId
func (h *Handler) GetCategory(c *gin.Context) {
	id, err := utils.ParseID(c, "catId")
	if err != nil {
		apierror.Respond(c, h.Service.Log, err)
		return
	}

	dto, err := h.Service.Get(c.Request.Context(), id)
	if err != nil {
		apierror.Respond(c, h.Service.Log, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}
