package compilation

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
// 🎯 Create Compilation - POST /admin/compilations
func (h *Handler) CreateCompilation(c *gin.Context) {
	var req NewCompilationRequest
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
// 🛠 Update Compilation - PATCH /admin/compilations/:compId
func (h *Handler) UpdateCompilation(c *gin.Context) {
	id, err := utils.ParseID(c, "compId")
	if err != nil {
		apierror.Respond(c, h.Service.Log, err)
		return
	}

	var req UpdateCompilationRequest
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
// ❌ Delete Compilation - DELETE /admin/compilations/:compId
func (h *Handler) DeleteCompilation(c *gin.Context) {
	id, err := utils.ParseID(c, "compId")
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
// 📄 List Compilations - GET /compilations?pinned=&from=&size=
func (h *Handler) ListCompilations(c *gin.Context) {
	pinned, err := utils.ParseBoolQuery(c, "pinned")
	if err != nil {
		apierror.Respond(c, h.Service.Log, err)
		return
	}
	page, err := utils.ParsePage(c)
	if err != nil {
		apierror.Respond(c, h.Service.Log, err)
		return
	}

	comps, err := h.Service.List(c.Request.Context(), pinned, page)
	if err != nil {
		apierror.Respond(c, h.Service.Log, err)
		return
	}
	c.JSON(http.StatusOK, comps)
}

// ===========================
// 🔍 Get Compilation - GET /compilations/:compId
func (h *Handler) GetCompilation(c *gin.Context) {
	id, err := utils.ParseID(c, "compId")
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
