package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"contract-hub.backend/internal/interfaces/http/response"
	"contract-hub.backend/internal/usecases"
)

type TemplateHandler struct {
	usecase *usecases.TemplateUsecase
}

func NewTemplateHandler(usecase *usecases.TemplateUsecase) *TemplateHandler {
	return &TemplateHandler{usecase: usecase}
}

// List returns the template catalog
// GET /api/v1/templates
func (h *TemplateHandler) List(c *gin.Context) {
	response.Success(c, http.StatusOK, h.usecase.ListTemplates(c.Request.Context()))
}

// Get returns one template
// GET /api/v1/templates/:id
func (h *TemplateHandler) Get(c *gin.Context) {
	tmpl, err := h.usecase.GetTemplate(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, tmpl)
}

// ListTypes returns the supported contract types
// GET /api/v1/templates/types
func (h *TemplateHandler) ListTypes(c *gin.Context) {
	response.Success(c, http.StatusOK, h.usecase.ListTypes(c.Request.Context()))
}

// GetFormSchema returns the input form for a contract type
// GET /api/v1/templates/types/:typeId/schema
func (h *TemplateHandler) GetFormSchema(c *gin.Context) {
	schema, err := h.usecase.GetFormSchema(c.Request.Context(), c.Param("typeId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, schema)
}
