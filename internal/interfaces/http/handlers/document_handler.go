package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"contract-hub.backend/internal/domain/entities"
	domainerrors "contract-hub.backend/internal/domain/errors"
	"contract-hub.backend/internal/interfaces/http/response"
	"contract-hub.backend/internal/usecases"
	"contract-hub.backend/pkg/utils"
)

// DocumentService renders contracts into downloadable artifacts
type DocumentService interface {
	RenderPDF(ctx context.Context, actor entities.CurrentUser, id uuid.UUID) ([]byte, string, error)
	BulkDownload(ctx context.Context, actor entities.CurrentUser, ids []uuid.UUID) ([]byte, error)
	ExportHistory(ctx context.Context, actor entities.CurrentUser, id uuid.UUID) ([]byte, string, error)
}

var _ DocumentService = (*usecases.DocumentUsecase)(nil)

type DocumentHandler struct {
	usecase DocumentService
}

func NewDocumentHandler(usecase DocumentService) *DocumentHandler {
	return &DocumentHandler{usecase: usecase}
}

// Download returns the contract as a PDF attachment
// GET /api/v1/contracts/:id/document
func (h *DocumentHandler) Download(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	data, filename, err := h.usecase.RenderPDF(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

type bulkDownloadRequest struct {
	ContractIDs []string `json:"contractIds" binding:"required"`
}

// BulkDownload returns selected contracts as a ZIP of HTML files
// POST /api/v1/contracts/bulk-download
func (h *DocumentHandler) BulkDownload(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	var req bulkDownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	ids := make([]uuid.UUID, 0, len(req.ContractIDs))
	for _, raw := range req.ContractIDs {
		id, ok := utils.ParseUUID(raw)
		if !ok {
			response.Error(c, domainerrors.Validation("invalid contract id: "+raw))
			return
		}
		ids = append(ids, id)
	}

	data, err := h.usecase.BulkDownload(c.Request.Context(), actor, ids)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="contracts.zip"`)
	c.Data(http.StatusOK, "application/zip", data)
}

// ExportHistory returns the activity trail as a PDF attachment
// GET /api/v1/contracts/:id/history/export
func (h *DocumentHandler) ExportHistory(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	data, filename, err := h.usecase.ExportHistory(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
