package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"contract-hub.backend/internal/domain/entities"
	domainerrors "contract-hub.backend/internal/domain/errors"
	"contract-hub.backend/internal/interfaces/http/middleware"
	"contract-hub.backend/internal/interfaces/http/response"
	"contract-hub.backend/internal/usecases"
	"contract-hub.backend/pkg/utils"
)

// ContractService is the usecase surface the handler depends on
type ContractService interface {
	Create(ctx context.Context, actor entities.CurrentUser, input entities.CreateContractInput) (*entities.Contract, error)
	List(ctx context.Context, actor entities.CurrentUser, query entities.ContractListQuery) ([]*entities.Contract, int64, error)
	Get(ctx context.Context, actor entities.CurrentUser, id uuid.UUID) (*entities.ContractDetail, error)
	Update(ctx context.Context, actor entities.CurrentUser, id uuid.UUID, input entities.UpdateContractInput) (*entities.Contract, error)
	Delete(ctx context.Context, actor entities.CurrentUser, id uuid.UUID) error
	Duplicate(ctx context.Context, actor entities.CurrentUser, id uuid.UUID) (*entities.Contract, error)
	Stats(ctx context.Context, actor entities.CurrentUser) (*entities.ContractStats, error)
	Recent(ctx context.Context, actor entities.CurrentUser, limit int) ([]*entities.Contract, error)
	Pending(ctx context.Context, actor entities.CurrentUser) ([]*entities.Contract, error)
	UpdateContent(ctx context.Context, actor entities.CurrentUser, id uuid.UUID, input entities.UpdateContentInput) (*entities.ContractVersion, error)
	GetVersions(ctx context.Context, actor entities.CurrentUser, id uuid.UUID) ([]*entities.ContractVersion, error)
	RequestTransition(ctx context.Context, actor entities.CurrentUser, id uuid.UUID, input entities.UpdateStatusInput) (*entities.Contract, error)
	GetTransitions(ctx context.Context, actor entities.CurrentUser, id uuid.UUID) ([]entities.ContractStatus, error)
	GetHistory(ctx context.Context, actor entities.CurrentUser, id uuid.UUID) ([]*entities.ActivityLog, error)
	ListParties(ctx context.Context, actor entities.CurrentUser, id uuid.UUID) ([]*entities.ContractParty, error)
	AddParty(ctx context.Context, actor entities.CurrentUser, id uuid.UUID, input entities.AddPartyInput) (*entities.ContractParty, error)
	RemoveParty(ctx context.Context, actor entities.CurrentUser, id, partyID uuid.UUID) error
}

// PublicViewService serves the guest view behind a signing token
type PublicViewService interface {
	PublicView(ctx context.Context, contractID uuid.UUID, token string) (*entities.PublicContractView, error)
}

var (
	_ ContractService   = (*usecases.ContractUsecase)(nil)
	_ PublicViewService = (*usecases.SignatureUsecase)(nil)
)

type ContractHandler struct {
	usecase    ContractService
	signatures PublicViewService
}

func NewContractHandler(usecase ContractService, signatures PublicViewService) *ContractHandler {
	return &ContractHandler{usecase: usecase, signatures: signatures}
}

// currentUser pulls the authenticated identity set by the auth middleware.
func currentUser(c *gin.Context) (entities.CurrentUser, bool) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
	}
	return actor, ok
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, ok := utils.ParseUUID(c.Param(name))
	if !ok {
		response.Error(c, domainerrors.Validation("invalid "+name))
	}
	return id, ok
}

func parseDateQuery(c *gin.Context, name string) null.Time {
	raw := c.Query(name)
	if raw == "" {
		return null.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return null.TimeFrom(t)
		}
	}
	return null.Time{}
}

// Create creates a contract in DRAFT
// POST /api/v1/contracts
func (h *ContractHandler) Create(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	var req entities.CreateContractInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	contract, err := h.usecase.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, contract)
}

// List lists the actor's contracts with filters and pagination
// GET /api/v1/contracts
func (h *ContractHandler) List(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	query := entities.ContractListQuery{
		Filter: entities.ContractFilter{
			Status:     entities.ContractStatus(c.Query("status")),
			Search:     c.Query("search"),
			TemplateID: c.Query("templateId"),
			FromDate:   parseDateQuery(c, "fromDate"),
			ToDate:     parseDateQuery(c, "toDate"),
		},
		Page:      page,
		PageSize:  pageSize,
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}

	items, total, err := h.usecase.List(c.Request.Context(), actor, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, http.StatusOK, items, query.Page, query.PageSize, total)
}

// Get returns a contract with content, parties and signatures
// GET /api/v1/contracts/:id
func (h *ContractHandler) Get(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.usecase.Get(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

// Update patches title and metadata
// PATCH /api/v1/contracts/:id
func (h *ContractHandler) Update(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req entities.UpdateContractInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	contract, err := h.usecase.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, contract)
}

// Delete soft-deletes a contract
// DELETE /api/v1/contracts/:id
func (h *ContractHandler) Delete(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.usecase.Delete(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Duplicate creates a DRAFT copy of a contract
// POST /api/v1/contracts/:id/duplicate
func (h *ContractHandler) Duplicate(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	contract, err := h.usecase.Duplicate(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, contract)
}

// Stats returns the owner's dashboard aggregate
// GET /api/v1/contracts/stats
func (h *ContractHandler) Stats(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	stats, err := h.usecase.Stats(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// Recent returns the most recently updated contracts
// GET /api/v1/contracts/recent
func (h *ContractHandler) Recent(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	items, err := h.usecase.Recent(c.Request.Context(), actor, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// Pending returns contracts waiting on signatures
// GET /api/v1/contracts/pending
func (h *ContractHandler) Pending(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	items, err := h.usecase.Pending(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// UpdateContent appends a content snapshot
// PATCH /api/v1/contracts/:id/content
func (h *ContractHandler) UpdateContent(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req entities.UpdateContentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	version, err := h.usecase.UpdateContent(c.Request.Context(), actor, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, version)
}

// GetVersions lists the full version chain, newest first
// GET /api/v1/contracts/:id/versions
func (h *ContractHandler) GetVersions(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	versions, err := h.usecase.GetVersions(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, versions)
}

// UpdateStatus requests a lifecycle transition
// PATCH /api/v1/contracts/:id/status
func (h *ContractHandler) UpdateStatus(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req entities.UpdateStatusInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	contract, err := h.usecase.RequestTransition(c.Request.Context(), actor, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, contract)
}

// GetTransitions lists the allowed next statuses
// GET /api/v1/contracts/:id/transitions
func (h *ContractHandler) GetTransitions(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	transitions, err := h.usecase.GetTransitions(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"transitions": transitions})
}

// GetHistory returns the activity trail, newest first
// GET /api/v1/contracts/:id/history
func (h *ContractHandler) GetHistory(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	logs, err := h.usecase.GetHistory(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, logs)
}

// ListParties lists the signer roster
// GET /api/v1/contracts/:id/parties
func (h *ContractHandler) ListParties(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	parties, err := h.usecase.ListParties(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, parties)
}

// AddParty adds a signer to the roster
// POST /api/v1/contracts/:id/parties
func (h *ContractHandler) AddParty(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req entities.AddPartyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	party, err := h.usecase.AddParty(c.Request.Context(), actor, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, party)
}

// RemoveParty removes an unsigned party
// DELETE /api/v1/contracts/:id/parties/:partyId
func (h *ContractHandler) RemoveParty(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	partyID, ok := pathID(c, "partyId")
	if !ok {
		return
	}

	if err := h.usecase.RemoveParty(c.Request.Context(), actor, id, partyID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PublicView shows the reduced contract behind a valid signing token
// GET /api/v1/contracts/:id/public?token=
func (h *ContractHandler) PublicView(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	token := c.Query("token")
	if token == "" {
		response.Error(c, domainerrors.Validation("token is required"))
		return
	}

	view, err := h.signatures.PublicView(c.Request.Context(), id, token)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}
