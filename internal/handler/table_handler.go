package handler

import (
	"net/http"

	"workhub/internal/access"
	"workhub/internal/model"
	"workhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TableHandler struct {
	tableRepo *repository.TableRepository
	gate      *access.Gate
}

func NewTableHandler(tableRepo *repository.TableRepository, gate *access.Gate) *TableHandler {
	return &TableHandler{tableRepo: tableRepo, gate: gate}
}

type createTableRequest struct {
	WorkspaceID string `json:"workspace_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type tableResponse struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspace_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func toTableResponse(t *model.TableDefinition) tableResponse {
	return tableResponse{
		ID:          t.ID.String(),
		WorkspaceID: t.WorkspaceID.String(),
		Name:        t.Name,
		Description: t.Description,
	}
}

func (h *TableHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req createTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	workspaceID, err := uuid.Parse(req.WorkspaceID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID format"})
		return
	}

	if err := h.gate.CheckWorkspaceAccess(c.Request.Context(), workspaceID, userID, model.RoleEditor); err != nil {
		writeAccessError(c, err)
		return
	}

	table := &model.TableDefinition{
		WorkspaceID: workspaceID,
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   userID,
	}

	if err := h.tableRepo.Create(c.Request.Context(), table); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create table"})
		return
	}

	c.JSON(http.StatusCreated, toTableResponse(table))
}

func (h *TableHandler) GetByWorkspace(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	workspaceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID format"})
		return
	}

	if err := h.gate.CheckWorkspaceAccess(c.Request.Context(), workspaceID, userID, model.RoleViewer); err != nil {
		writeAccessError(c, err)
		return
	}

	tables, err := h.tableRepo.GetByWorkspaceID(c.Request.Context(), workspaceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tables"})
		return
	}

	response := make([]tableResponse, len(tables))
	for i := range tables {
		response[i] = toTableResponse(&tables[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *TableHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	tableID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table ID format"})
		return
	}

	table, err := h.tableRepo.GetByID(c.Request.Context(), tableID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve table"})
		return
	}
	if table == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
		return
	}

	if err := h.gate.CheckWorkspaceAccess(c.Request.Context(), table.WorkspaceID, userID, model.RoleEditor); err != nil {
		writeAccessError(c, err)
		return
	}

	if err := h.tableRepo.Delete(c.Request.Context(), tableID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete table"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Table deleted"})
}
