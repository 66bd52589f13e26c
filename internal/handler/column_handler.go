package handler

import (
	"net/http"

	"workhub/internal/access"
	"workhub/internal/model"
	"workhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ColumnHandler struct {
	columnRepo *repository.ColumnRepository
	gate       *access.Gate
	locator    *access.Locator
}

func NewColumnHandler(columnRepo *repository.ColumnRepository, gate *access.Gate, locator *access.Locator) *ColumnHandler {
	return &ColumnHandler{columnRepo: columnRepo, gate: gate, locator: locator}
}

type createColumnRequest struct {
	BoardID string `json:"board_id" binding:"required"`
	Title   string `json:"title" binding:"required"`
}

type columnResponse struct {
	ID       string `json:"id"`
	BoardID  string `json:"board_id"`
	Title    string `json:"title"`
	Position int    `json:"position"`
}

func toColumnResponse(col *model.Column) columnResponse {
	return columnResponse{
		ID:       col.ID.String(),
		BoardID:  col.BoardID.String(),
		Title:    col.Title,
		Position: col.Position,
	}
}

// checkEditor разрешает рабочее пространство ресурса и требует роль editor
func (h *ColumnHandler) checkEditor(c *gin.Context, resourceType model.ResourceType, resourceID uuid.UUID) bool {
	userID, ok := currentUserID(c)
	if !ok {
		return false
	}

	workspaceID, err := h.locator.OwningWorkspace(c.Request.Context(), resourceType, resourceID)
	if err != nil {
		writeAccessError(c, err)
		return false
	}

	if err := h.gate.CheckWorkspaceAccess(c.Request.Context(), workspaceID, userID, model.RoleEditor); err != nil {
		writeAccessError(c, err)
		return false
	}
	return true
}

func (h *ColumnHandler) Create(c *gin.Context) {
	var req createColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	boardID, err := uuid.Parse(req.BoardID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	if !h.checkEditor(c, model.ResourceBoard, boardID) {
		return
	}

	maxPosition, err := h.columnRepo.GetMaxPosition(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to determine position"})
		return
	}

	column := &model.Column{
		BoardID:  boardID,
		Title:    req.Title,
		Position: maxPosition + 1,
	}

	if err := h.columnRepo.Create(c.Request.Context(), column); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create column"})
		return
	}

	c.JSON(http.StatusCreated, toColumnResponse(column))
}

func (h *ColumnHandler) GetByBoard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	workspaceID, err := h.locator.OwningWorkspace(c.Request.Context(), model.ResourceBoard, boardID)
	if err != nil {
		writeAccessError(c, err)
		return
	}

	if err := h.gate.CheckWorkspaceAccess(c.Request.Context(), workspaceID, userID, model.RoleViewer); err != nil {
		writeAccessError(c, err)
		return
	}

	columns, err := h.columnRepo.GetByBoardID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve columns"})
		return
	}

	response := make([]columnResponse, len(columns))
	for i := range columns {
		response[i] = toColumnResponse(&columns[i])
	}
	c.JSON(http.StatusOK, response)
}

type updateColumnRequest struct {
	Title string `json:"title" binding:"required"`
}

func (h *ColumnHandler) Update(c *gin.Context) {
	columnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}

	if !h.checkEditor(c, model.ResourceColumn, columnID) {
		return
	}

	column, err := h.columnRepo.GetByID(c.Request.Context(), columnID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve column"})
		return
	}
	if column == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Column not found"})
		return
	}

	var req updateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	column.Title = req.Title
	if err := h.columnRepo.Update(c.Request.Context(), column); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update column"})
		return
	}

	c.JSON(http.StatusOK, toColumnResponse(column))
}

func (h *ColumnHandler) Delete(c *gin.Context) {
	columnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}

	if !h.checkEditor(c, model.ResourceColumn, columnID) {
		return
	}

	if err := h.columnRepo.Delete(c.Request.Context(), columnID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete column"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Column deleted"})
}
