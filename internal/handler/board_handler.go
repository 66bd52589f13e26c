package handler

import (
	"net/http"

	"workhub/internal/access"
	"workhub/internal/model"
	"workhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoardHandler struct {
	boardRepo *repository.BoardRepository
	gate      *access.Gate
	locator   *access.Locator
}

func NewBoardHandler(boardRepo *repository.BoardRepository, gate *access.Gate, locator *access.Locator) *BoardHandler {
	return &BoardHandler{boardRepo: boardRepo, gate: gate, locator: locator}
}

type createBoardRequest struct {
	WorkspaceID string `json:"workspace_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type boardResponse struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspace_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatedBy   string `json:"created_by"`
}

func toBoardResponse(b *model.Board) boardResponse {
	return boardResponse{
		ID:          b.ID.String(),
		WorkspaceID: b.WorkspaceID.String(),
		Title:       b.Title,
		Description: b.Description,
		CreatedBy:   b.CreatedBy.String(),
	}
}

// Create creates a board; editor role in the workspace is required
func (h *BoardHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req createBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	workspaceID, err := uuid.Parse(req.WorkspaceID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID format"})
		return
	}

	// Явная проверка роли до любой мутации
	if err := h.gate.CheckWorkspaceAccess(c.Request.Context(), workspaceID, userID, model.RoleEditor); err != nil {
		writeAccessError(c, err)
		return
	}

	board := &model.Board{
		WorkspaceID: workspaceID,
		Title:       req.Title,
		Description: req.Description,
		CreatedBy:   userID,
	}

	if err := h.boardRepo.Create(c.Request.Context(), board); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create board"})
		return
	}

	c.JSON(http.StatusCreated, toBoardResponse(board))
}

func (h *BoardHandler) GetByWorkspace(c *gin.Context) {
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

	boards, err := h.boardRepo.GetByWorkspaceID(c.Request.Context(), workspaceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve boards"})
		return
	}

	response := make([]boardResponse, len(boards))
	for i := range boards {
		response[i] = toBoardResponse(&boards[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *BoardHandler) GetByID(c *gin.Context) {
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

	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return
	}
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return
	}

	c.JSON(http.StatusOK, toBoardResponse(board))
}

type updateBoardRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *BoardHandler) Update(c *gin.Context) {
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

	if err := h.gate.CheckWorkspaceAccess(c.Request.Context(), workspaceID, userID, model.RoleEditor); err != nil {
		writeAccessError(c, err)
		return
	}

	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return
	}
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return
	}

	var req updateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Title != "" {
		board.Title = req.Title
	}
	if req.Description != "" {
		board.Description = req.Description
	}

	if err := h.boardRepo.Update(c.Request.Context(), board); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update board"})
		return
	}

	c.JSON(http.StatusOK, toBoardResponse(board))
}

// Delete removes a board; manage-level work, so admin role is required
func (h *BoardHandler) Delete(c *gin.Context) {
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

	if err := h.gate.CheckWorkspaceAccess(c.Request.Context(), workspaceID, userID, model.RoleAdmin); err != nil {
		writeAccessError(c, err)
		return
	}

	if err := h.boardRepo.Delete(c.Request.Context(), boardID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete board"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Board deleted"})
}
