package handler

import (
	"net/http"

	"workhub/internal/access"
	"workhub/internal/model"
	"workhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ListHandler struct {
	listRepo *repository.ListRepository
	gate     *access.Gate
}

func NewListHandler(listRepo *repository.ListRepository, gate *access.Gate) *ListHandler {
	return &ListHandler{listRepo: listRepo, gate: gate}
}

type createListRequest struct {
	WorkspaceID string `json:"workspace_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
}

type listResponse struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspace_id"`
	Name        string `json:"name"`
}

func toListResponse(l *model.ListDefinition) listResponse {
	return listResponse{
		ID:          l.ID.String(),
		WorkspaceID: l.WorkspaceID.String(),
		Name:        l.Name,
	}
}

func (h *ListHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req createListRequest
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

	list := &model.ListDefinition{
		WorkspaceID: workspaceID,
		Name:        req.Name,
		CreatedBy:   userID,
	}

	if err := h.listRepo.Create(c.Request.Context(), list); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create list"})
		return
	}

	c.JSON(http.StatusCreated, toListResponse(list))
}

func (h *ListHandler) GetByWorkspace(c *gin.Context) {
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

	lists, err := h.listRepo.GetByWorkspaceID(c.Request.Context(), workspaceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve lists"})
		return
	}

	response := make([]listResponse, len(lists))
	for i := range lists {
		response[i] = toListResponse(&lists[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *ListHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid list ID format"})
		return
	}

	list, err := h.listRepo.GetByID(c.Request.Context(), listID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve list"})
		return
	}
	if list == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "List not found"})
		return
	}

	if err := h.gate.CheckWorkspaceAccess(c.Request.Context(), list.WorkspaceID, userID, model.RoleEditor); err != nil {
		writeAccessError(c, err)
		return
	}

	if err := h.listRepo.Delete(c.Request.Context(), listID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete list"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "List deleted"})
}
