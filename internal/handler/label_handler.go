package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"workhub/internal/access"
	"workhub/internal/model"
	"workhub/internal/repository"
)

type LabelHandler struct {
	labelRepo *repository.LabelRepository
	gate      *access.Gate
	locator   *access.Locator
}

func NewLabelHandler(labelRepo *repository.LabelRepository, gate *access.Gate, locator *access.Locator) *LabelHandler {
	return &LabelHandler{labelRepo: labelRepo, gate: gate, locator: locator}
}

type createLabelRequest struct {
	BoardID string `json:"board_id" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Color   string `json:"color" binding:"required"`
}

type labelResponse struct {
	ID      string `json:"id"`
	BoardID string `json:"board_id"`
	Name    string `json:"name"`
	Color   string `json:"color"`
}

func toLabelResponse(label *model.Label) labelResponse {
	return labelResponse{
		ID:      label.ID.String(),
		BoardID: label.BoardID.String(),
		Name:    label.Name,
		Color:   label.Color,
	}
}

func (h *LabelHandler) check(c *gin.Context, resourceType model.ResourceType, resourceID uuid.UUID, required model.WorkspaceRole) bool {
	userID, ok := currentUserID(c)
	if !ok {
		return false
	}

	workspaceID, err := h.locator.OwningWorkspace(c.Request.Context(), resourceType, resourceID)
	if err != nil {
		writeAccessError(c, err)
		return false
	}

	if err := h.gate.CheckWorkspaceAccess(c.Request.Context(), workspaceID, userID, required); err != nil {
		writeAccessError(c, err)
		return false
	}
	return true
}

func (h *LabelHandler) Create(c *gin.Context) {
	var req createLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	boardID, err := uuid.Parse(req.BoardID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	if !h.check(c, model.ResourceBoard, boardID, model.RoleEditor) {
		return
	}

	label := &model.Label{
		BoardID: boardID,
		Name:    req.Name,
		Color:   req.Color,
	}

	if err := h.labelRepo.Create(c.Request.Context(), label); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create label"})
		return
	}

	c.JSON(http.StatusCreated, toLabelResponse(label))
}

func (h *LabelHandler) GetByBoard(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	if !h.check(c, model.ResourceBoard, boardID, model.RoleViewer) {
		return
	}

	labels, err := h.labelRepo.GetByBoardID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve labels"})
		return
	}

	resp := make([]labelResponse, 0, len(labels))
	for i := range labels {
		resp = append(resp, toLabelResponse(&labels[i]))
	}
	c.JSON(http.StatusOK, resp)
}

type updateLabelRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color" binding:"required"`
}

func (h *LabelHandler) Update(c *gin.Context) {
	labelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid label ID format"})
		return
	}

	label, err := h.labelRepo.GetByID(c.Request.Context(), labelID)
	if err != nil {
		if errors.Is(err, repository.ErrLabelNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Label not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve label"})
		return
	}

	if !h.check(c, model.ResourceBoard, label.BoardID, model.RoleEditor) {
		return
	}

	var req updateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	label.Name = req.Name
	label.Color = req.Color

	if err := h.labelRepo.Update(c.Request.Context(), label); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update label"})
		return
	}

	c.JSON(http.StatusOK, toLabelResponse(label))
}

func (h *LabelHandler) Delete(c *gin.Context) {
	labelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid label ID format"})
		return
	}

	label, err := h.labelRepo.GetByID(c.Request.Context(), labelID)
	if err != nil {
		if errors.Is(err, repository.ErrLabelNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Label not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve label"})
		return
	}

	if !h.check(c, model.ResourceBoard, label.BoardID, model.RoleEditor) {
		return
	}

	if err := h.labelRepo.Delete(c.Request.Context(), labelID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete label"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Label deleted"})
}

type attachLabelRequest struct {
	LabelID string `json:"label_id" binding:"required"`
}

// Attach навешивает метку на карточку; метка и карточка должны
// принадлежать одной доске
func (h *LabelHandler) Attach(c *gin.Context) {
	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card ID format"})
		return
	}

	var req attachLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	labelID, err := uuid.Parse(req.LabelID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid label ID format"})
		return
	}

	if !h.check(c, model.ResourceCard, cardID, model.RoleEditor) {
		return
	}

	label, err := h.labelRepo.GetByID(c.Request.Context(), labelID)
	if err != nil {
		if errors.Is(err, repository.ErrLabelNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Label not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve label"})
		return
	}

	cardWorkspace, err := h.locator.OwningWorkspace(c.Request.Context(), model.ResourceCard, cardID)
	if err != nil {
		writeAccessError(c, err)
		return
	}
	labelWorkspace, err := h.locator.OwningWorkspace(c.Request.Context(), model.ResourceBoard, label.BoardID)
	if err != nil {
		writeAccessError(c, err)
		return
	}
	if cardWorkspace != labelWorkspace {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Label and card belong to different workspaces"})
		return
	}

	if err := h.labelRepo.AttachToCard(c.Request.Context(), labelID, cardID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach label"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Label attached"})
}

func (h *LabelHandler) Detach(c *gin.Context) {
	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card ID format"})
		return
	}

	labelID, err := uuid.Parse(c.Param("label_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid label ID format"})
		return
	}

	if !h.check(c, model.ResourceCard, cardID, model.RoleEditor) {
		return
	}

	if err := h.labelRepo.DetachFromCard(c.Request.Context(), labelID, cardID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to detach label"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Label detached"})
}

func (h *LabelHandler) GetByCard(c *gin.Context) {
	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card ID format"})
		return
	}

	if !h.check(c, model.ResourceCard, cardID, model.RoleViewer) {
		return
	}

	labels, err := h.labelRepo.GetByCardID(c.Request.Context(), cardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve labels"})
		return
	}

	resp := make([]labelResponse, 0, len(labels))
	for i := range labels {
		resp = append(resp, toLabelResponse(&labels[i]))
	}
	c.JSON(http.StatusOK, resp)
}
