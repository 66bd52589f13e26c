package handler

import (
	"errors"
	"net/http"
	"time"

	"workhub/internal/access"
	"workhub/internal/model"
	"workhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CardHandler struct {
	cardRepo *repository.CardRepository
	gate     *access.Gate
	locator  *access.Locator
}

func NewCardHandler(cardRepo *repository.CardRepository, gate *access.Gate, locator *access.Locator) *CardHandler {
	return &CardHandler{cardRepo: cardRepo, gate: gate, locator: locator}
}

type createCardRequest struct {
	ColumnID    string `json:"column_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Position    int    `json:"position"`
}

type cardResponse struct {
	ID          string     `json:"id"`
	ColumnID    string     `json:"column_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssignedTo  *string    `json:"assigned_to,omitempty"`
	CreatedBy   string     `json:"created_by"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Position    int        `json:"position"`
}

func toCardResponse(card *model.Card) cardResponse {
	resp := cardResponse{
		ID:          card.ID.String(),
		ColumnID:    card.ColumnID.String(),
		Title:       card.Title,
		Description: card.Description,
		CreatedBy:   card.CreatedBy.String(),
		DueDate:     card.DueDate,
		Position:    card.Position,
	}
	if card.AssignedTo != nil {
		assigned := card.AssignedTo.String()
		resp.AssignedTo = &assigned
	}
	return resp
}

// check разрешает рабочее пространство ресурса и требует указанную роль
func (h *CardHandler) check(c *gin.Context, resourceType model.ResourceType, resourceID uuid.UUID, required model.WorkspaceRole) (uuid.UUID, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return uuid.Nil, false
	}

	workspaceID, err := h.locator.OwningWorkspace(c.Request.Context(), resourceType, resourceID)
	if err != nil {
		writeAccessError(c, err)
		return uuid.Nil, false
	}

	if err := h.gate.CheckWorkspaceAccess(c.Request.Context(), workspaceID, userID, required); err != nil {
		writeAccessError(c, err)
		return uuid.Nil, false
	}
	return userID, true
}

func (h *CardHandler) Create(c *gin.Context) {
	var req createCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	columnID, err := uuid.Parse(req.ColumnID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}

	userID, ok := h.check(c, model.ResourceColumn, columnID, model.RoleEditor)
	if !ok {
		return
	}

	card := &model.Card{
		ColumnID:    columnID,
		Title:       req.Title,
		Description: req.Description,
		CreatedBy:   userID,
		Position:    req.Position,
	}

	if err := h.cardRepo.Create(c.Request.Context(), card); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create card"})
		return
	}

	c.JSON(http.StatusCreated, toCardResponse(card))
}

func (h *CardHandler) GetByID(c *gin.Context) {
	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card ID format"})
		return
	}

	if _, ok := h.check(c, model.ResourceCard, cardID, model.RoleViewer); !ok {
		return
	}

	card, err := h.cardRepo.GetByID(c.Request.Context(), cardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve card"})
		return
	}
	if card == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}

	c.JSON(http.StatusOK, toCardResponse(card))
}

func (h *CardHandler) GetByColumn(c *gin.Context) {
	columnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}

	if _, ok := h.check(c, model.ResourceColumn, columnID, model.RoleViewer); !ok {
		return
	}

	cards, err := h.cardRepo.GetByColumnID(c.Request.Context(), columnID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cards"})
		return
	}

	response := make([]cardResponse, len(cards))
	for i := range cards {
		response[i] = toCardResponse(&cards[i])
	}
	c.JSON(http.StatusOK, response)
}

type updateCardRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

func (h *CardHandler) Update(c *gin.Context) {
	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card ID format"})
		return
	}

	if _, ok := h.check(c, model.ResourceCard, cardID, model.RoleEditor); !ok {
		return
	}

	card, err := h.cardRepo.GetByID(c.Request.Context(), cardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve card"})
		return
	}
	if card == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}

	var req updateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Title != "" {
		card.Title = req.Title
	}
	if req.Description != "" {
		card.Description = req.Description
	}
	if req.DueDate != nil {
		card.DueDate = req.DueDate
	}

	if err := h.cardRepo.Update(c.Request.Context(), card); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update card"})
		return
	}

	c.JSON(http.StatusOK, toCardResponse(card))
}

func (h *CardHandler) Delete(c *gin.Context) {
	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card ID format"})
		return
	}

	if _, ok := h.check(c, model.ResourceCard, cardID, model.RoleEditor); !ok {
		return
	}

	if err := h.cardRepo.Delete(c.Request.Context(), cardID); err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete card"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Card deleted"})
}

type moveCardRequest struct {
	ColumnID string `json:"column_id" binding:"required"`
	Position int    `json:"position"`
}

// Move переносит карточку; проверяются и исходная, и целевая колонки
func (h *CardHandler) Move(c *gin.Context) {
	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card ID format"})
		return
	}

	var req moveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	targetColumnID, err := uuid.Parse(req.ColumnID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}

	if _, ok := h.check(c, model.ResourceCard, cardID, model.RoleEditor); !ok {
		return
	}
	if _, ok := h.check(c, model.ResourceColumn, targetColumnID, model.RoleEditor); !ok {
		return
	}

	if err := h.cardRepo.Move(c.Request.Context(), cardID, targetColumnID, req.Position); err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to move card"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Card moved"})
}
