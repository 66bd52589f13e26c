package handler

import (
	"net/http"

	"workhub/internal/model"
	"workhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GroupHandler manages platform-wide subject groups. Groups are the
// targets of group-scoped access rules, so only platform administrators
// may manage them.
type GroupHandler struct {
	groupRepo *repository.GroupRepository
	userRepo  *repository.UserRepository
}

func NewGroupHandler(groupRepo *repository.GroupRepository, userRepo *repository.UserRepository) *GroupHandler {
	return &GroupHandler{groupRepo: groupRepo, userRepo: userRepo}
}

func (h *GroupHandler) checkPlatformAdmin(c *gin.Context) bool {
	userID, ok := currentUserID(c)
	if !ok {
		return false
	}

	isAdmin, err := h.userRepo.IsPlatformAdmin(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return false
	}
	if !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Platform admin access required"})
		return false
	}
	return true
}

type createGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *GroupHandler) Create(c *gin.Context) {
	if !h.checkPlatformAdmin(c) {
		return
	}

	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	group := &model.Group{Name: req.Name}
	if err := h.groupRepo.Create(c.Request.Context(), group); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": group.ID, "name": group.Name})
}

type groupMemberRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

func (h *GroupHandler) AddMember(c *gin.Context) {
	if !h.checkPlatformAdmin(c) {
		return
	}

	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID format"})
		return
	}

	var req groupMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	memberID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	if err := h.groupRepo.AddMember(c.Request.Context(), groupID, memberID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add group member"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member added"})
}

func (h *GroupHandler) RemoveMember(c *gin.Context) {
	if !h.checkPlatformAdmin(c) {
		return
	}

	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID format"})
		return
	}

	memberID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	if err := h.groupRepo.RemoveMember(c.Request.Context(), groupID, memberID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove group member"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}
