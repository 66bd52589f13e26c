package handler

import (
	"net/http"

	"workhub/internal/access"
	"workhub/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AccessHandler exposes the fine-grained evaluator: a check endpoint and
// the list of permissions the caller holds on a resource.
type AccessHandler struct {
	evaluator *access.Evaluator
}

func NewAccessHandler(evaluator *access.Evaluator) *AccessHandler {
	return &AccessHandler{evaluator: evaluator}
}

type checkAccessRequest struct {
	ResourceID   string               `json:"resource_id" binding:"required"`
	ResourceType model.ResourceType   `json:"resource_type" binding:"required,oneof=workspace board column card table list"`
	Permission   model.PermissionType `json:"permission" binding:"required,oneof=read write delete manage admin custom"`
}

// Check answers whether the caller holds the permission on the resource
func (h *AccessHandler) Check(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req checkAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	resourceID, err := uuid.Parse(req.ResourceID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resource ID format"})
		return
	}

	decision, err := h.evaluator.Authorize(
		c.Request.Context(), userID, req.ResourceType, resourceID, req.Permission, requestContext(c),
	)
	if err != nil {
		writeAccessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"resource_id":   req.ResourceID,
		"resource_type": req.ResourceType,
		"permission":    req.Permission,
		"allowed":       decision == access.DecisionAllow,
	})
}

// Permissions returns every permission the caller holds on the resource
func (h *AccessHandler) Permissions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resourceType := model.ResourceType(c.Query("resource_type"))
	if !resourceType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resource type"})
		return
	}
	resourceID, err := uuid.Parse(c.Query("resource_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resource ID format"})
		return
	}

	permissions, err := h.evaluator.Permissions(
		c.Request.Context(), userID, resourceType, resourceID, requestContext(c),
	)
	if err != nil {
		writeAccessError(c, err)
		return
	}
	if permissions == nil {
		permissions = []model.PermissionType{}
	}

	c.JSON(http.StatusOK, gin.H{
		"resource_id":   resourceID,
		"resource_type": resourceType,
		"permissions":   permissions,
	})
}
