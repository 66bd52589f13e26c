package handler

import (
	"net/http"

	"workhub/internal/access"
	"workhub/internal/model"
	"workhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PolicyHandler struct {
	policyRepo *repository.PolicyRepository
	userRepo   *repository.UserRepository
	gate       *access.Gate
}

func NewPolicyHandler(policyRepo *repository.PolicyRepository, userRepo *repository.UserRepository, gate *access.Gate) *PolicyHandler {
	return &PolicyHandler{policyRepo: policyRepo, userRepo: userRepo, gate: gate}
}

type policyRequest struct {
	Name         string                 `json:"name" binding:"required"`
	Description  string                 `json:"description"`
	ResourceType model.ResourceType     `json:"resource_type" binding:"required,oneof=workspace board column card table list"`
	Permissions  []model.PermissionType `json:"permissions" binding:"required,min=1"`
	Conditions   map[string]interface{} `json:"conditions"`
	Priority     int                    `json:"priority"`
	IsActive     *bool                  `json:"is_active"`
	WorkspaceID  *string                `json:"workspace_id"`
}

type policyResponse struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Description  string                 `json:"description"`
	ResourceType string                 `json:"resource_type"`
	Permissions  []model.PermissionType `json:"permissions"`
	Conditions   map[string]interface{} `json:"conditions"`
	Priority     int                    `json:"priority"`
	IsActive     bool                   `json:"is_active"`
	IsSystem     bool                   `json:"is_system"`
	WorkspaceID  *string                `json:"workspace_id,omitempty"`
}

func toPolicyResponse(p *model.AccessPolicy) policyResponse {
	resp := policyResponse{
		ID:           p.ID.String(),
		Name:         p.Name,
		Description:  p.Description,
		ResourceType: string(p.ResourceType),
		Permissions:  p.Permissions,
		Conditions:   p.Conditions,
		Priority:     p.Priority,
		IsActive:     p.IsActive,
		IsSystem:     p.IsSystem,
	}
	if p.WorkspaceID != nil {
		id := p.WorkspaceID.String()
		resp.WorkspaceID = &id
	}
	return resp
}

// checkPolicyAdmin решает, может ли пользователь администрировать политику:
// политика пространства требует роль admin в нем, глобальная требует
// системного администратора.
func (h *PolicyHandler) checkPolicyAdmin(c *gin.Context, userID uuid.UUID, workspaceID *uuid.UUID) bool {
	if workspaceID != nil {
		if err := h.gate.CheckWorkspaceAccess(c.Request.Context(), *workspaceID, userID, model.RoleAdmin); err != nil {
			writeAccessError(c, err)
			return false
		}
		return true
	}

	isAdmin, err := h.userRepo.IsPlatformAdmin(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
		return false
	}
	if !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Global policies require a system administrator"})
		return false
	}
	return true
}

func (h *PolicyHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req policyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var workspaceID *uuid.UUID
	if req.WorkspaceID != nil {
		id, err := uuid.Parse(*req.WorkspaceID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID format"})
			return
		}
		workspaceID = &id
	}

	if !h.checkPolicyAdmin(c, userID, workspaceID) {
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	policy := &model.AccessPolicy{
		Name:         req.Name,
		Description:  req.Description,
		ResourceType: req.ResourceType,
		Permissions:  req.Permissions,
		Conditions:   req.Conditions,
		Priority:     req.Priority,
		IsActive:     active,
		OwnerID:      &userID,
		WorkspaceID:  workspaceID,
	}

	if err := h.policyRepo.Create(c.Request.Context(), policy); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create policy"})
		return
	}

	c.JSON(http.StatusCreated, toPolicyResponse(policy))
}

func (h *PolicyHandler) GetByWorkspace(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	workspaceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID format"})
		return
	}

	if err := h.gate.CheckWorkspaceAccess(c.Request.Context(), workspaceID, userID, model.RoleAdmin); err != nil {
		writeAccessError(c, err)
		return
	}

	policies, err := h.policyRepo.GetByWorkspaceID(c.Request.Context(), workspaceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve policies"})
		return
	}

	response := make([]policyResponse, len(policies))
	for i := range policies {
		response[i] = toPolicyResponse(&policies[i])
	}
	c.JSON(http.StatusOK, response)
}

// GetApplicable lists the active policies that would be considered when
// evaluating a resource of the given type inside the workspace, in the
// order the evaluator sees them.
func (h *PolicyHandler) GetApplicable(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	workspaceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID format"})
		return
	}

	resourceType := model.ResourceType(c.Query("resource_type"))
	if !resourceType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resource type"})
		return
	}

	if err := h.gate.CheckWorkspaceAccess(c.Request.Context(), workspaceID, userID, model.RoleAdmin); err != nil {
		writeAccessError(c, err)
		return
	}

	policies, err := h.policyRepo.FindApplicable(c.Request.Context(), resourceType, workspaceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve policies"})
		return
	}

	response := make([]policyResponse, len(policies))
	for i := range policies {
		response[i] = toPolicyResponse(&policies[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *PolicyHandler) GetByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	policyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid policy ID format"})
		return
	}

	policy, err := h.policyRepo.GetByID(c.Request.Context(), policyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve policy"})
		return
	}
	if policy == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Policy not found"})
		return
	}

	if !h.checkPolicyAdmin(c, userID, policy.WorkspaceID) {
		return
	}

	c.JSON(http.StatusOK, toPolicyResponse(policy))
}

// Тип ресурса в запросе отсутствует намеренно: политика создается под
// один тип, и правила обязаны ему соответствовать
type updatePolicyRequest struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Permissions []model.PermissionType `json:"permissions"`
	Conditions  map[string]interface{} `json:"conditions"`
	Priority    *int                   `json:"priority"`
	IsActive    *bool                  `json:"is_active"`
}

func (h *PolicyHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	policyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid policy ID format"})
		return
	}

	policy, err := h.policyRepo.GetByID(c.Request.Context(), policyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve policy"})
		return
	}
	if policy == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Policy not found"})
		return
	}

	if !h.checkPolicyAdmin(c, userID, policy.WorkspaceID) {
		return
	}

	var req updatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Name != "" {
		policy.Name = req.Name
	}
	if req.Description != "" {
		policy.Description = req.Description
	}
	if req.Permissions != nil {
		policy.Permissions = req.Permissions
	}
	if req.Conditions != nil {
		policy.Conditions = req.Conditions
	}
	if req.Priority != nil {
		policy.Priority = *req.Priority
	}
	if req.IsActive != nil {
		policy.IsActive = *req.IsActive
	}

	if err := h.policyRepo.Update(c.Request.Context(), policy); err != nil {
		writeAccessError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPolicyResponse(policy))
}

// Delete каскадно удаляет политику вместе с ее правилами
func (h *PolicyHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	policyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid policy ID format"})
		return
	}

	policy, err := h.policyRepo.GetByID(c.Request.Context(), policyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve policy"})
		return
	}
	if policy == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Policy not found"})
		return
	}

	if !h.checkPolicyAdmin(c, userID, policy.WorkspaceID) {
		return
	}

	if err := h.policyRepo.Delete(c.Request.Context(), policyID); err != nil {
		writeAccessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Policy deleted"})
}
