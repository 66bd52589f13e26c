package handler

import (
	"net/http"

	"workhub/internal/access"
	"workhub/internal/model"
	"workhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RuleHandler struct {
	ruleRepo   *repository.RuleRepository
	policyRepo *repository.PolicyRepository
	gate       *access.Gate
	locator    *access.Locator
}

func NewRuleHandler(
	ruleRepo *repository.RuleRepository,
	policyRepo *repository.PolicyRepository,
	gate *access.Gate,
	locator *access.Locator,
) *RuleHandler {
	return &RuleHandler{ruleRepo: ruleRepo, policyRepo: policyRepo, gate: gate, locator: locator}
}

type ruleRequest struct {
	PolicyID     string                 `json:"policy_id" binding:"required"`
	ResourceID   string                 `json:"resource_id" binding:"required"`
	ResourceType model.ResourceType     `json:"resource_type" binding:"required,oneof=workspace board column card table list"`
	SubjectID    string                 `json:"subject_id" binding:"required"`
	SubjectType  model.SubjectType      `json:"subject_type" binding:"required,oneof=user group"`
	Attributes   map[string]interface{} `json:"attributes"`
	IsPublic     bool                   `json:"is_public"`
}

type ruleResponse struct {
	ID           string                 `json:"id"`
	PolicyID     string                 `json:"policy_id"`
	ResourceID   string                 `json:"resource_id"`
	ResourceType string                 `json:"resource_type"`
	SubjectID    string                 `json:"subject_id"`
	SubjectType  string                 `json:"subject_type"`
	Attributes   map[string]interface{} `json:"attributes"`
	IsActive     bool                   `json:"is_active"`
	IsPublic     bool                   `json:"is_public"`
}

func toRuleResponse(r *model.AccessRule) ruleResponse {
	return ruleResponse{
		ID:           r.ID.String(),
		PolicyID:     r.PolicyID.String(),
		ResourceID:   r.ResourceID.String(),
		ResourceType: string(r.ResourceType),
		SubjectID:    r.SubjectID.String(),
		SubjectType:  string(r.SubjectType),
		Attributes:   r.Attributes,
		IsActive:     r.IsActive,
		IsPublic:     r.IsPublic,
	}
}

// checkRuleAdmin требует роль admin в пространстве, владеющем ресурсом
// правила
func (h *RuleHandler) checkRuleAdmin(c *gin.Context, resourceType model.ResourceType, resourceID uuid.UUID) bool {
	userID, ok := currentUserID(c)
	if !ok {
		return false
	}

	workspaceID, err := h.locator.OwningWorkspace(c.Request.Context(), resourceType, resourceID)
	if err != nil {
		writeAccessError(c, err)
		return false
	}

	if err := h.gate.CheckWorkspaceAccess(c.Request.Context(), workspaceID, userID, model.RoleAdmin); err != nil {
		writeAccessError(c, err)
		return false
	}
	return true
}

// Create binds a policy to a concrete resource and subject
func (h *RuleHandler) Create(c *gin.Context) {
	var req ruleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	policyID, err := uuid.Parse(req.PolicyID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid policy ID format"})
		return
	}
	resourceID, err := uuid.Parse(req.ResourceID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resource ID format"})
		return
	}
	subjectID, err := uuid.Parse(req.SubjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subject ID format"})
		return
	}

	if !h.checkRuleAdmin(c, req.ResourceType, resourceID) {
		return
	}

	rule := &model.AccessRule{
		PolicyID:     policyID,
		ResourceID:   resourceID,
		ResourceType: req.ResourceType,
		SubjectID:    subjectID,
		SubjectType:  req.SubjectType,
		Attributes:   req.Attributes,
		IsActive:     true,
		IsPublic:     req.IsPublic,
	}

	if err := h.ruleRepo.Create(c.Request.Context(), rule); err != nil {
		writeAccessError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toRuleResponse(rule))
}

func (h *RuleHandler) GetByPolicy(c *gin.Context) {
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

	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if policy.WorkspaceID != nil {
		if err := h.gate.CheckWorkspaceAccess(c.Request.Context(), *policy.WorkspaceID, userID, model.RoleAdmin); err != nil {
			writeAccessError(c, err)
			return
		}
	}

	rules, err := h.ruleRepo.GetByPolicyID(c.Request.Context(), policyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rules"})
		return
	}

	response := make([]ruleResponse, len(rules))
	for i := range rules {
		response[i] = toRuleResponse(&rules[i])
	}
	c.JSON(http.StatusOK, response)
}

type updateRuleRequest struct {
	Attributes map[string]interface{} `json:"attributes"`
	IsActive   *bool                  `json:"is_active"`
	IsPublic   *bool                  `json:"is_public"`
}

func (h *RuleHandler) Update(c *gin.Context) {
	ruleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rule ID format"})
		return
	}

	rule, err := h.ruleRepo.GetByID(c.Request.Context(), ruleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rule"})
		return
	}
	if rule == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rule not found"})
		return
	}

	if !h.checkRuleAdmin(c, rule.ResourceType, rule.ResourceID) {
		return
	}

	var req updateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Attributes != nil {
		rule.Attributes = req.Attributes
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}
	if req.IsPublic != nil {
		rule.IsPublic = *req.IsPublic
	}

	if err := h.ruleRepo.Update(c.Request.Context(), rule); err != nil {
		writeAccessError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRuleResponse(rule))
}

func (h *RuleHandler) Delete(c *gin.Context) {
	ruleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rule ID format"})
		return
	}

	rule, err := h.ruleRepo.GetByID(c.Request.Context(), ruleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rule"})
		return
	}
	if rule == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rule not found"})
		return
	}

	if !h.checkRuleAdmin(c, rule.ResourceType, rule.ResourceID) {
		return
	}

	if err := h.ruleRepo.Delete(c.Request.Context(), ruleID); err != nil {
		writeAccessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rule deleted"})
}
