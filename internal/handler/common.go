package handler

import (
	"errors"
	"net"
	"net/http"
	"time"

	"workhub/internal/access"
	"workhub/internal/middleware"
	"workhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentUserID extracts the authenticated user id set by the auth
// middleware. On failure it writes the response itself.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return uuid.Nil, false
	}

	userID, ok := raw.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return uuid.Nil, false
	}
	return userID, true
}

// requestContext собирает контекст запроса для проверки условий политик
func requestContext(c *gin.Context) access.RequestContext {
	return access.RequestContext{
		Now:        time.Now(),
		IP:         net.ParseIP(c.ClientIP()),
		Attributes: map[string]interface{}{},
	}
}

// writeAccessError maps core authorization errors onto HTTP statuses
func writeAccessError(c *gin.Context, err error) {
	var notFound *access.ResourceNotFoundError
	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.Is(err, access.ErrWorkspaceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Workspace not found"})
	case errors.Is(err, access.ErrWorkspaceAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient workspace role"})
	case errors.Is(err, access.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	case errors.Is(err, repository.ErrSystemPolicyImmutable):
		c.JSON(http.StatusConflict, gin.H{"error": "System policy is immutable"})
	case errors.Is(err, repository.ErrPolicyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Policy not found"})
	case errors.Is(err, repository.ErrRuleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Rule not found"})
	case errors.Is(err, repository.ErrRuleResourceTypeMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rule resource type does not match policy"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
