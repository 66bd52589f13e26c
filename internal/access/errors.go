package access

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"workhub/internal/model"
)

var (
	// ErrWorkspaceNotFound is returned when a workspace does not exist
	ErrWorkspaceNotFound = errors.New("workspace not found")

	// ErrWorkspaceAccessDenied is returned when the subject has no
	// membership or the membership role is below the required one
	ErrWorkspaceAccessDenied = errors.New("workspace access denied")

	// ErrAccessDenied is the generic fine-grained denial
	ErrAccessDenied = errors.New("access denied")
)

// ResourceNotFoundError указывает на отсутствие ресурса или звена в его
// цепочке вложенности. Type называет именно то звено, которое не нашлось:
// для карточки с удаленной колонкой это будет ResourceColumn.
type ResourceNotFoundError struct {
	Type model.ResourceType
	ID   uuid.UUID
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Type, e.ID)
}
