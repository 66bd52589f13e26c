package access

import (
	"context"

	"github.com/google/uuid"

	"workhub/internal/model"
)

type MembershipLookup interface {
	GetMember(ctx context.Context, workspaceID, userID uuid.UUID) (*model.WorkspaceMember, error)
}

// Gate выполняет грубую и быструю проверку доступа по роли в рабочем
// пространстве. Ею пользуются все сервисы при мутациях; политики и правила
// она намеренно не читает, это отдельный путь через Evaluator.
type Gate struct {
	workspaces WorkspaceLookup
	members    MembershipLookup
}

func NewGate(workspaces WorkspaceLookup, members MembershipLookup) *Gate {
	return &Gate{workspaces: workspaces, members: members}
}

// WorkspaceRole returns the effective role of the user in the workspace.
// The workspace owner is always RoleOwner regardless of membership rows.
// The second result is false when the user has no role at all.
func (g *Gate) WorkspaceRole(ctx context.Context, workspaceID, userID uuid.UUID) (model.WorkspaceRole, bool, error) {
	workspace, err := g.workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		return "", false, err
	}
	if workspace == nil {
		return "", false, ErrWorkspaceNotFound
	}

	if workspace.OwnerID == userID {
		return model.RoleOwner, true, nil
	}

	member, err := g.members.GetMember(ctx, workspaceID, userID)
	if err != nil {
		return "", false, err
	}
	if member == nil {
		return "", false, nil
	}
	return member.Role, true, nil
}

// CheckWorkspaceAccess fails with ErrWorkspaceNotFound when the workspace
// is absent and with ErrWorkspaceAccessDenied when the user's role ranks
// below required. A public workspace grants viewer-level access to
// non-members.
func (g *Gate) CheckWorkspaceAccess(ctx context.Context, workspaceID, userID uuid.UUID, required model.WorkspaceRole) error {
	workspace, err := g.workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		return err
	}
	if workspace == nil {
		return ErrWorkspaceNotFound
	}

	if workspace.OwnerID == userID {
		return nil
	}

	member, err := g.members.GetMember(ctx, workspaceID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		if workspace.IsPublic && required == model.RoleViewer {
			return nil
		}
		return ErrWorkspaceAccessDenied
	}

	if !RoleAtLeast(member.Role, required) {
		return ErrWorkspaceAccessDenied
	}
	return nil
}
