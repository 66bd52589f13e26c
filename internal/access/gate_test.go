package access_test

import (
	"context"
	"testing"

	"workhub/internal/access"
	"workhub/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestWorkspaceRole_OwnerShortcut(t *testing.T) {
	// Arrange: владелец не имеет строки участника, но роль все равно owner
	ownerID := uuid.New()
	workspaceID := uuid.New()
	gate := access.NewGate(
		fakeWorkspaces{workspaceID: {ID: workspaceID, OwnerID: ownerID}},
		fakeMembers{},
	)

	// Act
	role, ok, err := gate.WorkspaceRole(context.Background(), workspaceID, ownerID)

	// Assert
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, model.RoleOwner, role)
}

func TestWorkspaceRole_Member(t *testing.T) {
	workspaceID := uuid.New()
	userID := uuid.New()
	gate := access.NewGate(
		fakeWorkspaces{workspaceID: {ID: workspaceID, OwnerID: uuid.New()}},
		fakeMembers{workspaceID: {userID: {Role: model.RoleEditor}}},
	)

	role, ok, err := gate.WorkspaceRole(context.Background(), workspaceID, userID)

	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, model.RoleEditor, role)
}

func TestWorkspaceRole_NotAMember(t *testing.T) {
	workspaceID := uuid.New()
	gate := access.NewGate(
		fakeWorkspaces{workspaceID: {ID: workspaceID, OwnerID: uuid.New()}},
		fakeMembers{},
	)

	_, ok, err := gate.WorkspaceRole(context.Background(), workspaceID, uuid.New())

	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestWorkspaceRole_WorkspaceNotFound(t *testing.T) {
	gate := access.NewGate(fakeWorkspaces{}, fakeMembers{})

	_, _, err := gate.WorkspaceRole(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, access.ErrWorkspaceNotFound)
}

func TestCheckWorkspaceAccess_RoleTooLow(t *testing.T) {
	workspaceID := uuid.New()
	userID := uuid.New()
	gate := access.NewGate(
		fakeWorkspaces{workspaceID: {ID: workspaceID, OwnerID: uuid.New()}},
		fakeMembers{workspaceID: {userID: {Role: model.RoleViewer}}},
	)

	err := gate.CheckWorkspaceAccess(context.Background(), workspaceID, userID, model.RoleAdmin)

	assert.ErrorIs(t, err, access.ErrWorkspaceAccessDenied)
}

func TestCheckWorkspaceAccess_SufficientRole(t *testing.T) {
	workspaceID := uuid.New()
	userID := uuid.New()
	gate := access.NewGate(
		fakeWorkspaces{workspaceID: {ID: workspaceID, OwnerID: uuid.New()}},
		fakeMembers{workspaceID: {userID: {Role: model.RoleAdmin}}},
	)

	assert.NoError(t, gate.CheckWorkspaceAccess(context.Background(), workspaceID, userID, model.RoleEditor))
}

func TestCheckWorkspaceAccess_PublicWorkspaceGrantsViewer(t *testing.T) {
	// Публичное пространство дает не-участнику доступ уровня viewer
	workspaceID := uuid.New()
	gate := access.NewGate(
		fakeWorkspaces{workspaceID: {ID: workspaceID, OwnerID: uuid.New(), IsPublic: true}},
		fakeMembers{},
	)
	outsider := uuid.New()

	assert.NoError(t, gate.CheckWorkspaceAccess(context.Background(), workspaceID, outsider, model.RoleViewer))

	// Но не выше
	err := gate.CheckWorkspaceAccess(context.Background(), workspaceID, outsider, model.RoleEditor)
	assert.ErrorIs(t, err, access.ErrWorkspaceAccessDenied)
}

func TestCheckWorkspaceAccess_PrivateWorkspaceDeniesOutsider(t *testing.T) {
	workspaceID := uuid.New()
	gate := access.NewGate(
		fakeWorkspaces{workspaceID: {ID: workspaceID, OwnerID: uuid.New()}},
		fakeMembers{},
	)

	err := gate.CheckWorkspaceAccess(context.Background(), workspaceID, uuid.New(), model.RoleViewer)

	assert.ErrorIs(t, err, access.ErrWorkspaceAccessDenied)
}
