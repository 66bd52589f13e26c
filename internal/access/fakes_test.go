package access_test

import (
	"context"

	"workhub/internal/model"

	"github.com/google/uuid"
)

// Фейковые хранилища в памяти, реализующие узкие lookup-интерфейсы ядра

type fakeWorkspaces map[uuid.UUID]*model.Workspace

func (f fakeWorkspaces) GetByID(_ context.Context, id uuid.UUID) (*model.Workspace, error) {
	return f[id], nil
}

type fakeBoards map[uuid.UUID]*model.Board

func (f fakeBoards) GetByID(_ context.Context, id uuid.UUID) (*model.Board, error) {
	return f[id], nil
}

type fakeColumns map[uuid.UUID]*model.Column

func (f fakeColumns) GetByID(_ context.Context, id uuid.UUID) (*model.Column, error) {
	return f[id], nil
}

type fakeCards map[uuid.UUID]*model.Card

func (f fakeCards) GetByID(_ context.Context, id uuid.UUID) (*model.Card, error) {
	return f[id], nil
}

type fakeTables map[uuid.UUID]*model.TableDefinition

func (f fakeTables) GetByID(_ context.Context, id uuid.UUID) (*model.TableDefinition, error) {
	return f[id], nil
}

type fakeLists map[uuid.UUID]*model.ListDefinition

func (f fakeLists) GetByID(_ context.Context, id uuid.UUID) (*model.ListDefinition, error) {
	return f[id], nil
}

type fakeMembers map[uuid.UUID]map[uuid.UUID]*model.WorkspaceMember

func (f fakeMembers) GetMember(_ context.Context, workspaceID, userID uuid.UUID) (*model.WorkspaceMember, error) {
	return f[workspaceID][userID], nil
}

type fakePolicies map[uuid.UUID]*model.AccessPolicy

func (f fakePolicies) GetByID(_ context.Context, id uuid.UUID) (*model.AccessPolicy, error) {
	return f[id], nil
}

// fakeRules отдает правила так же, как репозиторий: правило видно
// субъекту, публичное правило видно всем, групповое видно участникам группы
type fakeRules []model.AccessRule

func (f fakeRules) FindForResource(_ context.Context, resourceType model.ResourceType, resourceID, subjectID uuid.UUID, groupIDs []uuid.UUID) ([]model.AccessRule, error) {
	inGroup := func(id uuid.UUID) bool {
		for _, g := range groupIDs {
			if g == id {
				return true
			}
		}
		return false
	}

	var out []model.AccessRule
	for _, r := range f {
		if !r.IsActive || r.ResourceType != resourceType || r.ResourceID != resourceID {
			continue
		}
		switch {
		case r.IsPublic:
		case r.SubjectType == model.SubjectUser && r.SubjectID == subjectID:
		case r.SubjectType == model.SubjectGroup && inGroup(r.SubjectID):
		default:
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type fakeGroups map[uuid.UUID][]uuid.UUID

func (f fakeGroups) GroupIDsForUser(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return f[userID], nil
}
