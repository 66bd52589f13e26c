package access

import (
	"context"

	"github.com/google/uuid"

	"workhub/internal/model"
)

// Lookup interfaces are deliberately narrow: the locator only needs GetByID
// from each store, and repositories return nil, nil for a missing row.

type WorkspaceLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Workspace, error)
}

type BoardLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error)
}

type ColumnLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Column, error)
}

type CardLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Card, error)
}

type TableLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.TableDefinition, error)
}

type ListLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.ListDefinition, error)
}

// Locator разрешает ссылку на ресурс в ID владеющего им рабочего
// пространства, проходя цепочку вложенности: card -> column -> board ->
// workspace. Для самого глубокого ресурса выполняется не более трех
// последовательных чтений.
type Locator struct {
	workspaces WorkspaceLookup
	boards     BoardLookup
	columns    ColumnLookup
	cards      CardLookup
	tables     TableLookup
	lists      ListLookup
}

func NewLocator(
	workspaces WorkspaceLookup,
	boards BoardLookup,
	columns ColumnLookup,
	cards CardLookup,
	tables TableLookup,
	lists ListLookup,
) *Locator {
	return &Locator{
		workspaces: workspaces,
		boards:     boards,
		columns:    columns,
		cards:      cards,
		tables:     tables,
		lists:      lists,
	}
}

// OwningWorkspace returns the workspace id owning the given resource.
// It fails with *ResourceNotFoundError naming the first missing link of
// the containment chain, so callers can produce a precise 404.
func (l *Locator) OwningWorkspace(ctx context.Context, resourceType model.ResourceType, resourceID uuid.UUID) (uuid.UUID, error) {
	switch resourceType {
	case model.ResourceWorkspace:
		workspace, err := l.workspaces.GetByID(ctx, resourceID)
		if err != nil {
			return uuid.Nil, err
		}
		if workspace == nil {
			return uuid.Nil, &ResourceNotFoundError{Type: model.ResourceWorkspace, ID: resourceID}
		}
		return workspace.ID, nil

	case model.ResourceBoard:
		board, err := l.boards.GetByID(ctx, resourceID)
		if err != nil {
			return uuid.Nil, err
		}
		if board == nil {
			return uuid.Nil, &ResourceNotFoundError{Type: model.ResourceBoard, ID: resourceID}
		}
		return board.WorkspaceID, nil

	case model.ResourceColumn:
		column, err := l.columns.GetByID(ctx, resourceID)
		if err != nil {
			return uuid.Nil, err
		}
		if column == nil {
			return uuid.Nil, &ResourceNotFoundError{Type: model.ResourceColumn, ID: resourceID}
		}
		return l.OwningWorkspace(ctx, model.ResourceBoard, column.BoardID)

	case model.ResourceCard:
		card, err := l.cards.GetByID(ctx, resourceID)
		if err != nil {
			return uuid.Nil, err
		}
		if card == nil {
			return uuid.Nil, &ResourceNotFoundError{Type: model.ResourceCard, ID: resourceID}
		}
		return l.OwningWorkspace(ctx, model.ResourceColumn, card.ColumnID)

	case model.ResourceTable:
		table, err := l.tables.GetByID(ctx, resourceID)
		if err != nil {
			return uuid.Nil, err
		}
		if table == nil {
			return uuid.Nil, &ResourceNotFoundError{Type: model.ResourceTable, ID: resourceID}
		}
		return table.WorkspaceID, nil

	case model.ResourceList:
		list, err := l.lists.GetByID(ctx, resourceID)
		if err != nil {
			return uuid.Nil, err
		}
		if list == nil {
			return uuid.Nil, &ResourceNotFoundError{Type: model.ResourceList, ID: resourceID}
		}
		return list.WorkspaceID, nil
	}

	return uuid.Nil, &ResourceNotFoundError{Type: resourceType, ID: resourceID}
}
