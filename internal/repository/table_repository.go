package repository

import (
	"context"
	"errors"

	"workhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TableRepository struct {
	db *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{db: db}
}

func (r *TableRepository) Create(ctx context.Context, table *model.TableDefinition) error {
	return r.db.WithContext(ctx).Create(table).Error
}

func (r *TableRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TableDefinition, error) {
	var table model.TableDefinition
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&table).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &table, nil
}

func (r *TableRepository) GetByWorkspaceID(ctx context.Context, workspaceID uuid.UUID) ([]model.TableDefinition, error) {
	var tables []model.TableDefinition
	err := r.db.WithContext(ctx).Where("workspace_id = ?", workspaceID).Find(&tables).Error
	return tables, err
}

func (r *TableRepository) Update(ctx context.Context, table *model.TableDefinition) error {
	return r.db.WithContext(ctx).Save(table).Error
}

// Delete removes a table and prunes the access rules bound to it
func (r *TableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.TableDefinition{}, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Where("resource_type = ? AND resource_id = ?", model.ResourceTable, id).
			Delete(&model.AccessRule{}).Error
	})
}
