package repository

import (
	"context"
	"errors"

	"workhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListRepository struct {
	db *gorm.DB
}

func NewListRepository(db *gorm.DB) *ListRepository {
	return &ListRepository{db: db}
}

func (r *ListRepository) Create(ctx context.Context, list *model.ListDefinition) error {
	return r.db.WithContext(ctx).Create(list).Error
}

func (r *ListRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ListDefinition, error) {
	var list model.ListDefinition
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &list, nil
}

func (r *ListRepository) GetByWorkspaceID(ctx context.Context, workspaceID uuid.UUID) ([]model.ListDefinition, error) {
	var lists []model.ListDefinition
	err := r.db.WithContext(ctx).Where("workspace_id = ?", workspaceID).Find(&lists).Error
	return lists, err
}

// Delete removes a list and prunes the access rules bound to it
func (r *ListRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.ListDefinition{}, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Where("resource_type = ? AND resource_id = ?", model.ResourceList, id).
			Delete(&model.AccessRule{}).Error
	})
}
