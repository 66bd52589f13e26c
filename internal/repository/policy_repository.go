package repository

import (
	"context"
	"errors"

	"workhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PolicyRepository struct {
	db *gorm.DB
}

func NewPolicyRepository(db *gorm.DB) *PolicyRepository {
	return &PolicyRepository{db: db}
}

func (r *PolicyRepository) Create(ctx context.Context, policy *model.AccessPolicy) error {
	return r.db.WithContext(ctx).Create(policy).Error
}

func (r *PolicyRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.AccessPolicy, error) {
	var policy model.AccessPolicy
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&policy).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &policy, nil
}

// Update сохраняет политику; системные политики не редактируются.
// Тип ресурса после создания не меняется: на него завязаны правила
// политики, и смена типа молча оторвала бы их от ресурсов.
func (r *PolicyRepository) Update(ctx context.Context, policy *model.AccessPolicy) error {
	if policy.IsSystem {
		return ErrSystemPolicyImmutable
	}
	result := r.db.WithContext(ctx).
		Model(&model.AccessPolicy{}).
		Where("id = ? AND is_system = false", policy.ID).
		Select("name", "description", "permissions", "conditions", "priority", "is_active").
		Updates(policy)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPolicyNotFound
	}
	return nil
}

// Delete удаляет политику вместе с ее правилами (каскад в одной
// транзакции). Системная политика не удаляется: ни она, ни правила
// не затрагиваются.
func (r *PolicyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var policy model.AccessPolicy
		if err := tx.Where("id = ?", id).First(&policy).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPolicyNotFound
			}
			return err
		}

		if policy.IsSystem {
			return ErrSystemPolicyImmutable
		}

		if err := tx.Where("policy_id = ?", id).Delete(&model.AccessRule{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.AccessPolicy{}, "id = ?", id).Error
	})
}

// FindApplicable returns active policies matching the resource type whose
// scope covers the workspace: workspace-local policies of that workspace
// plus global ones. Ordering is deterministic: priority descending, ties
// broken by id ascending.
func (r *PolicyRepository) FindApplicable(ctx context.Context, resourceType model.ResourceType, workspaceID uuid.UUID) ([]model.AccessPolicy, error) {
	var policies []model.AccessPolicy
	err := r.db.WithContext(ctx).
		Where("is_active = true AND resource_type = ?", resourceType).
		Where("workspace_id IS NULL OR workspace_id = ?", workspaceID).
		Order("priority DESC, id ASC").
		Find(&policies).Error
	return policies, err
}

// FindSystem возвращает системные политики (seed bootstrap)
func (r *PolicyRepository) FindSystem(ctx context.Context) ([]model.AccessPolicy, error) {
	var policies []model.AccessPolicy
	err := r.db.WithContext(ctx).
		Where("is_system = true").
		Order("priority DESC, id ASC").
		Find(&policies).Error
	return policies, err
}

// GetByWorkspaceID возвращает политики рабочего пространства
func (r *PolicyRepository) GetByWorkspaceID(ctx context.Context, workspaceID uuid.UUID) ([]model.AccessPolicy, error) {
	var policies []model.AccessPolicy
	err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("priority DESC, id ASC").
		Find(&policies).Error
	return policies, err
}
