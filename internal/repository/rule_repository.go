package repository

import (
	"context"
	"errors"

	"workhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RuleRepository struct {
	db *gorm.DB
}

func NewRuleRepository(db *gorm.DB) *RuleRepository {
	return &RuleRepository{db: db}
}

// Create validates that the rule's resource type matches its policy
// before inserting: a rule is meaningless without a matching policy.
func (r *RuleRepository) Create(ctx context.Context, rule *model.AccessRule) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var policy model.AccessPolicy
		if err := tx.Where("id = ?", rule.PolicyID).First(&policy).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPolicyNotFound
			}
			return err
		}
		if policy.ResourceType != rule.ResourceType {
			return ErrRuleResourceTypeMismatch
		}
		return tx.Create(rule).Error
	})
}

func (r *RuleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.AccessRule, error) {
	var rule model.AccessRule
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

func (r *RuleRepository) Update(ctx context.Context, rule *model.AccessRule) error {
	result := r.db.WithContext(ctx).
		Model(&model.AccessRule{}).
		Where("id = ?", rule.ID).
		Select("attributes", "is_active", "is_public").
		Updates(rule)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRuleNotFound
	}
	return nil
}

func (r *RuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.AccessRule{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRuleNotFound
	}
	return nil
}

// FindForResource returns active rules for the resource that apply to the
// subject: bound to the user directly, to one of the user's groups, or
// public (is_public applies to every subject).
func (r *RuleRepository) FindForResource(
	ctx context.Context,
	resourceType model.ResourceType,
	resourceID, subjectID uuid.UUID,
	groupIDs []uuid.UUID,
) ([]model.AccessRule, error) {
	query := r.db.WithContext(ctx).
		Where("is_active = true AND resource_type = ? AND resource_id = ?", resourceType, resourceID)

	subjectMatch := r.db.
		Where("subject_type = ? AND subject_id = ?", model.SubjectUser, subjectID).
		Or("is_public = true")
	if len(groupIDs) > 0 {
		subjectMatch = subjectMatch.Or("subject_type = ? AND subject_id IN ?", model.SubjectGroup, groupIDs)
	}

	var rules []model.AccessRule
	err := query.Where(subjectMatch).Order("created_at DESC, id DESC").Find(&rules).Error
	return rules, err
}

// GetByPolicyID возвращает правила, порожденные политикой
func (r *RuleRepository) GetByPolicyID(ctx context.Context, policyID uuid.UUID) ([]model.AccessRule, error) {
	var rules []model.AccessRule
	err := r.db.WithContext(ctx).Where("policy_id = ?", policyID).Find(&rules).Error
	return rules, err
}
