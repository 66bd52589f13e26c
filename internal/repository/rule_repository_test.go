package repository_test

import (
	"context"
	"testing"

	"workhub/internal/model"
	"workhub/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestRuleRepository_Create_ResourceTypeMismatch(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	ruleRepo := repository.NewRuleRepository(gormDB)
	policyID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "access_policies" WHERE id = .* LIMIT \$\d+`).
		WithArgs(policyID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "resource_type"}).
			AddRow(policyID.String(), "board"))
	mock.ExpectRollback()

	rule := &model.AccessRule{
		PolicyID:     policyID,
		ResourceID:   uuid.New(),
		ResourceType: model.ResourceCard, // политика определена для досок
		SubjectID:    uuid.New(),
		SubjectType:  model.SubjectUser,
		IsActive:     true,
	}

	// Act
	err := ruleRepo.Create(context.Background(), rule)

	// Assert
	assert.ErrorIs(t, err, repository.ErrRuleResourceTypeMismatch)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRuleRepository_Create_PolicyMissing(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	ruleRepo := repository.NewRuleRepository(gormDB)
	policyID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "access_policies" WHERE id = .* LIMIT \$\d+`).
		WithArgs(policyID, 1).
		WillReturnError(gorm.ErrRecordNotFound)
	mock.ExpectRollback()

	rule := &model.AccessRule{
		PolicyID:     policyID,
		ResourceID:   uuid.New(),
		ResourceType: model.ResourceBoard,
		SubjectID:    uuid.New(),
		SubjectType:  model.SubjectUser,
	}

	// Act
	err := ruleRepo.Create(context.Background(), rule)

	// Assert
	assert.ErrorIs(t, err, repository.ErrPolicyNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRuleRepository_Delete_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	ruleRepo := repository.NewRuleRepository(gormDB)
	ruleID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "access_rules" WHERE id = `).
		WithArgs(ruleID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	// Act
	err := ruleRepo.Delete(context.Background(), ruleID)

	// Assert
	assert.ErrorIs(t, err, repository.ErrRuleNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRuleRepository_FindForResource(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	ruleRepo := repository.NewRuleRepository(gormDB)
	resourceID := uuid.New()
	subjectID := uuid.New()
	groupID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "access_rules" WHERE \(is_active = true AND resource_type = .* AND resource_id = .*\) .* ORDER BY created_at DESC, id DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "policy_id", "resource_id", "resource_type", "subject_id", "subject_type", "is_active", "is_public"}).
			AddRow(uuid.New().String(), uuid.New().String(), resourceID.String(), "board", subjectID.String(), "user", true, false))

	// Act
	rules, err := ruleRepo.FindForResource(context.Background(), model.ResourceBoard, resourceID, subjectID, []uuid.UUID{groupID})

	// Assert
	assert.NoError(t, err)
	assert.Len(t, rules, 1)
	assert.Equal(t, subjectID, rules[0].SubjectID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
