package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"workhub/internal/access"
	"workhub/internal/handler"
	"workhub/internal/middleware"
	"workhub/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupWorkspaceTest собирает роутер с обработчиком пространств поверх
// sqlmock; userID кладется в контекст вместо JWT middleware
func setupWorkspaceTest(t *testing.T, userID uuid.UUID) (*gin.Engine, sqlmock.Sqlmock) {
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	workspaceRepo := repository.NewWorkspaceRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	policyRepo := repository.NewPolicyRepository(gormDB)
	ruleRepo := repository.NewRuleRepository(gormDB)

	gate := access.NewGate(workspaceRepo, workspaceRepo)
	bootstrap := access.NewBootstrap(policyRepo, ruleRepo)
	workspaceHandler := handler.NewWorkspaceHandler(workspaceRepo, userRepo, gate, bootstrap)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(middleware.UserIDKey, userID) })
	r.GET("/workspaces/:id", workspaceHandler.GetByID)

	return r, mock
}

func workspaceRows(id, ownerID uuid.UUID, isPublic bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "description", "owner_id", "is_public"}).
		AddRow(id.String(), "Demo", "", ownerID.String(), isPublic)
}

func TestWorkspaceGetByID_OwnerSeesOwnerRole(t *testing.T) {
	// Arrange
	userID := uuid.New()
	workspaceID := uuid.New()
	r, mock := setupWorkspaceTest(t, userID)

	// Проверка доступа, выборка пространства и определение роли читают
	// пространство по отдельности
	mock.ExpectQuery(`SELECT .* FROM "workspaces" WHERE id = .* LIMIT \$\d+`).
		WithArgs(workspaceID, 1).
		WillReturnRows(workspaceRows(workspaceID, userID, false))
	mock.ExpectQuery(`SELECT .* FROM "workspaces" WHERE id = .* LIMIT \$\d+`).
		WithArgs(workspaceID, 1).
		WillReturnRows(workspaceRows(workspaceID, userID, false))
	mock.ExpectQuery(`SELECT .* FROM "workspaces" WHERE id = .* LIMIT \$\d+`).
		WithArgs(workspaceID, 1).
		WillReturnRows(workspaceRows(workspaceID, userID, false))

	// Act
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/workspaces/"+workspaceID.String(), nil)
	r.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "owner", response["current_role"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceGetByID_MemberSeesMembershipRole(t *testing.T) {
	// Arrange
	userID := uuid.New()
	ownerID := uuid.New()
	workspaceID := uuid.New()
	r, mock := setupWorkspaceTest(t, userID)

	memberRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "workspace_id", "user_id", "role"}).
			AddRow(uuid.New().String(), workspaceID.String(), userID.String(), "editor")
	}

	// Проверка доступа: пространство чужое, роль берется из членства
	mock.ExpectQuery(`SELECT .* FROM "workspaces" WHERE id = .* LIMIT \$\d+`).
		WithArgs(workspaceID, 1).
		WillReturnRows(workspaceRows(workspaceID, ownerID, false))
	mock.ExpectQuery(`SELECT .* FROM "workspace_members" WHERE workspace_id = .* AND user_id = .* LIMIT \$\d+`).
		WithArgs(workspaceID, userID, 1).
		WillReturnRows(memberRows())
	// Выборка пространства для ответа
	mock.ExpectQuery(`SELECT .* FROM "workspaces" WHERE id = .* LIMIT \$\d+`).
		WithArgs(workspaceID, 1).
		WillReturnRows(workspaceRows(workspaceID, ownerID, false))
	// Определение роли для поля current_role
	mock.ExpectQuery(`SELECT .* FROM "workspaces" WHERE id = .* LIMIT \$\d+`).
		WithArgs(workspaceID, 1).
		WillReturnRows(workspaceRows(workspaceID, ownerID, false))
	mock.ExpectQuery(`SELECT .* FROM "workspace_members" WHERE workspace_id = .* AND user_id = .* LIMIT \$\d+`).
		WithArgs(workspaceID, userID, 1).
		WillReturnRows(memberRows())

	// Act
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/workspaces/"+workspaceID.String(), nil)
	r.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "editor", response["current_role"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
