package repository_test

import (
	"context"
	"testing"
	"time"

	"workhub/internal/model"
	"workhub/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
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
	
	return gormDB, mock
}

func TestUserRepository_Create(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)
	
	userID := uuid.New()
	user := &model.User{
		ID:             userID,
		Email:          "test@example.com",
		HashedPassword: "hashed_password",
		Name:           "Test User",
	}
	
	// Ожидаем SQL запрос на создание пользователя
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WithArgs(user.Email, user.HashedPassword, user.Name, false, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(userID.String()))
	mock.ExpectCommit()
	
	// Act
	err := userRepo.Create(context.Background(), user)
	
	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_Found(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)
	
	userID := uuid.New()
	email := "test@example.com"
	
	// Ожидаем SQL запрос на поиск пользователя по email
	mock.ExpectQuery(`SELECT .* FROM "users" WHERE email = .* LIMIT \$\d+`).
		WithArgs(email, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "hashed_password", "name", "is_admin", "created_at"}).
			AddRow(userID.String(), email, "hashed_password", "Test User", false, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)))
	
	// Act
	user, err := userRepo.FindByEmail(context.Background(), email)
	
	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, email, user.Email)
	assert.Equal(t, "Test User", user.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)
	
	email := "nonexistent@example.com"
	
	// Ожидаем SQL запрос на поиск пользователя по email - не найден
	mock.ExpectQuery(`SELECT .* FROM "users" WHERE email = .* LIMIT \$\d+`).
		WithArgs(email, 1).
		WillReturnError(gorm.ErrRecordNotFound)
	
	// Act
	user, err := userRepo.FindByEmail(context.Background(), email)
	
	// Assert
	assert.NoError(t, err) // Метод не возвращает ошибку при отсутствии записи
	assert.Nil(t, user)    // Но возвращает nil пользователя
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_IsPlatformAdmin(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	userID := uuid.New()

	// Ожидаем выборку одного флага, а не всей записи пользователя
	mock.ExpectQuery(`SELECT "is_admin" FROM "users" WHERE id = `).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"is_admin"}).AddRow(true))

	// Act
	isAdmin, err := userRepo.IsPlatformAdmin(context.Background(), userID)

	// Assert
	assert.NoError(t, err)
	assert.True(t, isAdmin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_IsPlatformAdmin_UnknownUser(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	userID := uuid.New()

	// Пустая выборка: флаг остается false, ошибки нет
	mock.ExpectQuery(`SELECT "is_admin" FROM "users" WHERE id = `).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"is_admin"}))

	// Act
	isAdmin, err := userRepo.IsPlatformAdmin(context.Background(), userID)

	// Assert
	assert.NoError(t, err)
	assert.False(t, isAdmin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_Error(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)
	
	email := "test@example.com"
	
	// Ожидаем SQL запрос на поиск пользователя по email - произошла ошибка БД
	mock.ExpectQuery(`SELECT .* FROM "users" WHERE email = .* LIMIT \$\d+`).
		WithArgs(email, 1).
		WillReturnError(assert.AnError)
	
	// Act
	user, err := userRepo.FindByEmail(context.Background(), email)
	
	// Assert
	assert.Error(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}