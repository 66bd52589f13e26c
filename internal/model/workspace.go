package model

import (
	"time"

	"github.com/google/uuid"
)

type Workspace struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string    `gorm:"not null"`
	Description string
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	IsPublic    bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Owner User `gorm:"foreignKey:OwnerID"`
}

// WorkspaceMember представляет участника рабочего пространства с его ролью
type WorkspaceMember struct {
	ID          uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	WorkspaceID uuid.UUID     `gorm:"type:uuid;not null;index:idx_workspace_user,unique"`
	UserID      uuid.UUID     `gorm:"type:uuid;not null;index:idx_workspace_user,unique"`
	Role        WorkspaceRole `gorm:"not null;default:'viewer'"`
	CreatedAt   time.Time     `gorm:"autoCreateTime"`

	Workspace Workspace `gorm:"foreignKey:WorkspaceID"`
	User      User      `gorm:"foreignKey:UserID"`
}

type WorkspaceRole string

// Роли пользователей в рабочем пространстве
const (
	RoleViewer WorkspaceRole = "viewer" // может только просматривать
	RoleEditor WorkspaceRole = "editor" // может редактировать содержимое
	RoleAdmin  WorkspaceRole = "admin"  // управляет участниками и политиками
	RoleOwner  WorkspaceRole = "owner"  // владелец пространства
)
