package model

import (
	"time"

	"github.com/google/uuid"
)

// ListDefinition описывает пользовательский список рабочего пространства
type ListDefinition struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	WorkspaceID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"not null"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt   time.Time

	Workspace Workspace `gorm:"foreignKey:WorkspaceID"`
}
