package model

import (
	"time"

	"github.com/google/uuid"
)

type Group struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// GroupMember связывает пользователя с группой
type GroupMember struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	GroupID uuid.UUID `gorm:"type:uuid;not null;index:idx_group_user,unique"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index:idx_group_user,unique"`

	Group Group `gorm:"foreignKey:GroupID"`
	User  User  `gorm:"foreignKey:UserID"`
}
