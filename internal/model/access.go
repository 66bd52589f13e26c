package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Типы ресурсов, защищаемых системой контроля доступа
type ResourceType string

const (
	ResourceWorkspace ResourceType = "workspace"
	ResourceBoard     ResourceType = "board"
	ResourceColumn    ResourceType = "column"
	ResourceCard      ResourceType = "card"
	ResourceTable     ResourceType = "table"
	ResourceList      ResourceType = "list"
)

func (t ResourceType) Valid() bool {
	switch t {
	case ResourceWorkspace, ResourceBoard, ResourceColumn, ResourceCard, ResourceTable, ResourceList:
		return true
	}
	return false
}

// Типы разрешений. Политика перечисляет выдаваемые разрешения явно:
// admin НЕ подразумевает остальные при проверке.
type PermissionType string

const (
	PermissionRead   PermissionType = "read"
	PermissionWrite  PermissionType = "write"
	PermissionDelete PermissionType = "delete"
	PermissionManage PermissionType = "manage"
	PermissionAdmin  PermissionType = "admin"
	PermissionCustom PermissionType = "custom"
)

// Типы субъектов, к которым привязываются правила доступа
type SubjectType string

const (
	SubjectUser  SubjectType = "user"
	SubjectGroup SubjectType = "group"
)

// PermissionSet хранится в jsonb-колонке как массив строк
type PermissionSet []PermissionType

func (s PermissionSet) Contains(p PermissionType) bool {
	for _, have := range s {
		if have == p {
			return true
		}
	}
	return false
}

func (s PermissionSet) Value() (driver.Value, error) {
	if s == nil {
		s = PermissionSet{}
	}
	return json.Marshal(s)
}

func (s *PermissionSet) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	raw, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("permission set: unsupported column type")
		}
		raw = []byte(str)
	}
	return json.Unmarshal(raw, s)
}

// JSONMap хранит условия политики и атрибуты правила в jsonb-колонке
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		m = JSONMap{}
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	raw, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("json map: unsupported column type")
		}
		raw = []byte(str)
	}
	return json.Unmarshal(raw, m)
}

// AccessPolicy описывает именованный набор разрешений и условий с приоритетом.
// WorkspaceID == nil означает глобальную политику, действующую во всех
// рабочих пространствах.
type AccessPolicy struct {
	ID           uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name         string        `gorm:"not null"`
	Description  string
	ResourceType ResourceType  `gorm:"not null;index"`
	Permissions  PermissionSet `gorm:"type:jsonb;not null"`
	Conditions   JSONMap       `gorm:"type:jsonb"`
	Priority     int           `gorm:"not null;default:0"`
	IsActive     bool          `gorm:"not null;default:true"`
	IsSystem     bool          `gorm:"not null;default:false"`
	OwnerID      *uuid.UUID    `gorm:"type:uuid"`
	WorkspaceID  *uuid.UUID    `gorm:"type:uuid;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Owner     *User      `gorm:"foreignKey:OwnerID"`
	Workspace *Workspace `gorm:"foreignKey:WorkspaceID"`
}

func (AccessPolicy) TableName() string { return "access_policies" }

// AccessRule привязывает политику к конкретному ресурсу и субъекту.
// Правило с IsPublic применяется к любому субъекту.
type AccessRule struct {
	ID           uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	PolicyID     uuid.UUID    `gorm:"type:uuid;not null;index"`
	ResourceID   uuid.UUID    `gorm:"type:uuid;not null;index:idx_rule_resource"`
	ResourceType ResourceType `gorm:"not null;index:idx_rule_resource"`
	SubjectID    uuid.UUID    `gorm:"type:uuid;not null;index"`
	SubjectType  SubjectType  `gorm:"not null;default:'user'"`
	Attributes   JSONMap      `gorm:"type:jsonb"`
	IsActive     bool         `gorm:"not null;default:true"`
	IsPublic     bool         `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Policy AccessPolicy `gorm:"foreignKey:PolicyID;constraint:OnDelete:CASCADE"`
}

func (AccessRule) TableName() string { return "access_rules" }
