// Package model holds the GORM persistence models of the catalog.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
// It is an exported type so it can be used by the GORM Gen tool from other packages.
type UserModel struct {
	ID                      uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email                   string    `gorm:"type:varchar(255);unique;not null"`
	Name                    string    `gorm:"type:varchar(100)"`
	LastServiceCreationDate *time.Time
	CreatedAt               time.Time
	UpdatedAt               time.Time

	Roles []UserRoleModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// UserRoleModel mirrors the 'user_roles' table; one row per granted role.
type UserRoleModel struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role      string    `gorm:"type:varchar(32);primaryKey"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserRoleModel) TableName() string {
	return "user_roles"
}
