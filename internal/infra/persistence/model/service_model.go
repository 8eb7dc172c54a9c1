package model

import (
	"time"

	"github.com/google/uuid"
)

// ServiceModel mirrors the 'services' table.
// The lifecycle state is persisted as the is_template / is_approved pair.
// Neither flag has a column default, so GORM always writes an explicit false on insert.
type ServiceModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Title            string     `gorm:"type:varchar(200);not null"`
	Description      string     `gorm:"type:text"`
	CategoryID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	AccessTier       string     `gorm:"type:varchar(16);not null;check:chk_services_access_tier,access_tier IN ('free','partial','premium')"`
	IsTemplate       bool       `gorm:"not null;index"`
	IsApproved       bool       `gorm:"not null"`
	CreatedByUserID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	ApprovedByUserID *uuid.UUID `gorm:"type:uuid"`
	ApprovedOn       *time.Time
	ViewsCount       int64      `gorm:"not null;default:0"`
	CreatedOn        time.Time  `gorm:"not null"`
	ModifiedOn       time.Time  `gorm:"not null"`

	Category  *CategoryModel  `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	Favorites []FavoriteModel `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE"`
	Reviews   []ReviewModel   `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (ServiceModel) TableName() string {
	return "services"
}

// CategoryModel mirrors the 'categories' table.
type CategoryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// FavoriteModel mirrors the 'favorites' table. The composite key enforces one row per (user, service).
type FavoriteModel struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ServiceID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (FavoriteModel) TableName() string {
	return "favorites"
}

// ReviewModel mirrors the 'reviews' table.
type ReviewModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ServiceID uuid.UUID `gorm:"type:uuid;not null;index"`
	Rating    int       `gorm:"type:smallint;not null;check:chk_reviews_rating,rating BETWEEN 1 AND 5"`
	Comment   string    `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}

// All lists every model in dependency order, for migrations and code generation.
func All() []any {
	return []any{
		&UserModel{},
		&UserRoleModel{},
		&CategoryModel{},
		&ServiceModel{},
		&FavoriteModel{},
		&ReviewModel{},
	}
}
