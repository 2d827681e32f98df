package model

import (
	"time"

	"gorm.io/gorm"
)

// UserRole is the role a user holds across the whole tenant
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleUser    UserRole = "user"
)

// User represents the user model stored in each tenant's database
type User struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	Username       string          `json:"username" gorm:"type:varchar(100);uniqueIndex"`
	Password       string          `json:"-" gorm:"type:varchar(255)"`
	Role           UserRole        `json:"role" gorm:"type:varchar(20);default:'user'"`
	TenantIDs      TenantIDList    `json:"tenant_ids" gorm:"type:text"`
	EntityID       *uint           `json:"entity_id,omitempty" gorm:"index"`
	EntityRelation *BusinessEntity `json:"entity_relation,omitempty" gorm:"foreignKey:EntityID"`
	Warehouses     []Warehouse     `json:"warehouses,omitempty" gorm:"many2many:users_warehouses"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `json:"-" gorm:"index"`
}
