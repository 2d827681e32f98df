package model

import (
	"time"

	"gorm.io/gorm"
)

// Warehouse represents a storage location. SerieWarehouse is a sequential
// per-tenant serial assigned at creation time.
type Warehouse struct {
	ID              uint             `json:"id" gorm:"primaryKey"`
	Name            string           `json:"name" gorm:"type:varchar(255);not null"`
	Address         string           `json:"address" gorm:"type:varchar(255)"`
	IsActive        bool             `json:"is_active" gorm:"default:true"`
	SerieWarehouse  int              `json:"serie_warehouse" gorm:"index"`
	EntityID        *uint            `json:"entity_id,omitempty" gorm:"index"`
	Users           []User           `json:"users,omitempty" gorm:"many2many:users_warehouses"`
	InventorySheets []InventorySheet `json:"inventory_sheets,omitempty" gorm:"foreignKey:WarehouseID"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	DeletedAt       gorm.DeletedAt   `json:"-" gorm:"index"`
}
