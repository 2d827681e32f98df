package model

import (
	"time"

	"gorm.io/gorm"
)

// SheetState is the lifecycle state of an inventory sheet
type SheetState string

const (
	SheetRegistered SheetState = "registered"
	SheetFinished   SheetState = "finished"
)

// InventorySheet is a stock movement record issued against one warehouse by one
// user. It owns an ordered list of detail lines.
type InventorySheet struct {
	ID           uint                   `json:"id" gorm:"primaryKey"`
	WarehouseID  uint                   `json:"warehouse_id" gorm:"index;not null"`
	UserID       uint                   `json:"user_id" gorm:"index;not null"`
	EmissionDate time.Time              `json:"emission_date"`
	Serie        string                 `json:"serie" gorm:"type:varchar(20)"`
	SheetNumber  string                 `json:"sheet_number" gorm:"type:varchar(50)"`
	State        SheetState             `json:"state" gorm:"type:varchar(20);default:'registered'"`
	Warehouse    *Warehouse             `json:"warehouse,omitempty" gorm:"foreignKey:WarehouseID"`
	User         *User                  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Details      []InventorySheetDetail `json:"details,omitempty" gorm:"foreignKey:SheetID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
	DeletedAt    gorm.DeletedAt         `json:"-" gorm:"index"`
}

// InventorySheetDetail is one line of an inventory sheet
type InventorySheetDetail struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	SheetID   uint           `json:"sheet_id" gorm:"index;not null"`
	ProductID string         `json:"product_id" gorm:"type:varchar(100)"`
	Quantity  float64        `json:"quantity" gorm:"type:decimal(10,2)"`
	Unit      string         `json:"unit" gorm:"type:varchar(20)"`
	Price     float64        `json:"price" gorm:"type:decimal(10,2)"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// AllModels lists every entity migrated into each tenant database
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&BusinessEntity{},
		&Warehouse{},
		&Product{},
		&InventorySheet{},
		&InventorySheetDetail{},
	}
}
