package model

import (
	"time"

	"gorm.io/gorm"
)

// BusinessEntity represents a customer or supplier company. Document type and
// number are unique as a pair within one tenant's database.
type BusinessEntity struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Name       string         `json:"name" gorm:"type:varchar(255);not null"`
	DocType    string         `json:"doc_type" gorm:"type:varchar(20);not null;uniqueIndex:idx_entities_doc"`
	DocNumber  string         `json:"doc_number" gorm:"type:varchar(50);not null;uniqueIndex:idx_entities_doc"`
	Address    string         `json:"address" gorm:"type:varchar(255)"`
	Phone      string         `json:"phone,omitempty" gorm:"type:varchar(30)"`
	Mobile     string         `json:"mobile,omitempty" gorm:"type:varchar(30)"`
	User       *User          `json:"user,omitempty" gorm:"foreignKey:EntityID"`
	Warehouses []Warehouse    `json:"warehouses,omitempty" gorm:"foreignKey:EntityID"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}
