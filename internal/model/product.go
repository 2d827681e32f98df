package model

import (
	"time"

	"gorm.io/gorm"
)

// ProductUnit is the unit a product is counted in
type ProductUnit string

const (
	UnitUnidades   ProductUnit = "unidades"
	UnitCajas      ProductUnit = "cajas"
	UnitPaquetes   ProductUnit = "paquetes"
	UnitLitros     ProductUnit = "litros"
	UnitKilogramos ProductUnit = "kilogramos"
)

// Product represents product master data. Name and unit are unique as a pair,
// the barcode is unique on its own.
type Product struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"type:varchar(255);not null;uniqueIndex:idx_products_name_unit"`
	Unit      ProductUnit    `json:"unit" gorm:"type:varchar(20);default:'unidades';uniqueIndex:idx_products_name_unit"`
	Barcode   string         `json:"barcode" gorm:"type:varchar(100);uniqueIndex"`
	Price     float64        `json:"price" gorm:"type:decimal(10,2)"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
