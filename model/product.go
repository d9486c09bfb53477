package model

import (
	"time"

	"gorm.io/datatypes"
)

// Product is a catalog item that order lines refer to
type Product struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Code        string  `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	Category    string  `gorm:"type:varchar(100);not null;index" json:"category"`
	Subcategory string  `gorm:"type:varchar(100)" json:"subcategory,omitempty"`
	Price       float64 `gorm:"not null" json:"price"`
	Stock       int     `gorm:"not null;default:0" json:"stock"`
	// color, size, material, feature and anything else descriptive
	Attributes datatypes.JSONMap `json:"attributes,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "products"
}
