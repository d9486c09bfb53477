package model

import "time"

const OrderStatusNew = "NEW"

// Order groups one or more product lines for a customer
type Order struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	OrderNumber  string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"order_number"`
	CustomerName string      `gorm:"type:varchar(255);not null;index" json:"customer_name"`
	Status       string      `gorm:"type:varchar(30);not null;default:'NEW'" json:"status"`
	OrderDate    time.Time   `gorm:"not null;index" json:"order_date"`
	TotalPrice   float64     `gorm:"not null;default:0" json:"total_price"`
	Items        []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// TableName specifies the table name for Order
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a single product line; TotalPrice is quantity * unit price
type OrderItem struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	OrderID    uint    `gorm:"not null;index" json:"order_id"`
	ProductID  uint    `gorm:"not null;index" json:"product_id"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	UnitPrice  float64 `gorm:"not null" json:"unit_price"`
	TotalPrice float64 `gorm:"not null" json:"total_price"`
}

// TableName specifies the table name for OrderItem
func (OrderItem) TableName() string {
	return "order_items"
}
