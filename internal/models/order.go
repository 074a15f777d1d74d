package models

import "time"

// Order references the buyer and a list of priced line items. TotalAmount is
// always computed server-side from current product prices, never taken from
// the client.
type Order struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	BuyerID         uint        `gorm:"not null;index"`
	Items           []OrderItem `gorm:"foreignKey:OrderID"`
	TotalAmount     float64     `gorm:"not null"`
	DeliveryAddress string      `gorm:"not null"`
	DeliveryDate    time.Time   `gorm:"not null"`
	PaymentMethod   string      `gorm:"size:64;not null"`
	Status          string      `gorm:"size:64;not null"`

	Buyer *User `gorm:"foreignKey:BuyerID"`
}

type OrderItem struct {
	ID        uint `gorm:"primarykey"`
	OrderID   uint `gorm:"not null;index"`
	ProductID uint `gorm:"not null;index"`
	Quantity  int  `gorm:"not null"`
	// Unit price captured at order time, so later catalog price changes do
	// not rewrite order history.
	UnitPrice float64 `gorm:"not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
