package models

import "time"

const (
	ProductCategoryMedicine  = "medicine"
	ProductCategoryCosmetics = "cosmetics"
	ProductCategoryHygiene   = "hygiene"
	ProductCategoryVitamins  = "vitamins"
	ProductCategoryOther     = "other"
)

type Product struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name        string  `gorm:"not null;size:255"`
	Description string
	Price       float64 `gorm:"not null"`
	SellerID    uint    `gorm:"not null;index"`
	Category    string  `gorm:"size:32;not null;default:'other'"`
	IsAvailable bool    `gorm:"not null;default:true"`

	Seller *User `gorm:"foreignKey:SellerID"`
}
