package services

import (
	"errors"

	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/database"
	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/models"
)

var ErrInvalidCategory = errors.New("invalid product category")

var productCategories = map[string]bool{
	models.ProductCategoryMedicine:  true,
	models.ProductCategoryCosmetics: true,
	models.ProductCategoryHygiene:   true,
	models.ProductCategoryVitamins:  true,
	models.ProductCategoryOther:     true,
}

// CreateProduct persists a product owned by the authenticated seller.
func CreateProduct(sellerID uint, name, description string, price float64, category string, isAvailable bool) (*models.Product, error) {
	var seller models.User
	if err := database.DB.First(&seller, sellerID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	if category == "" {
		category = models.ProductCategoryOther
	}
	if !productCategories[category] {
		return nil, ErrInvalidCategory
	}

	product := models.Product{
		Name:        name,
		Description: description,
		Price:       price,
		SellerID:    sellerID,
		Category:    category,
		IsAvailable: isAvailable,
	}
	if err := database.DB.Create(&product).Error; err != nil {
		return nil, err
	}

	product.Seller = &seller
	return &product, nil
}

// ListProducts returns one catalog page, newest first, with seller identity
// attached, plus the total product count.
func ListProducts(page, limit int) ([]models.Product, int64, error) {
	var total int64
	if err := database.DB.Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	offset := (page - 1) * limit
	err := database.DB.
		Preload("Seller").
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&products).Error
	return products, total, err
}

// ListProductsBySeller returns every product owned by the given seller.
func ListProductsBySeller(sellerID uint) ([]models.Product, error) {
	var products []models.Product
	err := database.DB.Where("seller_id = ?", sellerID).Find(&products).Error
	return products, err
}
