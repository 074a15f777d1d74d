package services

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/database"
	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/models"
	"github.com/Iznaur18/molhaAptekaFullStackApp/pkg/logger"
)

var (
	ErrEmptyOrder       = errors.New("order must contain at least one item")
	ErrProductsNotFound = errors.New("one or more products not found")
)

// OrderItemInput is one requested line item before pricing.
type OrderItemInput struct {
	ProductID uint
	Quantity  int
}

// CreateOrderInput carries everything the buyer may influence. The total and
// the delivery date are computed server-side.
type CreateOrderInput struct {
	BuyerID         uint
	Items           []OrderItemInput
	DeliveryAddress string
	PaymentMethod   string
	Status          string
}

// CreateOrder prices and persists an order. Every referenced product must
// exist; otherwise nothing is created. The total is the sum of current
// product prices times quantities, regardless of anything the client sent.
func CreateOrder(input CreateOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	var buyer models.User
	if err := database.DB.First(&buyer, input.BuyerID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	// Deduplicated id set for the price lookup.
	productIDs := make([]uint, 0, len(input.Items))
	seen := make(map[uint]bool, len(input.Items))
	for _, item := range input.Items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			productIDs = append(productIDs, item.ProductID)
		}
	}

	var products []models.Product
	if err := database.DB.Where("id IN ?", productIDs).Find(&products).Error; err != nil {
		return nil, err
	}
	if len(products) != len(productIDs) {
		return nil, ErrProductsNotFound
	}

	priceByID := make(map[uint]float64, len(products))
	for _, p := range products {
		priceByID[p.ID] = p.Price
	}

	var total float64
	orderItems := make([]models.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}
		price := priceByID[item.ProductID]
		total += price * float64(quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  quantity,
			UnitPrice: price,
		})
	}

	order := models.Order{
		BuyerID:         input.BuyerID,
		Items:           orderItems,
		TotalAmount:     total,
		DeliveryAddress: input.DeliveryAddress,
		DeliveryDate:    time.Now(),
		PaymentMethod:   input.PaymentMethod,
		Status:          input.Status,
	}

	if err := database.DB.Create(&order).Error; err != nil {
		return nil, err
	}

	logger.Log.Info("order created",
		zap.Uint("order_id", order.ID),
		zap.Uint("buyer_id", input.BuyerID),
		zap.Float64("total", total),
		zap.Int("items", len(orderItems)),
	)

	var created models.Order
	if err := database.DB.Preload("Items.Product").First(&created, order.ID).Error; err != nil {
		return nil, err
	}
	created.Buyer = &buyer
	return &created, nil
}

// ListOrdersByBuyer returns the buyer's orders, newest first. The orders
// table is the single source of truth for order history; there is no
// back-reference list on the user document.
func ListOrdersByBuyer(buyerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := database.DB.
		Where("buyer_id = ?", buyerID).
		Preload("Items.Product").
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}

// ListAllOrders returns one page of all orders with buyer identity attached.
// Admin surface.
func ListAllOrders(page, limit int) ([]models.Order, int64, error) {
	var total int64
	if err := database.DB.Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	offset := (page - 1) * limit
	err := database.DB.
		Preload("Items.Product").
		Preload("Buyer").
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error
	return orders, total, err
}
