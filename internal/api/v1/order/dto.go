package order

import (
	"time"

	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/models"
)

type OrderItemRequest struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// CreateOrderRequest deliberately has no total field: the total is always
// computed server-side from current prices.
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" binding:"required"`
	DeliveryAddress string             `json:"deliveryAddress" binding:"required"`
	PaymentMethod   string             `json:"paymentMethod" binding:"required"`
	Status          string             `json:"status"`
}

type OrderItemResponse struct {
	ProductID   uint    `json:"productId"`
	ProductName string  `json:"productName"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
	SellerID    uint    `json:"sellerId,omitempty"`
}

type BuyerInfo struct {
	ID       uint    `json:"id"`
	Username *string `json:"userName,omitempty"`
	Email    *string `json:"email,omitempty"`
}

type OrderResponse struct {
	ID              uint                `json:"id"`
	Buyer           *BuyerInfo          `json:"buyer,omitempty"`
	Items           []OrderItemResponse `json:"items"`
	TotalAmount     float64             `json:"totalAmount"`
	DeliveryAddress string              `json:"deliveryAddress"`
	DeliveryDate    time.Time           `json:"deliveryDate"`
	PaymentMethod   string              `json:"paymentMethod"`
	Status          string              `json:"status"`
	CreatedAt       time.Time           `json:"createdAt"`
}

func NewOrderResponse(o *models.Order) OrderResponse {
	resp := OrderResponse{
		ID:              o.ID,
		TotalAmount:     o.TotalAmount,
		DeliveryAddress: o.DeliveryAddress,
		DeliveryDate:    o.DeliveryDate,
		PaymentMethod:   o.PaymentMethod,
		Status:          o.Status,
		CreatedAt:       o.CreatedAt,
	}
	if o.Buyer != nil {
		resp.Buyer = &BuyerInfo{
			ID:       o.Buyer.ID,
			Username: o.Buyer.Username,
			Email:    o.Buyer.Email,
		}
	}
	resp.Items = make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		ir := OrderItemResponse{
			ProductID: item.ProductID,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Subtotal:  item.UnitPrice * float64(item.Quantity),
		}
		if item.Product != nil {
			ir.ProductName = item.Product.Name
			ir.SellerID = item.Product.SellerID
		}
		resp.Items = append(resp.Items, ir)
	}
	return resp
}
