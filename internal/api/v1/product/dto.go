package product

import (
	"time"

	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/models"
)

type CreateProductRequest struct {
	Name        string  `json:"productName" binding:"required"`
	Description string  `json:"productDescription"`
	Price       float64 `json:"productPrice" binding:"required,gte=0"`
	Category    string  `json:"productCategory"`
	IsAvailable *bool   `json:"productIsAvailable"`
}

type SellerInfo struct {
	ID       uint    `json:"id"`
	Username *string `json:"userName,omitempty"`
	Email    *string `json:"email,omitempty"`
}

type ProductResponse struct {
	ID          uint        `json:"id"`
	Name        string      `json:"productName"`
	Description string      `json:"productDescription,omitempty"`
	Price       float64     `json:"productPrice"`
	Category    string      `json:"productCategory"`
	IsAvailable bool        `json:"productIsAvailable"`
	Seller      *SellerInfo `json:"productSeller,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

func NewProductResponse(p *models.Product) ProductResponse {
	resp := ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		IsAvailable: p.IsAvailable,
		CreatedAt:   p.CreatedAt,
	}
	if p.Seller != nil {
		resp.Seller = &SellerInfo{
			ID:       p.Seller.ID,
			Username: p.Seller.Username,
			Email:    p.Seller.Email,
		}
	}
	return resp
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type ProductListResponse struct {
	Products   []ProductResponse `json:"products"`
	Pagination Pagination        `json:"pagination"`
}
