package product

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/middleware"
	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/services"
	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/utils"
)

// Create godoc
// @Summary Create a product
// @Description The seller is always the authenticated user.
// @Tags product
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body CreateProductRequest true "Product"
// @Success 201 {object} utils.Response{data=ProductResponse}
// @Failure 400 {object} utils.Response
// @Router /products [post]
func Create(c *gin.Context) {
	seller, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	var req CreateProductRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	p, err := services.CreateProduct(seller.ID, req.Name, req.Description, req.Price, req.Category, isAvailable)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCategory) {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
			return
		}
		utils.InternalError(c, err, "Failed to create product")
		return
	}

	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "Product created successfully", NewProductResponse(p)))
}

// List godoc
// @Summary List the catalog
// @Tags product
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page, max 100" default(10)
// @Success 200 {object} utils.Response{data=ProductListResponse}
// @Router /products [get]
func List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	products, total, err := services.ListProducts(page, limit)
	if err != nil {
		utils.InternalError(c, err, "Failed to fetch products")
		return
	}

	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, NewProductResponse(&products[i]))
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Products retrieved successfully", ProductListResponse{
		Products: items,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}))
}

// ListMine godoc
// @Summary List the authenticated seller's products
// @Tags product
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response
// @Router /products/mine [get]
func ListMine(c *gin.Context) {
	seller, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	products, err := services.ListProductsBySeller(seller.ID)
	if err != nil {
		utils.InternalError(c, err, "Failed to fetch products")
		return
	}

	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, NewProductResponse(&products[i]))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Products retrieved successfully", gin.H{"products": items}))
}
