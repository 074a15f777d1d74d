package order

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/middleware"
	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/services"
	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/utils"
)

// Create godoc
// @Summary Create an order
// @Description Buyer comes from the token; the total is computed from
// current product prices.
// @Tags order
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body CreateOrderRequest true "Order"
// @Success 201 {object} utils.Response{data=OrderResponse}
// @Failure 400 {object} utils.Response
// @Router /orders [post]
func Create(c *gin.Context) {
	buyer, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	var req CreateOrderRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	items := make([]services.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, services.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	o, err := services.CreateOrder(services.CreateOrderInput{
		BuyerID:         buyer.ID,
		Items:           items,
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   req.PaymentMethod,
		Status:          req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyOrder), errors.Is(err, services.ErrProductsNotFound):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "User not found"))
		default:
			utils.InternalError(c, err, "Failed to create order")
		}
		return
	}

	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "Order created successfully", NewOrderResponse(o)))
}

// ListMine godoc
// @Summary List the authenticated buyer's orders
// @Tags order
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response
// @Router /orders [get]
func ListMine(c *gin.Context) {
	buyer, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	orders, err := services.ListOrdersByBuyer(buyer.ID)
	if err != nil {
		utils.InternalError(c, err, "Failed to fetch orders")
		return
	}

	items := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, NewOrderResponse(&orders[i]))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Orders retrieved successfully", gin.H{"orders": items}))
}
