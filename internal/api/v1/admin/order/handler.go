package order

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	orderRoutes "github.com/Iznaur18/molhaAptekaFullStackApp/internal/api/v1/order"
	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/services"
	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/utils"
)

type OrderListResponse struct {
	Orders []orderRoutes.OrderResponse `json:"orders"`
	Total  int64                       `json:"total"`
	Page   int                         `json:"page"`
	Limit  int                         `json:"limit"`
}

// ListAll godoc
// @Summary List all orders with buyer identity
// @Description Admin only.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} utils.Response{data=OrderListResponse}
// @Failure 403 {object} utils.Response
// @Router /admin/orders [get]
func ListAll(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	orders, total, err := services.ListAllOrders(page, limit)
	if err != nil {
		utils.InternalError(c, err, "Failed to fetch orders")
		return
	}

	items := make([]orderRoutes.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, orderRoutes.NewOrderResponse(&orders[i]))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Orders retrieved successfully", OrderListResponse{
		Orders: items,
		Total:  total,
		Page:   page,
		Limit:  limit,
	}))
}
