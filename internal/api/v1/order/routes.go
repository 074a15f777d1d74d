package order

import "github.com/gin-gonic/gin"

func RegisterRoutes(authorized *gin.RouterGroup) {
	authorized.POST("/orders", Create)
	authorized.GET("/orders", ListMine)
}
