package product

import "github.com/gin-gonic/gin"

// RegisterRoutes wires the catalog routes. The listing is public; creation
// and the seller's own listing require authentication.
func RegisterRoutes(public, authorized *gin.RouterGroup) {
	public.GET("/products", List)

	authorized.POST("/products", Create)
	authorized.GET("/products/mine", ListMine)
}
