package user

import "github.com/gin-gonic/gin"

// RegisterRoutes wires the user routes. Profile and rating reads are
// public; everything that mutates, plus search, requires authentication.
func RegisterRoutes(public, authorized *gin.RouterGroup) {
	public.GET("/users/:id", GetProfile)
	public.GET("/users/:id/rating", GetRating)

	authorized.GET("/users", Search)
	authorized.PATCH("/users/:id", UpdateProfile)
	authorized.DELETE("/users/:id", DeleteProfile)
	authorized.POST("/users/:id/vote", Vote)
}
