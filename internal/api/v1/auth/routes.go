package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/middleware"
)

// RegisterRoutes wires the auth endpoints. The credential endpoints sit
// behind the rate limiter configured by the router.
func RegisterRoutes(router *gin.RouterGroup, rateLimit gin.HandlerFunc) {
	auth := router.Group("/auth")
	auth.POST("/register", rateLimit, Register)
	auth.POST("/login", rateLimit, Login)
	auth.POST("/telegram", rateLimit, Telegram)
	auth.GET("/me", middleware.AuthMiddleware(), Me)
	auth.POST("/logout", middleware.AuthMiddleware(), Logout)
}
