package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Iznaur18/molhaAptekaFullStackApp/config"
	adminOrder "github.com/Iznaur18/molhaAptekaFullStackApp/internal/api/v1/admin/order"
	adminUser "github.com/Iznaur18/molhaAptekaFullStackApp/internal/api/v1/admin/user"
	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/api/v1/auth"
	orderRoutes "github.com/Iznaur18/molhaAptekaFullStackApp/internal/api/v1/order"
	productRoutes "github.com/Iznaur18/molhaAptekaFullStackApp/internal/api/v1/product"
	userRoutes "github.com/Iznaur18/molhaAptekaFullStackApp/internal/api/v1/user"
	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/database"
	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/middleware"
)

func NewRouter() (*gin.Engine, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	if _, err := database.Connect(cfg.DSN()); err != nil {
		return nil, err
	}

	if err := database.ConnectRedis(cfg); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	rateLimit := middleware.RateLimit(cfg.RateLimitMax, time.Duration(cfg.RateLimitWindow)*time.Second)

	// API v1
	v1 := router.Group("/api/v1")
	{
		auth.RegisterRoutes(v1, rateLimit)

		authorized := v1.Group("/")
		authorized.Use(middleware.AuthMiddleware())

		userRoutes.RegisterRoutes(v1, authorized)
		productRoutes.RegisterRoutes(v1, authorized)
		orderRoutes.RegisterRoutes(authorized)

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware())
		{
			adminUser.RegisterRoutes(admin)
			adminOrder.RegisterRoutes(admin)
		}
	}

	return router, nil
}
