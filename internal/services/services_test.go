package services

import (
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/database"
	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/models"
	"github.com/Iznaur18/molhaAptekaFullStackApp/pkg/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	// Use in-memory SQLite for testing
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	// Drop tables if exist to ensure clean state and schema update
	db.Migrator().DropTable(&models.OrderItem{}, &models.Order{}, &models.Product{}, &models.Vote{}, &models.User{})

	err = db.AutoMigrate(&models.User{}, &models.Vote{}, &models.Product{}, &models.Order{}, &models.OrderItem{})
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	// Assign to global DB
	database.DB = db
	database.RedisClient = nil

	logger.Log = zap.NewNop()
}

func createTestUser(t *testing.T, username string) *models.User {
	t.Helper()

	email := username + "@example.com"
	user := models.User{
		Email:    &email,
		Username: &username,
		Role:     models.RoleUser,
		IsActive: true,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return &user
}

func createTestAdmin(t *testing.T, username string) *models.User {
	t.Helper()

	user := createTestUser(t, username)
	if err := database.DB.Model(user).Update("role", models.RoleAdmin).Error; err != nil {
		t.Fatalf("failed to promote test user: %v", err)
	}
	user.Role = models.RoleAdmin
	return user
}

func createTestProduct(t *testing.T, sellerID uint, name string, price float64) *models.Product {
	t.Helper()

	product := models.Product{
		Name:        name,
		Price:       price,
		Category:    models.ProductCategoryMedicine,
		SellerID:    sellerID,
		IsAvailable: true,
	}
	if err := database.DB.Create(&product).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	return &product
}
