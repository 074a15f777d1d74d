package main

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/Iznaur18/molhaAptekaFullStackApp/config"
	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/api"
	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/database"
	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/models"
	"github.com/Iznaur18/molhaAptekaFullStackApp/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	err = logger.InitLogger(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	})
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	router, err := api.NewRouter()
	if err != nil {
		log.Fatalf("failed to create router: %v", err)
	}

	// Migrate the schema
	err = database.DB.AutoMigrate(
		&models.User{},
		&models.Vote{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	initAdminUser(cfg)

	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}

// initAdminUser seeds the first admin account from the environment so a
// fresh deployment is manageable without touching the database by hand.
func initAdminUser(cfg *config.Config) {
	if cfg.AdminPassword == "" {
		log.Println("ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	var admin models.User
	result := database.DB.Where("email = ?", cfg.AdminEmail).First(&admin)
	if result.Error == nil {
		log.Println("Admin user already exists.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}

	email := cfg.AdminEmail
	passwordHash := string(hashed)
	username := "admin"
	admin = models.User{
		Email:         &email,
		PasswordHash:  &passwordHash,
		Username:      &username,
		Role:          models.RoleAdmin,
		AvatarURL:     models.DefaultAvatarURL,
		BackgroundURL: models.DefaultBackgroundURL,
	}

	if err := database.DB.Create(&admin).Error; err != nil {
		log.Fatalf("failed to create admin user: %v", err)
	}
	log.Println("Admin user created successfully!")
}
