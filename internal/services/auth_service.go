package services

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/database"
	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/models"
)

var (
	ErrUserAlreadyExists  = errors.New("a user with this email, username or phone number already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTelegramTaken      = errors.New("a user with this telegram account already exists")
)

// RegisterInput carries email registration data. Email and password are
// required at the binding boundary; the rest is optional.
type RegisterInput struct {
	Email       string
	Password    string
	Username    string
	PhoneNumber string
	AvatarURL   string
	Address     string
}

// RegisterUser creates an email+password account. Duplicate detection runs
// as a single OR query across whichever identity fields were supplied; the
// unique indexes backstop concurrent registrations.
func RegisterUser(input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	dedupe := database.DB.Where("email = ?", email)
	if input.Username != "" {
		dedupe = dedupe.Or("username = ?", input.Username)
	}
	if input.PhoneNumber != "" {
		dedupe = dedupe.Or("phone_number = ?", input.PhoneNumber)
	}

	var existing models.User
	err := database.DB.Where(dedupe).First(&existing).Error
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	passwordHash := string(hashed)
	user := models.User{
		Email:         &email,
		PasswordHash:  &passwordHash,
		AvatarURL:     models.DefaultAvatarURL,
		BackgroundURL: models.DefaultBackgroundURL,
		Address:       input.Address,
	}
	if input.Username != "" {
		user.Username = &input.Username
	}
	if input.PhoneNumber != "" {
		user.PhoneNumber = &input.PhoneNumber
	}
	if input.AvatarURL != "" {
		user.AvatarURL = input.AvatarURL
	}

	if err := database.DB.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	return &user, nil
}

// LoginUser verifies email+password. The same error comes back for an
// unknown email and a wrong password.
func LoginUser(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash == nil {
		// Telegram-only account; it has no password to check.
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	database.DB.Model(&user).Update("last_login_at", now)
	user.LastLoginAt = &now

	return &user, nil
}

// TelegramAuthInput is what the Telegram Web App hands over after its own
// signature check (done at the validation boundary).
type TelegramAuthInput struct {
	TelegramUserID   string
	TelegramUsername string
	TelegramPhotoURL string
	Username         string
	AvatarURL        string
	Address          string
}

// AuthTelegram logs an existing Telegram user in, or creates the account on
// first contact. A concurrent first login for the same Telegram id loses on
// the unique index and is mapped to a conflict.
func AuthTelegram(input TelegramAuthInput) (*models.User, error) {
	var user models.User
	err := database.DB.Where("telegram_user_id = ?", input.TelegramUserID).First(&user).Error
	if err == nil {
		now := time.Now()
		database.DB.Model(&user).Update("last_login_at", now)
		user.LastLoginAt = &now
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	username := input.Username
	if username == "" {
		username = "tg_" + input.TelegramUserID
	}

	now := time.Now()
	user = models.User{
		Username:         &username,
		TelegramUserID:   &input.TelegramUserID,
		TelegramUsername: input.TelegramUsername,
		TelegramPhotoURL: input.TelegramPhotoURL,
		AvatarURL:        models.DefaultAvatarURL,
		BackgroundURL:    models.DefaultBackgroundURL,
		Address:          input.Address,
		LastLoginAt:      &now,
	}
	if input.AvatarURL != "" {
		user.AvatarURL = input.AvatarURL
	}

	if err := database.DB.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrTelegramTaken
		}
		return nil, err
	}

	return &user, nil
}
