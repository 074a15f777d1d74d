package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/database"
	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/models"
)

func TestRegisterUser(t *testing.T) {
	setupTestDB(t)

	user, err := RegisterUser(RegisterInput{
		Email:    "New.User@Example.COM",
		Password: "secret123",
		Username: "newuser",
	})
	require.NoError(t, err)

	require.NotNil(t, user.Email)
	assert.Equal(t, "new.user@example.com", *user.Email)
	require.NotNil(t, user.Username)
	assert.Equal(t, "newuser", *user.Username)
	assert.Equal(t, models.DefaultAvatarURL, user.AvatarURL)
	assert.Equal(t, models.DefaultBackgroundURL, user.BackgroundURL)

	// The hash verifies against the original password
	require.NotNil(t, user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte("secret123")))
}

func TestRegisterUserDuplicates(t *testing.T) {
	setupTestDB(t)

	_, err := RegisterUser(RegisterInput{
		Email:       "taken@example.com",
		Password:    "secret123",
		Username:    "takenname",
		PhoneNumber: "+79990001122",
	})
	require.NoError(t, err)

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"same email", RegisterInput{Email: "taken@example.com", Password: "x"}},
		{"same email different case", RegisterInput{Email: "TAKEN@example.com", Password: "x"}},
		{"same username", RegisterInput{Email: "other@example.com", Password: "x", Username: "takenname"}},
		{"same phone", RegisterInput{Email: "other@example.com", Password: "x", PhoneNumber: "+79990001122"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RegisterUser(tt.input)
			assert.ErrorIs(t, err, ErrUserAlreadyExists)
		})
	}
}

func TestLoginUser(t *testing.T) {
	setupTestDB(t)

	_, err := RegisterUser(RegisterInput{Email: "login@example.com", Password: "secret123"})
	require.NoError(t, err)

	user, err := LoginUser("Login@Example.com", "secret123")
	require.NoError(t, err)
	assert.NotNil(t, user.LastLoginAt)

	// Unknown email and wrong password come back indistinguishable
	_, err = LoginUser("nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = LoginUser("login@example.com", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUserTelegramOnlyAccount(t *testing.T) {
	setupTestDB(t)

	email := "tguser@example.com"
	tgID := "12345"
	user := models.User{Email: &email, TelegramUserID: &tgID}
	require.NoError(t, database.DB.Create(&user).Error)

	_, err := LoginUser(email, "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthTelegramCreatesOnFirstContact(t *testing.T) {
	setupTestDB(t)

	user, err := AuthTelegram(TelegramAuthInput{
		TelegramUserID:   "777000",
		TelegramUsername: "durov",
	})
	require.NoError(t, err)

	require.NotNil(t, user.Username)
	assert.Equal(t, "tg_777000", *user.Username)
	assert.Equal(t, "durov", user.TelegramUsername)
	assert.NotNil(t, user.LastLoginAt)
	assert.Equal(t, models.DefaultAvatarURL, user.AvatarURL)

	// Second contact logs in instead of creating
	again, err := AuthTelegram(TelegramAuthInput{TelegramUserID: "777000"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)

	var count int64
	database.DB.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAuthTelegramExplicitUsername(t *testing.T) {
	setupTestDB(t)

	user, err := AuthTelegram(TelegramAuthInput{
		TelegramUserID: "888000",
		Username:       "chosenname",
		AvatarURL:      "https://example.com/photo.jpg",
	})
	require.NoError(t, err)
	require.NotNil(t, user.Username)
	assert.Equal(t, "chosenname", *user.Username)
	assert.Equal(t, "https://example.com/photo.jpg", user.AvatarURL)
}
