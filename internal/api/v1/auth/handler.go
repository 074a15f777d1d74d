package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	userRoutes "github.com/Iznaur18/molhaAptekaFullStackApp/internal/api/v1/user"
	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/middleware"
	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/services"
	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/utils"
)

type RegisterInput struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	Username    string `json:"userName" binding:"omitempty,min=3"`
	PhoneNumber string `json:"phoneNumber"`
	AvatarURL   string `json:"avatarUrl" binding:"omitempty,url"`
	Address     string `json:"address"`
}

// respondWithToken sends the unified auth payload: the profile plus a fresh
// bearer token.
func respondWithToken(c *gin.Context, status int, message string, u *userRoutes.ProfileResponse) {
	token, err := utils.GenerateToken(u.ID)
	if err != nil {
		utils.InternalError(c, err, "Could not generate token")
		return
	}
	u.Token = token
	c.JSON(status, utils.NewResponse(status, message, u))
}

// Register godoc
// @Summary Register with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param input body RegisterInput true "Register Input"
// @Success 201 {object} utils.Response{data=user.ProfileResponse}
// @Failure 400 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /auth/register [post]
func Register(c *gin.Context) {
	var input RegisterInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	u, err := services.RegisterUser(services.RegisterInput{
		Email:       input.Email,
		Password:    input.Password,
		Username:    input.Username,
		PhoneNumber: input.PhoneNumber,
		AvatarURL:   input.AvatarURL,
		Address:     input.Address,
	})
	if err != nil {
		if errors.Is(err, services.ErrUserAlreadyExists) {
			c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
			return
		}
		utils.InternalError(c, err, "Failed to register user")
		return
	}

	resp := userRoutes.NewProfileResponse(u)
	respondWithToken(c, http.StatusCreated, "User registered successfully", &resp)
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param input body LoginInput true "Login Input"
// @Success 200 {object} utils.Response{data=user.ProfileResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Router /auth/login [post]
func Login(c *gin.Context) {
	var input LoginInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	u, err := services.LoginUser(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, err.Error()))
			return
		}
		utils.InternalError(c, err, "Failed to log in")
		return
	}

	resp := userRoutes.NewProfileResponse(u)
	respondWithToken(c, http.StatusOK, "Logged in successfully", &resp)
}

type TelegramInput struct {
	TelegramUserID   string `json:"telegramUserId" binding:"required"`
	TelegramUsername string `json:"telegramUsername"`
	TelegramPhotoURL string `json:"telegramPhotoUrl" binding:"omitempty,url"`
	Username         string `json:"userName" binding:"omitempty,min=3"`
	AvatarURL        string `json:"avatarUrl" binding:"omitempty,url"`
	Address          string `json:"address"`
}

// Telegram godoc
// @Summary Log in or register through Telegram
// @Tags auth
// @Accept json
// @Produce json
// @Param input body TelegramInput true "Telegram Input"
// @Success 200 {object} utils.Response{data=user.ProfileResponse}
// @Failure 400 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /auth/telegram [post]
func Telegram(c *gin.Context) {
	var input TelegramInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	u, err := services.AuthTelegram(services.TelegramAuthInput{
		TelegramUserID:   input.TelegramUserID,
		TelegramUsername: input.TelegramUsername,
		TelegramPhotoURL: input.TelegramPhotoURL,
		Username:         input.Username,
		AvatarURL:        input.AvatarURL,
		Address:          input.Address,
	})
	if err != nil {
		if errors.Is(err, services.ErrTelegramTaken) {
			c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
			return
		}
		utils.InternalError(c, err, "Failed to authenticate through Telegram")
		return
	}

	resp := userRoutes.NewProfileResponse(u)
	respondWithToken(c, http.StatusOK, "Authenticated successfully", &resp)
}

// Me godoc
// @Summary Get the current user's profile
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=user.ProfileResponse}
// @Failure 401 {object} utils.Response
// @Router /auth/me [get]
func Me(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	// The middleware may have served a cached copy; reload so the client
	// sees the latest aggregate and flags.
	fresh, err := services.FindUserByID(u.ID)
	if err == nil {
		u = fresh
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("User information retrieved successfully", userRoutes.NewProfileResponse(&u)))
}

// Logout godoc
// @Summary Invalidate the current token
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Router /auth/logout [post]
func Logout(c *gin.Context) {
	tokenString, err := utils.ExtractToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, err.Error()))
		return
	}

	// Denylist for the remaining token lifetime; fall back to the maximum
	// lifetime when the expiry claim cannot be read.
	remaining := time.Hour * 24 * 30
	if claims, err := utils.ValidateToken(tokenString); err == nil {
		if exp, ok := claims["exp"].(float64); ok {
			remaining = time.Until(time.Unix(int64(exp), 0))
		}
	}

	if err := services.AddToDenylist(tokenString, remaining); err != nil {
		utils.InternalError(c, err, "Failed to revoke token")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Logged out successfully", nil))
}
