package user

import (
	"time"

	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/models"
	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/services"
)

// ProfileResponse is the full public projection of a user. The password
// hash never appears here.
type ProfileResponse struct {
	ID                   uint                 `json:"id"`
	Email                *string              `json:"email,omitempty"`
	Username             *string              `json:"userName,omitempty"`
	PhoneNumber          *string              `json:"userPhoneNumber,omitempty"`
	BirthDate            *time.Time           `json:"userBirthDate,omitempty"`
	Gender               string               `json:"userGender"`
	Address              string               `json:"userAddress,omitempty"`
	AvatarURL            string               `json:"userAvatarUrl"`
	BackgroundURL        string               `json:"userBackgroundUrl"`
	NotificationsEnabled bool                 `json:"notificationsEnabled"`
	Notes                string               `json:"notesAboutUser,omitempty"`
	Role                 string               `json:"userRole"`
	IsActive             bool                 `json:"isActiveUser"`
	IsBlocked            bool                 `json:"isBlockedUser"`
	DiscountPercent      int                  `json:"userDiscountPercent"`
	IsPremium            bool                 `json:"isPremiumUser"`
	LoyaltyPoints        int                  `json:"userLoyaltyPoints"`
	Rating               services.UserRating  `json:"userRatingByVotes"`
	TelegramUserID       *string              `json:"telegramUserId,omitempty"`
	TelegramUsername     string               `json:"telegramUsername,omitempty"`
	TelegramPhotoURL     string               `json:"telegramPhotoUrl,omitempty"`
	CreatedAt            time.Time            `json:"createdAt"`
	UpdatedAt            time.Time            `json:"updatedAt"`
	LastLoginAt          *time.Time           `json:"userLastLoginAt,omitempty"`
	Token                string               `json:"token,omitempty"`
}

// NewProfileResponse maps a user model onto the wire projection.
func NewProfileResponse(u *models.User) ProfileResponse {
	return ProfileResponse{
		ID:                   u.ID,
		Email:                u.Email,
		Username:             u.Username,
		PhoneNumber:          u.PhoneNumber,
		BirthDate:            u.BirthDate,
		Gender:               u.Gender,
		Address:              u.Address,
		AvatarURL:            u.AvatarURL,
		BackgroundURL:        u.BackgroundURL,
		NotificationsEnabled: u.NotificationsEnabled,
		Notes:                u.Notes,
		Role:                 u.Role,
		IsActive:             u.IsActive,
		IsBlocked:            u.IsBlocked,
		DiscountPercent:      u.DiscountPercent,
		IsPremium:            u.IsPremium,
		LoyaltyPoints:        u.LoyaltyPoints,
		Rating:               services.RatingOf(u),
		TelegramUserID:       u.TelegramUserID,
		TelegramUsername:     u.TelegramUsername,
		TelegramPhotoURL:     u.TelegramPhotoURL,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
		LastLoginAt:          u.LastLoginAt,
	}
}

// NewUpdatedProfileResponse restricts the update response to the fields the
// actor was allowed to touch, plus identity. Mirrors the allowed-field sets
// of the authorization engine.
func NewUpdatedProfileResponse(u *models.User, includeAdminFields bool) map[string]interface{} {
	resp := map[string]interface{}{
		"id":                   u.ID,
		"userName":             u.Username,
		"userBirthDate":        u.BirthDate,
		"userGender":           u.Gender,
		"userAddress":          u.Address,
		"userPhoneNumber":      u.PhoneNumber,
		"userAvatarUrl":        u.AvatarURL,
		"userBackgroundUrl":    u.BackgroundURL,
		"notificationsEnabled": u.NotificationsEnabled,
		"notesAboutUser":       u.Notes,
	}
	if includeAdminFields {
		resp["userRole"] = u.Role
		resp["isActiveUser"] = u.IsActive
		resp["isBlockedUser"] = u.IsBlocked
		resp["userDiscountPercent"] = u.DiscountPercent
		resp["isPremiumUser"] = u.IsPremium
	}
	return resp
}

// SearchResultItem is the reduced projection returned by user search.
type SearchResultItem struct {
	ID          uint    `json:"id"`
	Username    *string `json:"userName,omitempty"`
	PhoneNumber *string `json:"userPhoneNumber,omitempty"`
	Email       *string `json:"email,omitempty"`
	IsPremium   bool    `json:"isPremiumUser"`
	IsActive    bool    `json:"isActiveUser"`
	IsBlocked   bool    `json:"isBlockedUser"`
}

type SearchResponse struct {
	Users []SearchResultItem `json:"users"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// RatingResponse answers the rating read path with minimal target identity.
type RatingResponse struct {
	ID        uint                `json:"id"`
	Username  *string             `json:"userName,omitempty"`
	Email     *string             `json:"email,omitempty"`
	AvatarURL string              `json:"userAvatarUrl"`
	Rating    services.UserRating `json:"rating"`
}

type VoteRequest struct {
	Value float64 `json:"userVoteValue" binding:"required"`
}
