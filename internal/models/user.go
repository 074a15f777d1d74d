package models

import "time"

const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RolePharmacist = "pharmacist"
)

const (
	GenderMale       = "male"
	GenderFemale     = "female"
	GenderNoSelected = "noSelected"
)

const (
	DefaultAvatarURL     = "https://i.pinimg.com/originals/c9/31/92/c93192b782081d4d1d70b03a3c1cf011.jpg"
	DefaultBackgroundURL = "https://krisp.ai/blog/wp-content/uploads/2024/07/background-meme1.jpg"
)

// User is registered either with email+password or through Telegram, so
// every identity field is optional. Uniqueness is enforced only among
// non-null values (nullable columns with unique indexes).
type User struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Email        *string `gorm:"uniqueIndex;size:255"`
	PasswordHash *string `json:"-"`
	Username     *string `gorm:"uniqueIndex;size:255"`
	PhoneNumber  *string `gorm:"uniqueIndex;size:64"`

	TelegramUserID   *string `gorm:"uniqueIndex;size:64"`
	TelegramUsername string  `gorm:"size:255"`
	TelegramPhotoURL string

	BirthDate            *time.Time
	Gender               string `gorm:"size:16;not null;default:'noSelected'"`
	Address              string
	AvatarURL            string
	BackgroundURL        string
	NotificationsEnabled bool `gorm:"not null;default:true"`
	Notes                string

	Role            string `gorm:"size:16;not null;default:'user'"`
	IsActive        bool   `gorm:"not null;default:true"`
	IsBlocked       bool   `gorm:"not null;default:false"`
	DiscountPercent int    `gorm:"not null;default:0"`
	IsPremium       bool   `gorm:"not null;default:false"`
	LoyaltyPoints   int    `gorm:"not null;default:0"`

	// Rating aggregate, derived from the votes table. Mutated only through
	// atomic increments by the voting workflow.
	CountVotes  int `gorm:"not null;default:0"`
	TotalRating int `gorm:"not null;default:0"`

	LastLoginAt *time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// DisplayName returns the username if one is set, falling back to the
// Telegram username.
func (u *User) DisplayName() string {
	if u.Username != nil && *u.Username != "" {
		return *u.Username
	}
	return u.TelegramUsername
}
