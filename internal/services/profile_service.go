package services

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/database"
	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/models"
	"github.com/Iznaur18/molhaAptekaFullStackApp/pkg/logger"
)

var (
	ErrNoFieldsToUpdate = errors.New("no updatable fields in request")
	ErrUsernameTaken    = errors.New("a user with this username already exists")
	ErrPhoneTaken       = errors.New("a user with this phone number already exists")
)

// fieldRule describes one mutable profile field: the column it maps to,
// whether only admins may set it, and how a raw request value is validated
// and coerced before it reaches the database.
type fieldRule struct {
	column    string
	adminOnly bool
	coerce    func(field string, value interface{}) (interface{}, error)
}

// profileFields is the single source of truth for which profile fields are
// mutable and by whom. Keys are the wire names used by the client.
var profileFields = map[string]fieldRule{
	"userName":             {column: "username", coerce: coerceUsername},
	"userBirthDate":        {column: "birth_date", coerce: coerceBirthDate},
	"userGender":           {column: "gender", coerce: coerceEnum(models.GenderMale, models.GenderFemale, models.GenderNoSelected)},
	"userAddress":          {column: "address", coerce: coerceText},
	"userPhoneNumber":      {column: "phone_number", coerce: coercePhone},
	"userAvatarUrl":        {column: "avatar_url", coerce: coerceURL},
	"userBackgroundUrl":    {column: "background_url", coerce: coerceURL},
	"notificationsEnabled": {column: "notifications_enabled", coerce: coerceBool},
	"notesAboutUser":       {column: "notes", coerce: coerceText},

	"userRole":            {column: "role", adminOnly: true, coerce: coerceEnum(models.RoleUser, models.RoleAdmin, models.RolePharmacist)},
	"isActiveUser":        {column: "is_active", adminOnly: true, coerce: coerceBool},
	"isBlockedUser":       {column: "is_blocked", adminOnly: true, coerce: coerceBool},
	"userDiscountPercent": {column: "discount_percent", adminOnly: true, coerce: coerceDiscount},
	"isPremiumUser":       {column: "is_premium", adminOnly: true, coerce: coerceBool},
}

// ProfileUpdateResult is what the update workflow hands back to the
// transport layer: the fresh user plus whether admin-only fields may appear
// in the response projection.
type ProfileUpdateResult struct {
	User         *models.User
	ActorIsAdmin bool
}

// UpdateProfile applies a partial field map to the target user. The actor's
// role is looked up fresh from the store, never trusted from token claims.
// A non-admin supplying an admin-only field is rejected outright.
func UpdateProfile(actorID, targetID uint, raw map[string]interface{}) (*ProfileUpdateResult, error) {
	var actor models.User
	if err := database.DB.Select("id", "role").First(&actor, actorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	isAdmin := actor.IsAdmin()
	if actorID != targetID && !isAdmin {
		return nil, ErrForbidden
	}

	updates := make(map[string]interface{})
	var changed []string

	for field, value := range raw {
		rule, ok := profileFields[field]
		if !ok {
			continue // unknown fields are ignored, same as absent ones
		}
		if rule.adminOnly && !isAdmin {
			return nil, ErrForbidden
		}

		coerced, err := rule.coerce(field, value)
		if err != nil {
			return nil, err
		}
		updates[rule.column] = coerced
		changed = append(changed, field)
	}

	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	if err := checkProfileUniqueness(targetID, updates); err != nil {
		return nil, err
	}

	result := database.DB.Model(&models.User{}).Where("id = ?", targetID).Updates(updates)
	if result.Error != nil {
		// The unique indexes are the authoritative guard; a concurrent
		// update can still hit them after our read check passed.
		if isUniqueViolation(result.Error) {
			if _, ok := updates["phone_number"]; ok {
				if _, uok := updates["username"]; !uok {
					return nil, ErrPhoneTaken
				}
			}
			return nil, ErrUsernameTaken
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}

	invalidateUserCache(targetID)

	sort.Strings(changed)
	logger.Log.Info("profile updated",
		zap.Uint("actor_id", actorID),
		zap.Uint("target_id", targetID),
		zap.Strings("fields", changed),
	)

	var updated models.User
	if err := database.DB.First(&updated, targetID).Error; err != nil {
		return nil, err
	}

	return &ProfileUpdateResult{User: &updated, ActorIsAdmin: isAdmin}, nil
}

// checkProfileUniqueness rejects a username or phone number already held by
// another user. The unique index still backstops the race window between
// this read and the update.
func checkProfileUniqueness(targetID uint, updates map[string]interface{}) error {
	if username, ok := updates["username"].(string); ok && username != "" {
		var count int64
		if err := database.DB.Model(&models.User{}).
			Where("username = ? AND id <> ?", username, targetID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUsernameTaken
		}
	}

	if phone, ok := updates["phone_number"].(string); ok && phone != "" {
		var count int64
		if err := database.DB.Model(&models.User{}).
			Where("phone_number = ? AND id <> ?", phone, targetID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrPhoneTaken
		}
	}

	return nil
}

func coerceUsername(field string, value interface{}) (interface{}, error) {
	s, ok := value.(string)
	if !ok || value == nil {
		return nil, newFieldError(field, "username must be a non-empty string")
	}
	s = strings.TrimSpace(s)
	if len(s) < 3 {
		return nil, newFieldError(field, "username must be at least 3 characters long")
	}
	return s, nil
}

func coerceBirthDate(field string, value interface{}) (interface{}, error) {
	if value == nil || value == "" {
		return nil, nil // clears the field
	}
	s, ok := value.(string)
	if !ok {
		return nil, newFieldError(field, "must be a date string or null")
	}

	var parsed time.Time
	var err error
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		parsed, err = time.Parse(layout, s)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, newFieldError(field, "must be a valid date")
	}
	if parsed.After(time.Now()) {
		return nil, newFieldError(field, "birth date cannot be in the future")
	}
	return parsed, nil
}

func coerceEnum(allowed ...string) func(string, interface{}) (interface{}, error) {
	return func(field string, value interface{}) (interface{}, error) {
		s, ok := value.(string)
		if !ok {
			return nil, newFieldError(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
		}
		for _, a := range allowed {
			if s == a {
				return s, nil
			}
		}
		return nil, newFieldError(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
	}
}

func coerceDiscount(field string, value interface{}) (interface{}, error) {
	num, ok := value.(float64) // JSON numbers arrive as float64
	if !ok {
		return nil, newFieldError(field, "discount percent must be a number from 0 to 100")
	}
	if math.IsNaN(num) || num < 0 || num > 100 {
		return nil, newFieldError(field, "discount percent must be a number from 0 to 100")
	}
	return int(num), nil
}

func coerceURL(field string, value interface{}) (interface{}, error) {
	if value == nil || value == "" {
		return "", nil // clears the field
	}
	s, ok := value.(string)
	if !ok {
		return nil, newFieldError(field, "must be a URL string or null")
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, newFieldError(field, "must be a valid URL")
	}
	return s, nil
}

func coercePhone(field string, value interface{}) (interface{}, error) {
	if value == nil || value == "" {
		return nil, nil // clears the field
	}
	s, ok := value.(string)
	if !ok {
		return nil, newFieldError(field, "phone number must be a string or null")
	}
	return strings.TrimSpace(s), nil
}

func coerceBool(field string, value interface{}) (interface{}, error) {
	b, ok := value.(bool)
	if !ok {
		return nil, newFieldError(field, "must be a boolean value (true/false)")
	}
	return b, nil
}

func coerceText(field string, value interface{}) (interface{}, error) {
	s, ok := value.(string)
	if !ok {
		return nil, newFieldError(field, "must be a string")
	}
	return s, nil
}
