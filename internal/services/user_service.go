package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/database"
	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/models"
	"github.com/Iznaur18/molhaAptekaFullStackApp/pkg/logger"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrForbidden    = errors.New("you do not have permission to perform this action")
)

const userCachePrefix = "user:"

func userCacheKey(userID uint) string {
	return fmt.Sprintf("%s%d", userCachePrefix, userID)
}

// FindUserByID loads a user, going through the redis read-through cache when
// one is configured.
func FindUserByID(userID uint) (models.User, error) {
	cacheKey := userCacheKey(userID)
	if database.RedisClient != nil {
		val, err := database.RedisClient.Get(database.Ctx, cacheKey).Result()
		if err == nil {
			var user models.User
			if err := json.Unmarshal([]byte(val), &user); err == nil {
				return user, nil
			}
		}
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, ErrUserNotFound
		}
		return user, err
	}

	if database.RedisClient != nil {
		if data, err := json.Marshal(user); err == nil {
			database.RedisClient.Set(database.Ctx, cacheKey, data, time.Hour)
		}
	}

	return user, nil
}

func invalidateUserCache(userID uint) {
	if database.RedisClient != nil {
		database.RedisClient.Del(database.Ctx, userCacheKey(userID))
	}
}

// UserSearchFilter carries the search query parameters. Nil flags mean
// "don't filter on this flag".
type UserSearchFilter struct {
	Search    string
	IsPremium *bool
	IsActive  *bool
	IsBlocked *bool
	Page      int
	Limit     int
}

// Normalize clamps pagination to sane bounds: page >= 1, limit in [1,100].
func (f *UserSearchFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
}

// escapeLike neutralizes LIKE wildcards in user input so a search for "50%"
// matches literally instead of acting as a pattern.
func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}

// SearchUsers performs a case-insensitive substring search over username,
// phone number and email, combined with optional boolean-flag filters, and
// returns one page of matches plus the total match count.
func SearchUsers(filter UserSearchFilter) ([]models.User, int64, error) {
	filter.Normalize()

	query := database.DB.Model(&models.User{})

	if term := strings.TrimSpace(filter.Search); term != "" {
		pattern := "%" + strings.ToLower(escapeLike(term)) + "%"
		query = query.Where(
			`LOWER(username) LIKE ? ESCAPE '\' OR LOWER(phone_number) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern,
		)
	}

	if filter.IsPremium != nil {
		query = query.Where("is_premium = ?", *filter.IsPremium)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.IsBlocked != nil {
		query = query.Where("is_blocked = ?", *filter.IsBlocked)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	offset := (filter.Page - 1) * filter.Limit
	if err := query.Order("username").Limit(filter.Limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// DeleteUserProfile removes a user after an owner-or-admin check. All votes
// where the user is voter or target are cascaded away first, so no aggregate
// can ever reference a vote from or for a deleted account.
func DeleteUserProfile(actorID, targetID uint) error {
	var actor models.User
	if err := database.DB.First(&actor, actorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	var target models.User
	if err := database.DB.First(&target, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if actorID != targetID && !actor.IsAdmin() {
		return ErrForbidden
	}

	votes := database.DB.Where("voter_id = ? OR target_id = ?", targetID, targetID).Delete(&models.Vote{})
	if votes.Error != nil {
		return votes.Error
	}

	if err := database.DB.Delete(&models.User{}, targetID).Error; err != nil {
		return err
	}

	invalidateUserCache(targetID)

	logger.Log.Info("profile deleted",
		zap.Uint("actor_id", actorID),
		zap.Uint("target_id", targetID),
		zap.Int64("cascaded_votes", votes.RowsAffected),
	)

	return nil
}
