package services

import (
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/database"
)

const denylistPrefix = "denylist:"

// AddToDenylist revokes a token for the rest of its lifetime. Logout relies
// on this; once the entry expires the token has expired too.
func AddToDenylist(tokenString string, expiration time.Duration) error {
	if database.RedisClient == nil {
		return nil
	}
	key := denylistPrefix + tokenString
	return database.RedisClient.Set(database.Ctx, key, 1, expiration).Err()
}

func IsDenylisted(tokenString string) (bool, error) {
	if database.RedisClient == nil {
		return false, nil
	}
	key := denylistPrefix + tokenString
	val, err := database.RedisClient.Get(database.Ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return val != "", nil
}
