package services

import (
	"errors"
	"math"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/database"
	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/models"
	"github.com/Iznaur18/molhaAptekaFullStackApp/pkg/logger"
)

var (
	ErrInvalidVoteValue = errors.New("vote value must be a number from 1 to 10")
	ErrSelfVote         = errors.New("you cannot vote for yourself")
	ErrAlreadyVoted     = errors.New("you have already voted for this user")
)

// UserRating is the read model of a user's aggregate rating.
type UserRating struct {
	CountVotes    int     `json:"countVotes"`
	TotalRating   int     `json:"totalRating"`
	AverageRating float64 `json:"averageRating"`
}

// RatingOf derives the read model from a user's stored aggregate, with the
// average rounded to one decimal place.
func RatingOf(user *models.User) UserRating {
	rating := UserRating{
		CountVotes:  user.CountVotes,
		TotalRating: user.TotalRating,
	}
	if user.CountVotes > 0 {
		avg := float64(user.TotalRating) / float64(user.CountVotes)
		rating.AverageRating = math.Round(avg*10) / 10
	}
	return rating
}

// CastVote runs the rating workflow: validate, record the vote, then bump
// the target's aggregate with a single atomic increment. If the increment
// fails after the vote row was inserted, the vote is rolled back so the
// ledger and the aggregate never diverge.
func CastVote(voterID, targetID uint, rawValue float64) (*models.User, error) {
	value := int(math.Round(rawValue))
	if value < models.MinVoteValue || value > models.MaxVoteValue {
		return nil, ErrInvalidVoteValue
	}
	if voterID == targetID {
		return nil, ErrSelfVote
	}

	var target models.User
	if err := database.DB.First(&target, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// Courtesy read so the common duplicate gets a clean error without
	// touching the store. The unique index below is what actually closes
	// the race between two concurrent identical votes.
	var existing int64
	if err := database.DB.Model(&models.Vote{}).
		Where("voter_id = ? AND target_id = ?", voterID, targetID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrAlreadyVoted
	}

	return recordVote(voterID, target.ID, value)
}

// recordVote inserts the vote row and applies the aggregate increment,
// compensating with a best-effort delete when the second step fails.
func recordVote(voterID, targetID uint, value int) (*models.User, error) {
	vote := models.Vote{
		VoterID:  voterID,
		TargetID: targetID,
		Value:    value,
	}
	if err := database.DB.Create(&vote).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyVoted
		}
		return nil, err
	}

	updated, err := applyVoteToAggregate(targetID, value)
	if err != nil {
		rollbackVote(&vote)
		return nil, err
	}

	logger.Log.Info("vote recorded",
		zap.Uint("voter_id", voterID),
		zap.Uint("target_id", targetID),
		zap.Int("value", value),
	)

	return updated, nil
}

// applyVoteToAggregate bumps count_votes and total_rating in one conditional
// UPDATE. Increments happen store-side, not read-modify-write, so concurrent
// votes for the same target cannot lose updates.
func applyVoteToAggregate(targetID uint, value int) (*models.User, error) {
	result := database.DB.Model(&models.User{}).
		Where("id = ?", targetID).
		Updates(map[string]interface{}{
			"count_votes":  gorm.Expr("count_votes + ?", 1),
			"total_rating": gorm.Expr("total_rating + ?", value),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Target deleted between the existence check and the increment.
		return nil, ErrUserNotFound
	}

	invalidateUserCache(targetID)

	var target models.User
	if err := database.DB.First(&target, targetID).Error; err != nil {
		return nil, err
	}
	return &target, nil
}

// rollbackVote is the compensating action: it removes a vote whose aggregate
// update never landed. Best effort; a failure here is logged and the
// original workflow error still surfaces to the caller.
func rollbackVote(vote *models.Vote) {
	if err := database.DB.Delete(&models.Vote{}, vote.ID).Error; err != nil {
		logger.Log.Error("failed to roll back vote after aggregate failure",
			zap.Uint("vote_id", vote.ID),
			zap.Uint("voter_id", vote.VoterID),
			zap.Uint("target_id", vote.TargetID),
			zap.Error(err),
		)
	}
}

// GetUserRating returns the target user together with the derived rating.
func GetUserRating(targetID uint) (*models.User, UserRating, error) {
	var target models.User
	if err := database.DB.First(&target, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, UserRating{}, ErrUserNotFound
		}
		return nil, UserRating{}, err
	}
	return &target, RatingOf(&target), nil
}
