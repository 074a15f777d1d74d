package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/middleware"
	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/services"
	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/utils"
)

func parseUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid user ID"))
		return 0, false
	}
	return uint(id), true
}

// GetProfile godoc
// @Summary Get a user's public profile
// @Tags user
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} utils.Response{data=ProfileResponse}
// @Failure 404 {object} utils.Response
// @Router /users/{id} [get]
func GetProfile(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	u, err := services.FindUserByID(id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "User not found"))
			return
		}
		utils.InternalError(c, err, "Failed to fetch user")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("User retrieved successfully", NewProfileResponse(&u)))
}

// UpdateProfile godoc
// @Summary Update profile fields
// @Description Partial update. Only the owner or an admin may update a
// profile; admin-only fields from non-admins are rejected.
// @Tags user
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "User ID"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /users/{id} [patch]
func UpdateProfile(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	targetID, ok := parseUserID(c)
	if !ok {
		return
	}

	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Malformed JSON or invalid request body"))
		return
	}

	result, err := services.UpdateProfile(actor.ID, targetID, raw)
	if err != nil {
		var fieldErr *services.FieldError
		switch {
		case errors.As(err, &fieldErr):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, fieldErr.Error()))
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, "You do not have permission to update this profile"))
		case errors.Is(err, services.ErrNoFieldsToUpdate):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "No updatable fields in request"))
		case errors.Is(err, services.ErrUsernameTaken), errors.Is(err, services.ErrPhoneTaken):
			c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "User not found"))
		default:
			utils.InternalError(c, err, "Failed to update profile")
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Profile updated successfully",
		NewUpdatedProfileResponse(result.User, result.ActorIsAdmin)))
}

// DeleteProfile godoc
// @Summary Delete a profile (owner or admin)
// @Tags user
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "User ID"
// @Success 200 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /users/{id} [delete]
func DeleteProfile(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	targetID, ok := parseUserID(c)
	if !ok {
		return
	}

	if err := services.DeleteUserProfile(actor.ID, targetID); err != nil {
		switch {
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, "You do not have permission to delete this profile"))
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "User not found"))
		default:
			utils.InternalError(c, err, "Failed to delete profile")
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Profile deleted successfully", nil))
}

// Search godoc
// @Summary Search users
// @Description Case-insensitive substring search over username, phone and
// email, with optional premium/active/blocked filters.
// @Tags user
// @Produce json
// @Security ApiKeyAuth
// @Param search query string false "Search term"
// @Param isPremiumUser query bool false "Premium only"
// @Param isActiveUser query bool false "Active only"
// @Param isBlockedUser query bool false "Blocked only"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page, max 100" default(10)
// @Success 200 {object} utils.Response{data=SearchResponse}
// @Router /users [get]
func Search(c *gin.Context) {
	filter := services.UserSearchFilter{
		Search: c.Query("search"),
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

	trueVal := true
	if c.Query("isPremiumUser") == "true" {
		filter.IsPremium = &trueVal
	}
	if c.Query("isActiveUser") == "true" {
		filter.IsActive = &trueVal
	}
	if c.Query("isBlockedUser") == "true" {
		filter.IsBlocked = &trueVal
	}

	users, total, err := services.SearchUsers(filter)
	if err != nil {
		utils.InternalError(c, err, "Failed to search users")
		return
	}

	items := make([]SearchResultItem, 0, len(users))
	for i := range users {
		u := &users[i]
		items = append(items, SearchResultItem{
			ID:          u.ID,
			Username:    u.Username,
			PhoneNumber: u.PhoneNumber,
			Email:       u.Email,
			IsPremium:   u.IsPremium,
			IsActive:    u.IsActive,
			IsBlocked:   u.IsBlocked,
		})
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Users retrieved successfully", SearchResponse{
		Users: items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}))
}

// Vote godoc
// @Summary Cast a vote for a user
// @Description One vote per (voter, target) pair, value 1-10.
// @Tags user
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Target user ID"
// @Param input body VoteRequest true "Vote value"
// @Success 200 {object} utils.Response{data=RatingResponse}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /users/{id}/vote [post]
func Vote(c *gin.Context) {
	voter, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	targetID, ok := parseUserID(c)
	if !ok {
		return
	}

	var req VoteRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	target, err := services.CastVote(voter.ID, targetID, req.Value)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidVoteValue), errors.Is(err, services.ErrSelfVote):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Target user not found"))
		case errors.Is(err, services.ErrAlreadyVoted):
			c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
		default:
			utils.InternalError(c, err, "Failed to record vote")
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Vote recorded successfully", RatingResponse{
		ID:        target.ID,
		Username:  target.Username,
		Email:     target.Email,
		AvatarURL: target.AvatarURL,
		Rating:    services.RatingOf(target),
	}))
}

// GetRating godoc
// @Summary Get a user's rating
// @Tags user
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} utils.Response{data=RatingResponse}
// @Failure 404 {object} utils.Response
// @Router /users/{id}/rating [get]
func GetRating(c *gin.Context) {
	targetID, ok := parseUserID(c)
	if !ok {
		return
	}

	target, rating, err := services.GetUserRating(targetID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "User not found"))
			return
		}
		utils.InternalError(c, err, "Failed to fetch rating")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Rating retrieved successfully", RatingResponse{
		ID:        target.ID,
		Username:  target.Username,
		Email:     target.Email,
		AvatarURL: target.AvatarURL,
		Rating:    rating,
	}))
}
