package user

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/services"
	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/utils"
)

type UserListItem struct {
	ID          uint       `json:"id"`
	Email       *string    `json:"email,omitempty"`
	Username    *string    `json:"userName,omitempty"`
	PhoneNumber *string    `json:"userPhoneNumber,omitempty"`
	Role        string     `json:"userRole"`
	IsActive    bool       `json:"isActiveUser"`
	IsBlocked   bool       `json:"isBlockedUser"`
	IsPremium   bool       `json:"isPremiumUser"`
	CountVotes  int        `json:"countVotes"`
	TotalRating int        `json:"totalRating"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"userLastLoginAt,omitempty"`
}

type UserListResponse struct {
	Users []UserListItem `json:"users"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// ListUsers godoc
// @Summary List all users
// @Description Get a paginated list of users. Admin only.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} utils.Response{data=UserListResponse}
// @Failure 400 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Router /admin/users [get]
func ListUsers(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid page number"))
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid limit number"))
		return
	}

	users, total, err := services.SearchUsers(services.UserSearchFilter{Page: page, Limit: limit})
	if err != nil {
		utils.InternalError(c, err, "Failed to fetch users")
		return
	}

	items := make([]UserListItem, 0, len(users))
	for i := range users {
		u := &users[i]
		items = append(items, UserListItem{
			ID:          u.ID,
			Email:       u.Email,
			Username:    u.Username,
			PhoneNumber: u.PhoneNumber,
			Role:        u.Role,
			IsActive:    u.IsActive,
			IsBlocked:   u.IsBlocked,
			IsPremium:   u.IsPremium,
			CountVotes:  u.CountVotes,
			TotalRating: u.TotalRating,
			CreatedAt:   u.CreatedAt,
			LastLoginAt: u.LastLoginAt,
		})
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Users retrieved successfully", UserListResponse{
		Users: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}))
}
