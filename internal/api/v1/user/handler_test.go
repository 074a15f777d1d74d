package user_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/api/v1/user"
	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/database"
	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/models"
	"github.com/Iznaur18/molhaAptekaFullStackApp/pkg/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	// Use in-memory SQLite for testing
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	db.Migrator().DropTable(&models.Vote{}, &models.User{})
	if err := db.AutoMigrate(&models.User{}, &models.Vote{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	database.DB = db
	database.RedisClient = nil
	logger.Log = zap.NewNop()
}

func createUser(t *testing.T, username, role string) models.User {
	t.Helper()

	email := username + "@example.com"
	u := models.User{
		Email:    &email,
		Username: &username,
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, database.DB.Create(&u).Error)
	return u
}

// setupRouter builds the user routes with the given actor already
// authenticated, standing in for the auth middleware.
func setupRouter(actor models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	public := r.Group("/api/v1")
	authorized := r.Group("/api/v1")
	authorized.Use(func(c *gin.Context) {
		c.Set("user", actor)
		c.Next()
	})
	user.RegisterRoutes(public, authorized)
	return r
}

func TestGetProfile(t *testing.T) {
	setupTestDB(t)

	target := createUser(t, "visible", models.RoleUser)
	router := setupRouter(models.User{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/users/%d", target.ID), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status int                  `json:"status"`
		Data   user.ProfileResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, target.ID, resp.Data.ID)
	require.NotNil(t, resp.Data.Username)
	assert.Equal(t, "visible", *resp.Data.Username)

	// The password hash must never leak through any projection
	assert.NotContains(t, w.Body.String(), "password")
}

func TestGetProfileErrors(t *testing.T) {
	setupTestDB(t)
	router := setupRouter(models.User{})

	tests := []struct {
		name     string
		path     string
		wantCode int
	}{
		{"unknown user", "/api/v1/users/9999", http.StatusNotFound},
		{"non-numeric id", "/api/v1/users/abc", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.path, nil)
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestGetProfileUnexpectedError(t *testing.T) {
	setupTestDB(t)
	router := setupRouter(models.User{})

	// Break the store so the lookup fails with something that is not a
	// sentinel error.
	require.NoError(t, database.DB.Migrator().DropTable(&models.User{}))

	get := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/users/1", nil)
		router.ServeHTTP(w, req)
		return w
	}

	// Development surfaces the underlying error message
	t.Setenv("APP_ENV", "development")
	w := get()
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "no such table")

	// Production hides it behind the generic message
	t.Setenv("APP_ENV", "production")
	w = get()
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to fetch user")
	assert.NotContains(t, w.Body.String(), "no such table")
}

func TestUpdateProfileProjection(t *testing.T) {
	setupTestDB(t)

	actor := createUser(t, "selfeditor", models.RoleUser)
	router := setupRouter(actor)

	body, _ := json.Marshal(map[string]interface{}{
		"userAddress": "Lenina 1",
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPatch, fmt.Sprintf("/api/v1/users/%d", actor.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Lenina 1", resp.Data["userAddress"])

	// Non-admin responses omit the admin-only fields entirely
	assert.NotContains(t, resp.Data, "userRole")
	assert.NotContains(t, resp.Data, "userDiscountPercent")
}

func TestUpdateProfileStatusCodes(t *testing.T) {
	setupTestDB(t)

	actor := createUser(t, "actor", models.RoleUser)
	other := createUser(t, "other", models.RoleUser)
	router := setupRouter(actor)

	tests := []struct {
		name     string
		targetID uint
		payload  map[string]interface{}
		wantCode int
	}{
		{"admin-only field rejected", actor.ID, map[string]interface{}{"isPremiumUser": true}, http.StatusForbidden},
		{"foreign profile rejected", other.ID, map[string]interface{}{"userAddress": "x"}, http.StatusForbidden},
		{"validation failure", actor.ID, map[string]interface{}{"userName": "ab"}, http.StatusBadRequest},
		{"nothing to update", actor.ID, map[string]interface{}{"unknown": "x"}, http.StatusBadRequest},
		{"username conflict", actor.ID, map[string]interface{}{"userName": "other"}, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.payload)
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPatch, fmt.Sprintf("/api/v1/users/%d", tt.targetID), bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestVoteEndpoint(t *testing.T) {
	setupTestDB(t)

	voter := createUser(t, "voter", models.RoleUser)
	target := createUser(t, "target", models.RoleUser)
	router := setupRouter(voter)

	postVote := func(targetID uint, value float64) *httptest.ResponseRecorder {
		body, _ := json.Marshal(map[string]interface{}{"userVoteValue": value})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/users/%d/vote", targetID), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		return w
	}

	w := postVote(target.ID, 8)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data user.RatingResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, target.ID, resp.Data.ID)
	assert.Equal(t, 1, resp.Data.Rating.CountVotes)
	assert.Equal(t, 8.0, resp.Data.Rating.AverageRating)

	// Voting twice for the same target is a conflict
	assert.Equal(t, http.StatusConflict, postVote(target.ID, 5).Code)

	// Voting for yourself is a bad request
	assert.Equal(t, http.StatusBadRequest, postVote(voter.ID, 5).Code)

	// Out-of-range value
	assert.Equal(t, http.StatusBadRequest, postVote(target.ID, 11).Code)

	// Unknown target
	assert.Equal(t, http.StatusNotFound, postVote(9999, 5).Code)
}

func TestGetRatingEndpoint(t *testing.T) {
	setupTestDB(t)

	target := createUser(t, "rated", models.RoleUser)
	require.NoError(t, database.DB.Model(&target).Updates(map[string]interface{}{
		"count_votes":  4,
		"total_rating": 30,
	}).Error)

	router := setupRouter(models.User{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/users/%d/rating", target.ID), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data user.RatingResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.Data.Rating.CountVotes)
	assert.Equal(t, 7.5, resp.Data.Rating.AverageRating)
}

func TestSearchEndpoint(t *testing.T) {
	setupTestDB(t)

	actor := createUser(t, "searcher", models.RoleUser)
	premium := createUser(t, "premiumperson", models.RoleUser)
	require.NoError(t, database.DB.Model(&premium).Update("is_premium", true).Error)
	createUser(t, "ordinary", models.RoleUser)

	router := setupRouter(actor)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/users?search=premium&isPremiumUser=true", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data user.SearchResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Data.Total)
	require.Len(t, resp.Data.Users, 1)
	assert.Equal(t, premium.ID, resp.Data.Users[0].ID)
}
