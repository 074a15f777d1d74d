package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/database"
	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/models"
)

func TestUpdateProfileSelf(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "selfupdate")

	result, err := UpdateProfile(user.ID, user.ID, map[string]interface{}{
		"userName":             "newname",
		"userGender":           models.GenderFemale,
		"userAddress":          "Lenina 1",
		"userBirthDate":        "1990-04-12",
		"notificationsEnabled": false,
		"notesAboutUser":       "allergic to penicillin",
	})
	require.NoError(t, err)
	assert.False(t, result.ActorIsAdmin)

	updated := result.User
	require.NotNil(t, updated.Username)
	assert.Equal(t, "newname", *updated.Username)
	assert.Equal(t, models.GenderFemale, updated.Gender)
	assert.Equal(t, "Lenina 1", updated.Address)
	assert.False(t, updated.NotificationsEnabled)
	assert.Equal(t, "allergic to penicillin", updated.Notes)
	require.NotNil(t, updated.BirthDate)
	assert.Equal(t, 1990, updated.BirthDate.Year())
}

func TestUpdateProfileForeignTarget(t *testing.T) {
	setupTestDB(t)

	actor := createTestUser(t, "actor")
	target := createTestUser(t, "target")

	_, err := UpdateProfile(actor.ID, target.ID, map[string]interface{}{
		"userAddress": "somewhere",
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateProfileAdminOnlyFields(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "plainuser")
	admin := createTestAdmin(t, "theadmin")

	// A non-admin touching an admin-only field is rejected outright,
	// even when the rest of the payload is legitimate.
	_, err := UpdateProfile(user.ID, user.ID, map[string]interface{}{
		"userAddress": "somewhere",
		"userRole":    models.RoleAdmin,
	})
	assert.ErrorIs(t, err, ErrForbidden)

	var fresh models.User
	require.NoError(t, database.DB.First(&fresh, user.ID).Error)
	assert.Equal(t, "", fresh.Address)
	assert.Equal(t, models.RoleUser, fresh.Role)

	// The admin can set the same fields on anyone.
	result, err := UpdateProfile(admin.ID, user.ID, map[string]interface{}{
		"userRole":            models.RolePharmacist,
		"isPremiumUser":       true,
		"isBlockedUser":       true,
		"userDiscountPercent": float64(15),
	})
	require.NoError(t, err)
	assert.True(t, result.ActorIsAdmin)
	assert.Equal(t, models.RolePharmacist, result.User.Role)
	assert.True(t, result.User.IsPremium)
	assert.True(t, result.User.IsBlocked)
	assert.Equal(t, 15, result.User.DiscountPercent)
}

func TestUpdateProfileUnknownFieldsIgnored(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "unknownfields")

	result, err := UpdateProfile(user.ID, user.ID, map[string]interface{}{
		"userAddress":  "Pushkina 10",
		"garbageField": "value",
		"_id":          42,
	})
	require.NoError(t, err)
	assert.Equal(t, "Pushkina 10", result.User.Address)

	_, err = UpdateProfile(user.ID, user.ID, map[string]interface{}{
		"garbageField": "value",
	})
	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
}

func TestUpdateProfileFieldValidation(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "validation")
	admin := createTestAdmin(t, "validationadmin")

	future := time.Now().AddDate(1, 0, 0).Format("2006-01-02")

	tests := []struct {
		name    string
		actorID uint
		payload map[string]interface{}
	}{
		{"short username", user.ID, map[string]interface{}{"userName": "ab"}},
		{"non-string username", user.ID, map[string]interface{}{"userName": 42.0}},
		{"unparseable date", user.ID, map[string]interface{}{"userBirthDate": "not-a-date"}},
		{"future birth date", user.ID, map[string]interface{}{"userBirthDate": future}},
		{"bad gender", user.ID, map[string]interface{}{"userGender": "robot"}},
		{"bad url", user.ID, map[string]interface{}{"userAvatarUrl": "not a url"}},
		{"non-bool notifications", user.ID, map[string]interface{}{"notificationsEnabled": "yes"}},
		{"discount below range", admin.ID, map[string]interface{}{"userDiscountPercent": float64(-1)}},
		{"discount above range", admin.ID, map[string]interface{}{"userDiscountPercent": float64(101)}},
		{"discount not a number", admin.ID, map[string]interface{}{"userDiscountPercent": "big"}},
		{"bad role value", admin.ID, map[string]interface{}{"userRole": "superadmin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UpdateProfile(tt.actorID, tt.actorID, tt.payload)
			var fieldErr *FieldError
			assert.ErrorAs(t, err, &fieldErr)
		})
	}
}

func TestUpdateProfileClearsNullableFields(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "clearable")

	_, err := UpdateProfile(user.ID, user.ID, map[string]interface{}{
		"userBirthDate":   "1985-01-01",
		"userPhoneNumber": "+79990001122",
	})
	require.NoError(t, err)

	result, err := UpdateProfile(user.ID, user.ID, map[string]interface{}{
		"userBirthDate":   nil,
		"userPhoneNumber": nil,
	})
	require.NoError(t, err)
	assert.Nil(t, result.User.BirthDate)
	assert.Nil(t, result.User.PhoneNumber)
}

func TestUpdateProfileUniqueness(t *testing.T) {
	setupTestDB(t)

	first := createTestUser(t, "firstuser")
	second := createTestUser(t, "seconduser")

	phone := "+79990001122"
	require.NoError(t, database.DB.Model(first).Update("phone_number", phone).Error)

	_, err := UpdateProfile(second.ID, second.ID, map[string]interface{}{
		"userName": "firstuser",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = UpdateProfile(second.ID, second.ID, map[string]interface{}{
		"userPhoneNumber": phone,
	})
	assert.ErrorIs(t, err, ErrPhoneTaken)

	// Keeping your own username is not a conflict.
	_, err = UpdateProfile(second.ID, second.ID, map[string]interface{}{
		"userName": "seconduser",
	})
	assert.NoError(t, err)
}

func TestUpdateProfileTargetGone(t *testing.T) {
	setupTestDB(t)

	admin := createTestAdmin(t, "loneadmin")

	_, err := UpdateProfile(admin.ID, 9999, map[string]interface{}{
		"userAddress": "nowhere",
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
