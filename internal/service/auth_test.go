package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tastebud-ai/backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.DietaryPreference{},
		&models.SavedRecipe{},
		&models.GeneratedRecipe{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestRegister(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	t.Run("creates user and token", func(t *testing.T) {
		user, token, err := svc.Register(ctx, "Alex@Example.com", "hunter22", "Alex")
		require.NoError(t, err)

		assert.Equal(t, "alex@example.com", user.Email)
		assert.Equal(t, "Alex", user.Name)
		assert.NotEqual(t, "hunter22", user.PasswordHash)
		assert.NotEmpty(t, token)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, user.Email, claims.Email)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, _, err := svc.Register(ctx, "alex@example.com", "other", "Alex Again")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "sam@example.com", "correct-horse", "Sam")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, token, err := svc.Login(ctx, "sam@example.com", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, "Sam", user.Name)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "sam@example.com", "battery-staple")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody@example.com", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "kim@example.com", "pw", "Kim")
	require.NoError(t, err)

	age := 34
	updated, err := svc.UpdateProfile(ctx, user.ID, ProfileUpdate{
		Name:               "Kim L",
		Age:                &age,
		Location:           "Lisbon",
		CookingExperience:  "Intermediate",
		DietaryPreferences: []string{"Vegetarian", "Low-sodium"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Kim L", updated.Name)
	require.NotNil(t, updated.Age)
	assert.Equal(t, 34, *updated.Age)

	t.Run("preferences replaced wholesale", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, user.ID, ProfileUpdate{
			Name:               "Kim L",
			DietaryPreferences: []string{"Vegan"},
		})
		require.NoError(t, err)

		_, prefs, err := svc.GetProfile(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Vegan"}, prefs)
	})

	t.Run("nil preferences leave the set untouched", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, user.ID, ProfileUpdate{Name: "Kim"})
		require.NoError(t, err)

		_, prefs, err := svc.GetProfile(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Vegan"}, prefs)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, uuid.New(), ProfileUpdate{Name: "Ghost"})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestValidateToken(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := NewAuthService(db, "other-secret")
		_, token, err := other.Register(context.Background(), "eve@example.com", "pw", "Eve")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
