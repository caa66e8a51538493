package service

import (
	"testing"
	"time"

	"github.com/shopworks/storefront-backend/internal/app/model"
	"github.com/shopworks/storefront-backend/internal/app/repository"
	"github.com/shopworks/storefront-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*gorm.DB, AuthService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	svc := NewAuthService(userRepo, "test-secret", 15*time.Minute, 7*24*time.Hour)
	return testDB, svc
}

func TestAuthService_Register(t *testing.T) {
	testDB, svc := setupAuthServiceTest(t)
	defer db.CleanupTestDB(testDB)

	user, tokens, err := svc.Register(RegisterInput{
		Username: "newshopper",
		Email:    "new@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotNil(t, tokens)

	assert.NotZero(t, user.ID)
	assert.Equal(t, model.RoleCustomer, user.Role)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NotEmpty(t, tokens.AccessToken)
}

func TestAuthService_RegisterWithRole(t *testing.T) {
	testDB, svc := setupAuthServiceTest(t)
	defer db.CleanupTestDB(testDB)

	user, _, err := svc.Register(RegisterInput{
		Username: "seller",
		Email:    "seller@example.com",
		Password: "password123",
		Role:     model.RoleVendor,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleVendor, user.Role)
}

func TestAuthService_RegisterInvalidRole(t *testing.T) {
	testDB, svc := setupAuthServiceTest(t)
	defer db.CleanupTestDB(testDB)

	_, _, err := svc.Register(RegisterInput{
		Username: "weirdo",
		Email:    "weirdo@example.com",
		Password: "password123",
		Role:     model.UserRole("wizard"),
	})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestAuthService_RegisterDuplicates(t *testing.T) {
	testDB, svc := setupAuthServiceTest(t)
	defer db.CleanupTestDB(testDB)

	_, _, err := svc.Register(RegisterInput{
		Username: "taken",
		Email:    "taken@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, _, err = svc.Register(RegisterInput{
		Username: "taken",
		Email:    "different@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)

	_, _, err = svc.Register(RegisterInput{
		Username: "different",
		Email:    "taken@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthService_LoginByUsernameOrEmail(t *testing.T) {
	testDB, svc := setupAuthServiceTest(t)
	defer db.CleanupTestDB(testDB)

	_, _, err := svc.Register(RegisterInput{
		Username: "loginuser",
		Email:    "login@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	// By username
	user, tokens, err := svc.Login("loginuser", "password123")
	require.NoError(t, err)
	assert.Equal(t, "loginuser", user.Username)
	assert.NotEmpty(t, tokens.AccessToken)

	// By email
	user, _, err = svc.Login("login@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "loginuser", user.Username)
}

func TestAuthService_LoginFailures(t *testing.T) {
	testDB, svc := setupAuthServiceTest(t)
	defer db.CleanupTestDB(testDB)

	_, _, err := svc.Register(RegisterInput{
		Username: "loginuser",
		Email:    "login@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, _, err = svc.Login("loginuser", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("nosuchuser", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	testDB, svc := setupAuthServiceTest(t)
	defer db.CleanupTestDB(testDB)

	user, _, err := svc.Register(RegisterInput{
		Username: "profileuser",
		Email:    "profile@example.com",
		Password: "password123",
		Phone:    "555-0100",
	})
	require.NoError(t, err)

	newAddress := "42 Elm Street"
	dob := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	updated, err := svc.UpdateProfile(user.ID, ProfileUpdateInput{
		Address:     &newAddress,
		DateOfBirth: &dob,
	})
	require.NoError(t, err)

	assert.Equal(t, "42 Elm Street", updated.Address)
	require.NotNil(t, updated.DateOfBirth)
	assert.True(t, dob.Equal(*updated.DateOfBirth))
	// Untouched fields keep their values
	assert.Equal(t, "555-0100", updated.Phone)

	_, err = svc.UpdateProfile(user.ID+100, ProfileUpdateInput{Address: &newAddress})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
