package services_test

import (
	"fmt"
	"testing"

	"resep/internal/models"
	"resep/internal/repositories"
	"resep/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestAuthService_RegisterUser_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAuthService(userRepo, "test-secret")

	userRepo.On("GetByUsername", "chef").
		Return(nil, fmt.Errorf("user chef: %w", repositories.ErrNotFound))
	userRepo.On("GetByEmail", "chef@example.com").
		Return(nil, fmt.Errorf("user chef@example.com: %w", repositories.ErrNotFound))
	userRepo.On("Create", mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(0).(*models.User)
			// The stored password is a hash, never the plaintext.
			assert.NotEqual(t, "secret123", user.Password)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
		}).
		Return(nil)

	user := &models.User{Username: "chef", Email: "chef@example.com", Password: "secret123"}
	err := service.RegisterUser(user)

	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_DuplicateUsername(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAuthService(userRepo, "test-secret")

	userRepo.On("GetByUsername", "chef").
		Return(&models.User{ID: "user-1", Username: "chef"}, nil)

	user := &models.User{Username: "chef", Email: "new@example.com", Password: "secret123"}
	err := service.RegisterUser(user)

	assert.ErrorIs(t, err, services.ErrDuplicate)
	userRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_LoginUser_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAuthService(userRepo, "test-secret")

	userRepo.On("GetByUsername", "chef").
		Return(&models.User{ID: "user-1", Username: "chef", Password: hashPassword(t, "secret123")}, nil)

	token, err := service.LoginUser("chef", "wrong-password")

	assert.Error(t, err)
	assert.Empty(t, token)
}

func TestAuthService_LoginUser_TokenRoundTrip(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAuthService(userRepo, "test-secret")

	userRepo.On("GetByUsername", "chef").
		Return(&models.User{ID: "user-1", Username: "chef", Password: hashPassword(t, "secret123")}, nil)

	token, err := service.LoginUser("chef", "secret123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "chef", claims["username"])
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAuthService(userRepo, "test-secret")

	userRepo.On("GetByID", "user-1").
		Return(&models.User{ID: "user-1", Password: hashPassword(t, "secret123")}, nil)

	err := service.ChangePassword("user-1", "not-the-password", "newsecret")

	assert.ErrorIs(t, err, services.ErrValidation)
	userRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything)
}

func TestAuthService_ChangePassword_TooShort(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAuthService(userRepo, "test-secret")

	userRepo.On("GetByID", "user-1").
		Return(&models.User{ID: "user-1", Password: hashPassword(t, "secret123")}, nil)

	err := service.ChangePassword("user-1", "secret123", "short")

	assert.ErrorIs(t, err, services.ErrValidation)
	userRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything)
}

func TestAuthService_ChangePassword_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAuthService(userRepo, "test-secret")

	userRepo.On("GetByID", "user-1").
		Return(&models.User{ID: "user-1", Password: hashPassword(t, "secret123")}, nil)
	userRepo.On("UpdatePassword", "user-1", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(args.String(1)), []byte("newsecret")))
		}).
		Return(nil)

	err := service.ChangePassword("user-1", "secret123", "newsecret")

	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
}
