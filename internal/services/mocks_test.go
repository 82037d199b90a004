package services_test

import (
	"resep/internal/models"
	"resep/internal/repositories"

	"github.com/stretchr/testify/mock"
)

// Testify mocks for the repository interfaces used by the service tests.

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetAll() ([]models.User, error) {
	args := m.Called()
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(id string, passwordHash string) error {
	args := m.Called(id, passwordHash)
	return args.Error(0)
}

type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) GetAll() ([]models.Tag, error) {
	args := m.Called()
	return args.Get(0).([]models.Tag), args.Error(1)
}

func (m *MockTagRepository) GetByID(id string) (*models.Tag, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tag), args.Error(1)
}

func (m *MockTagRepository) GetByIDs(ids []string) ([]models.Tag, error) {
	args := m.Called(ids)
	return args.Get(0).([]models.Tag), args.Error(1)
}

func (m *MockTagRepository) Create(tag *models.Tag) error {
	args := m.Called(tag)
	return args.Error(0)
}

func (m *MockTagRepository) Update(tag *models.Tag) error {
	args := m.Called(tag)
	return args.Error(0)
}

func (m *MockTagRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

type MockIngredientRepository struct {
	mock.Mock
}

func (m *MockIngredientRepository) Search(namePrefix string) ([]models.Ingredient, error) {
	args := m.Called(namePrefix)
	return args.Get(0).([]models.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) GetByID(id string) (*models.Ingredient, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) GetByIDs(ids []string) ([]models.Ingredient, error) {
	args := m.Called(ids)
	return args.Get(0).([]models.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) Create(ingredient *models.Ingredient) error {
	args := m.Called(ingredient)
	return args.Error(0)
}

type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) GetAll(filter repositories.RecipeFilter) ([]models.Recipe, error) {
	args := m.Called(filter)
	return args.Get(0).([]models.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) GetByID(id string) (*models.Recipe, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) GetByAuthor(authorID string) ([]models.Recipe, error) {
	args := m.Called(authorID)
	return args.Get(0).([]models.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) CountByAuthor(authorID string) (int64, error) {
	args := m.Called(authorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecipeRepository) Create(recipe *models.Recipe) error {
	args := m.Called(recipe)
	return args.Error(0)
}

func (m *MockRecipeRepository) Update(recipe *models.Recipe) error {
	args := m.Called(recipe)
	return args.Error(0)
}

func (m *MockRecipeRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockRecipeRepository) ShoppingList(userID string) ([]repositories.ShoppingListItem, error) {
	args := m.Called(userID)
	return args.Get(0).([]repositories.ShoppingListItem), args.Error(1)
}

type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Create(favorite *models.FavoriteRecipe) error {
	args := m.Called(favorite)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Delete(userID, recipeID string) error {
	args := m.Called(userID, recipeID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) RecipeIDs(userID string) ([]string, error) {
	args := m.Called(userID)
	return args.Get(0).([]string), args.Error(1)
}

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) Create(entry *models.ShoppingCart) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(userID, recipeID string) error {
	args := m.Called(userID, recipeID)
	return args.Error(0)
}

func (m *MockCartRepository) RecipeIDs(userID string) ([]string, error) {
	args := m.Called(userID)
	return args.Get(0).([]string), args.Error(1)
}

type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Create(sub *models.Subscription) error {
	args := m.Called(sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) Delete(authorID, subscriberID string) error {
	args := m.Called(authorID, subscriberID)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) GetBySubscriber(subscriberID string) ([]models.Subscription, error) {
	args := m.Called(subscriberID)
	return args.Get(0).([]models.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) Exists(authorID, subscriberID string) (bool, error) {
	args := m.Called(authorID, subscriberID)
	return args.Bool(0), args.Error(1)
}
