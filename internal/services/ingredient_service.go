package services

import (
	"resep/internal/models"
	"resep/internal/repositories"
)

// IngredientService handles business logic related to the ingredient catalog.
type IngredientService struct {
	repo repositories.IngredientRepository
}

// NewIngredientService creates a new IngredientService.
func NewIngredientService(repo repositories.IngredientRepository) *IngredientService {
	return &IngredientService{
		repo: repo,
	}
}

// SearchIngredients lists ingredients ordered by name, optionally restricted
// to a case-insensitive name prefix.
func (s *IngredientService) SearchIngredients(namePrefix string) ([]models.Ingredient, error) {
	return s.repo.Search(namePrefix)
}

// GetIngredientByID retrieves a single ingredient by its ID.
func (s *IngredientService) GetIngredientByID(id string) (*models.Ingredient, error) {
	return s.repo.GetByID(id)
}

// CreateIngredient creates a new catalog entry.
func (s *IngredientService) CreateIngredient(ingredient *models.Ingredient) error {
	return s.repo.Create(ingredient)
}
