package repositories

import "resep/internal/models"

// IngredientRepository defines the interface for ingredient data access.
type IngredientRepository interface {
	// Search lists ingredients ordered by name. A non-empty prefix restricts
	// the result to names starting with it, case-insensitively.
	Search(namePrefix string) ([]models.Ingredient, error)
	GetByID(id string) (*models.Ingredient, error)
	GetByIDs(ids []string) ([]models.Ingredient, error)
	Create(ingredient *models.Ingredient) error
}
