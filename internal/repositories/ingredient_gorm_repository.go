package repositories

import (
	"errors"
	"fmt"
	"strings"

	"resep/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMIngredientRepository is a GORM implementation of IngredientRepository.
type GORMIngredientRepository struct {
	db *gorm.DB
}

// NewGORMIngredientRepository creates a new instance of GORMIngredientRepository.
func NewGORMIngredientRepository(db *gorm.DB) *GORMIngredientRepository {
	return &GORMIngredientRepository{
		db: db,
	}
}

// Search retrieves ingredients ordered by name, optionally restricted to a
// case-insensitive name prefix.
func (r *GORMIngredientRepository) Search(namePrefix string) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	query := r.db.Order("name")
	if namePrefix != "" {
		// LOWER on both sides keeps the match case-insensitive on SQLite
		// and PostgreSQL alike.
		query = query.Where("LOWER(name) LIKE ?", strings.ToLower(namePrefix)+"%")
	}
	if err := query.Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to search ingredients: %w", err)
	}
	return ingredients, nil
}

// GetByID retrieves a single ingredient by its ID.
func (r *GORMIngredientRepository) GetByID(id string) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := r.db.First(&ingredient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("ingredient with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get ingredient by ID %s: %w", id, err)
	}
	return &ingredient, nil
}

// GetByIDs retrieves the ingredients matching the given IDs.
func (r *GORMIngredientRepository) GetByIDs(ids []string) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := r.db.Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to get ingredients by IDs: %w", err)
	}
	return ingredients, nil
}

// Create creates a new ingredient.
func (r *GORMIngredientRepository) Create(ingredient *models.Ingredient) error {
	if ingredient.ID == "" {
		ingredient.ID = uuid.New().String()
	}
	if err := r.db.Create(ingredient).Error; err != nil {
		return fmt.Errorf("failed to create ingredient: %w", err)
	}
	return nil
}
