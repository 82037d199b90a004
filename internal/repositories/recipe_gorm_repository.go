package repositories

import (
	"errors"
	"fmt"

	"resep/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMRecipeRepository is a GORM implementation of RecipeRepository.
type GORMRecipeRepository struct {
	db *gorm.DB
}

// NewGORMRecipeRepository creates a new instance of GORMRecipeRepository.
func NewGORMRecipeRepository(db *gorm.DB) *GORMRecipeRepository {
	return &GORMRecipeRepository{
		db: db,
	}
}

// GetAll retrieves recipes matching the filter, newest first, with tags,
// ingredient rows and the author preloaded.
func (r *GORMRecipeRepository) GetAll(filter RecipeFilter) ([]models.Recipe, error) {
	var recipes []models.Recipe

	query := r.db.
		Preload("Tags").
		Preload("RecipeIngredients.Ingredient").
		Preload("Author").
		Order("created_at DESC")

	if filter.AuthorID != "" {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		// OR semantics: any of the given slugs matches. A subquery keeps the
		// outer result free of join duplicates.
		tagged := r.db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
		query = query.Where("recipes.id IN (?)", tagged)
	}
	if filter.FavoritedBy != "" {
		favorited := r.db.Table("favorite_recipes").
			Select("recipe_id").
			Where("user_id = ?", filter.FavoritedBy)
		query = query.Where("recipes.id IN (?)", favorited)
	}
	if filter.InCartOf != "" {
		inCart := r.db.Table("shopping_carts").
			Select("recipe_id").
			Where("user_id = ?", filter.InCartOf)
		query = query.Where("recipes.id IN (?)", inCart)
	}

	if err := query.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to get recipes: %w", err)
	}
	return recipes, nil
}

// GetByID retrieves a single recipe with its associations preloaded.
func (r *GORMRecipeRepository) GetByID(id string) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.
		Preload("Tags").
		Preload("RecipeIngredients.Ingredient").
		Preload("Author").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("recipe with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get recipe by ID %s: %w", id, err)
	}
	return &recipe, nil
}

// GetByAuthor retrieves all recipes of one author, newest first.
func (r *GORMRecipeRepository) GetByAuthor(authorID string) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := r.db.
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get recipes by author %s: %w", authorID, err)
	}
	return recipes, nil
}

// CountByAuthor counts all recipes of one author.
func (r *GORMRecipeRepository) CountByAuthor(authorID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count recipes by author %s: %w", authorID, err)
	}
	return count, nil
}

// Create persists the recipe together with its tag links and ingredient rows.
// GORM wraps the associated inserts in one transaction.
func (r *GORMRecipeRepository) Create(recipe *models.Recipe) error {
	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}
	for i := range recipe.RecipeIngredients {
		if recipe.RecipeIngredients[i].ID == "" {
			recipe.RecipeIngredients[i].ID = uuid.New().String()
		}
	}
	if err := r.db.Create(recipe).Error; err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}
	return nil
}

// Update persists scalar and tag changes, then deletes all existing
// ingredient rows and recreates them from the recipe's current slice.
// The whole replacement runs in one transaction so no reader ever observes
// the recipe with zero ingredients.
func (r *GORMRecipeRepository) Update(recipe *models.Recipe) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Recipe{}).
			Where("id = ?", recipe.ID).
			Updates(map[string]interface{}{
				"name":         recipe.Name,
				"text":         recipe.Text,
				"image":        recipe.Image,
				"cooking_time": recipe.CookingTime,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("recipe with ID %s: %w", recipe.ID, ErrNotFound)
		}

		if err := tx.Model(recipe).Association("Tags").Replace(recipe.Tags); err != nil {
			return fmt.Errorf("failed to replace recipe tags: %w", err)
		}

		// Full replacement, not a diff: old rows are dropped unconditionally.
		if err := tx.Where("recipe_id = ?", recipe.ID).
			Delete(&models.RecipeIngredient{}).Error; err != nil {
			return fmt.Errorf("failed to delete recipe ingredients: %w", err)
		}
		for i := range recipe.RecipeIngredients {
			recipe.RecipeIngredients[i].ID = uuid.New().String()
			recipe.RecipeIngredients[i].RecipeID = recipe.ID
		}
		if len(recipe.RecipeIngredients) > 0 {
			if err := tx.Create(&recipe.RecipeIngredients).Error; err != nil {
				return fmt.Errorf("failed to recreate recipe ingredients: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update recipe %s: %w", recipe.ID, err)
	}
	return nil
}

// Delete removes a recipe together with its tag links, ingredient rows and
// any favorite or cart rows pointing at it. The relation rows are deleted
// explicitly in the same transaction; SQLite does not enforce the cascade
// constraints unless foreign keys are switched on.
func (r *GORMRecipeRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).
			Delete(&models.FavoriteRecipe{}).Error; err != nil {
			return fmt.Errorf("failed to delete favorites of recipe %s: %w", id, err)
		}
		if err := tx.Where("recipe_id = ?", id).
			Delete(&models.ShoppingCart{}).Error; err != nil {
			return fmt.Errorf("failed to delete cart entries of recipe %s: %w", id, err)
		}

		res := tx.Select("Tags", "RecipeIngredients").Delete(&models.Recipe{ID: id})
		if res.Error != nil {
			return fmt.Errorf("failed to delete recipe: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("recipe with ID %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

// ShoppingList aggregates ingredient amounts over every recipe in the user's
// cart: one row per ingredient with the summed amount, ordered by name.
func (r *GORMRecipeRepository) ShoppingList(userID string) ([]ShoppingListItem, error) {
	var items []ShoppingListItem
	err := r.db.Model(&models.RecipeIngredient{}).
		Select("ingredients.name AS name, SUM(recipe_ingredients.amount) AS total_amount, ingredients.measurement_unit AS measurement_unit").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.id, ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build shopping list for user %s: %w", userID, err)
	}
	return items, nil
}
