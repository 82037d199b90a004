package repositories

import "resep/internal/models"

// RecipeFilter narrows a recipe listing. Zero values mean "no constraint".
type RecipeFilter struct {
	AuthorID string
	// TagSlugs filters with OR semantics: a recipe matches when it carries
	// any of the given tags.
	TagSlugs []string
	// FavoritedBy / InCartOf restrict to recipes present in the given user's
	// favorites or shopping cart.
	FavoritedBy string
	InCartOf    string
}

// ShoppingListItem is one aggregated row of a user's shopping list: the total
// amount of an ingredient summed over every recipe in the user's cart.
type ShoppingListItem struct {
	Name            string
	TotalAmount     int
	MeasurementUnit string
}

// RecipeRepository defines the interface for recipe data access.
// Create and Update expect the recipe's Tags and RecipeIngredients slices to
// be populated; Update replaces the stored ingredient rows wholesale inside
// a single transaction.
type RecipeRepository interface {
	GetAll(filter RecipeFilter) ([]models.Recipe, error)
	GetByID(id string) (*models.Recipe, error)
	GetByAuthor(authorID string) ([]models.Recipe, error)
	CountByAuthor(authorID string) (int64, error)
	Create(recipe *models.Recipe) error
	Update(recipe *models.Recipe) error
	Delete(id string) error
	ShoppingList(userID string) ([]ShoppingListItem, error)
}
