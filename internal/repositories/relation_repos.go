package repositories

import "resep/internal/models"

// SubscriptionRepository defines the interface for follow-relation data
// access. Create surfaces ErrDuplicate for an existing pair; Delete surfaces
// ErrNotFound when the pair is absent.
type SubscriptionRepository interface {
	Create(sub *models.Subscription) error
	Delete(authorID, subscriberID string) error
	GetBySubscriber(subscriberID string) ([]models.Subscription, error)
	Exists(authorID, subscriberID string) (bool, error)
}

// FavoriteRepository defines the interface for favorite-recipe data access.
type FavoriteRepository interface {
	Create(favorite *models.FavoriteRecipe) error
	Delete(userID, recipeID string) error
	// RecipeIDs lists the IDs of every recipe the user has favorited.
	RecipeIDs(userID string) ([]string, error)
}

// CartRepository defines the interface for shopping-cart data access.
type CartRepository interface {
	Create(entry *models.ShoppingCart) error
	Delete(userID, recipeID string) error
	// RecipeIDs lists the IDs of every recipe in the user's cart.
	RecipeIDs(userID string) ([]string, error)
}
