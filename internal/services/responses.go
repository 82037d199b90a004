package services

import "resep/internal/models"

// UserResponse is the wire shape of a user, annotated with whether the
// current viewer follows them. Anonymous viewers always see false.
type UserResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// RecipeIngredientResponse is one ingredient row of a recipe: the catalog
// entry plus the amount this recipe uses.
type RecipeIngredientResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeResponse is the full nested read shape of a recipe. IsFavorited and
// IsInShoppingCart are viewer-relative and computed per request, never stored.
type RecipeResponse struct {
	ID               string                     `json:"id"`
	Tags             []models.Tag               `json:"tags"`
	Author           UserResponse               `json:"author"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
}

// RecipeShortResponse is the compact recipe shape used in favorite/cart
// responses and in subscription listings.
type RecipeShortResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// SubscriptionResponse is one followed author: their profile, their recipes
// (possibly truncated by a recipes_limit query parameter) and the untruncated
// total recipe count.
type SubscriptionResponse struct {
	Email        string                `json:"email"`
	ID           string                `json:"id"`
	Username     string                `json:"username"`
	FirstName    string                `json:"first_name"`
	LastName     string                `json:"last_name"`
	IsSubscribed bool                  `json:"is_subscribed"`
	Recipes      []RecipeShortResponse `json:"recipes"`
	RecipesCount int                   `json:"recipes_count"`
}

func shortRecipe(recipe *models.Recipe) RecipeShortResponse {
	return RecipeShortResponse{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}

func userResponse(user *models.User, isSubscribed bool) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
	}
}
