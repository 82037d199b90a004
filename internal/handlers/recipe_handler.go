package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"strconv"

	"resep/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RecipeHandler handles HTTP requests for recipes, the favorite/cart toggles
// and the shopping-list download.
type RecipeHandler struct {
	service *services.RecipeService
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(service *services.RecipeService) *RecipeHandler {
	return &RecipeHandler{
		service: service,
	}
}

// RegisterRoutes registers the recipe routes with the Fiber app. The fixed
// download path is registered before "/:id" so Fiber does not shadow it.
func (h *RecipeHandler) RegisterRoutes(router fiber.Router, authRequired, optionalAuth fiber.Handler) {
	recipeRoutes := router.Group("/recipes")
	recipeRoutes.Get("/download_shopping_cart", authRequired, h.HandleDownloadShoppingCart)
	recipeRoutes.Get("/", optionalAuth, h.HandleGetRecipes)
	recipeRoutes.Post("/", authRequired, h.HandleCreateRecipe)
	recipeRoutes.Get("/:id", optionalAuth, h.HandleGetRecipeByID)
	recipeRoutes.Put("/:id", authRequired, h.HandleUpdateRecipe)
	recipeRoutes.Patch("/:id", authRequired, h.HandleUpdateRecipe)
	recipeRoutes.Delete("/:id", authRequired, h.HandleDeleteRecipe)
	recipeRoutes.Post("/:id/favorite", authRequired, h.HandleFavorite)
	recipeRoutes.Delete("/:id/favorite", authRequired, h.HandleUnfavorite)
	recipeRoutes.Post("/:id/shopping_cart", authRequired, h.HandleAddToCart)
	recipeRoutes.Delete("/:id/shopping_cart", authRequired, h.HandleRemoveFromCart)
}

// boolQuery interprets a query parameter as a boolean filter flag.
func boolQuery(c *fiber.Ctx, name string) bool {
	value := c.Query(name)
	return value == "1" || value == "true"
}

// HandleGetRecipes lists recipes, newest first. Supports filtering by author,
// tag slugs (OR semantics, repeated "tags" parameter) and, for authenticated
// viewers, by is_favorited / is_in_shopping_cart.
func (h *RecipeHandler) HandleGetRecipes(c *fiber.Ctx) error {
	filter := services.RecipeListFilter{
		AuthorID:  c.Query("author"),
		Favorited: boolQuery(c, "is_favorited"),
		InCart:    boolQuery(c, "is_in_shopping_cart"),
	}
	for _, slug := range c.Context().QueryArgs().PeekMulti("tags") {
		filter.TagSlugs = append(filter.TagSlugs, string(slug))
	}

	recipes, err := h.service.ListRecipes(filter, currentUserID(c))
	if err != nil {
		log.Printf("Error getting recipes: %v", err)
		return respondError(c, "Could not retrieve recipes", err)
	}
	return c.JSON(recipes)
}

// HandleGetRecipeByID retrieves a single recipe. Anonymous access is
// read-only but allowed.
func (h *RecipeHandler) HandleGetRecipeByID(c *fiber.Ctx) error {
	recipeID := c.Params("id")
	recipe, err := h.service.GetRecipe(recipeID, currentUserID(c))
	if err != nil {
		log.Printf("Error getting recipe by ID %s: %v", recipeID, err)
		return respondError(c, fmt.Sprintf("Could not retrieve recipe %s", recipeID), err)
	}
	return c.JSON(recipe)
}

// HandleCreateRecipe creates a new recipe owned by the requester.
func (h *RecipeHandler) HandleCreateRecipe(c *fiber.Ctx) error {
	var input services.RecipeInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing recipe request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	recipe, err := h.service.CreateRecipe(&input, currentUserID(c))
	if err != nil {
		log.Printf("Error creating recipe: %v", err)
		return respondError(c, "Could not create recipe", err)
	}
	return c.Status(fiber.StatusCreated).JSON(recipe)
}

// HandleUpdateRecipe applies the full write shape to an existing recipe.
// Only the owner may update.
func (h *RecipeHandler) HandleUpdateRecipe(c *fiber.Ctx) error {
	recipeID := c.Params("id")
	var input services.RecipeInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing recipe request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	recipe, err := h.service.UpdateRecipe(recipeID, &input, currentUserID(c))
	if err != nil {
		log.Printf("Error updating recipe %s: %v", recipeID, err)
		return respondError(c, fmt.Sprintf("Could not update recipe %s", recipeID), err)
	}
	return c.JSON(recipe)
}

// HandleDeleteRecipe deletes a recipe. Only the owner may delete.
func (h *RecipeHandler) HandleDeleteRecipe(c *fiber.Ctx) error {
	recipeID := c.Params("id")
	if err := h.service.DeleteRecipe(recipeID, currentUserID(c)); err != nil {
		log.Printf("Error deleting recipe %s: %v", recipeID, err)
		return respondError(c, fmt.Sprintf("Could not delete recipe %s", recipeID), err)
	}
	return c.Status(fiber.StatusNoContent).Send(nil)
}

// HandleFavorite bookmarks the recipe for the requester.
func (h *RecipeHandler) HandleFavorite(c *fiber.Ctx) error {
	recipeID := c.Params("id")
	recipe, err := h.service.Favorite(recipeID, currentUserID(c))
	if err != nil {
		log.Printf("Error favoriting recipe %s: %v", recipeID, err)
		return respondError(c, fmt.Sprintf("Could not favorite recipe %s", recipeID), err)
	}
	return c.Status(fiber.StatusCreated).JSON(recipe)
}

// HandleUnfavorite removes the bookmark.
func (h *RecipeHandler) HandleUnfavorite(c *fiber.Ctx) error {
	recipeID := c.Params("id")
	if err := h.service.Unfavorite(recipeID, currentUserID(c)); err != nil {
		log.Printf("Error unfavoriting recipe %s: %v", recipeID, err)
		return respondError(c, fmt.Sprintf("Could not unfavorite recipe %s", recipeID), err)
	}
	return c.Status(fiber.StatusNoContent).Send(nil)
}

// HandleAddToCart puts the recipe into the requester's shopping cart.
func (h *RecipeHandler) HandleAddToCart(c *fiber.Ctx) error {
	recipeID := c.Params("id")
	recipe, err := h.service.AddToCart(recipeID, currentUserID(c))
	if err != nil {
		log.Printf("Error adding recipe %s to cart: %v", recipeID, err)
		return respondError(c, fmt.Sprintf("Could not add recipe %s to the shopping cart", recipeID), err)
	}
	return c.Status(fiber.StatusCreated).JSON(recipe)
}

// HandleRemoveFromCart removes the recipe from the requester's shopping cart.
func (h *RecipeHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	recipeID := c.Params("id")
	if err := h.service.RemoveFromCart(recipeID, currentUserID(c)); err != nil {
		log.Printf("Error removing recipe %s from cart: %v", recipeID, err)
		return respondError(c, fmt.Sprintf("Could not remove recipe %s from the shopping cart", recipeID), err)
	}
	return c.Status(fiber.StatusNoContent).Send(nil)
}

// HandleDownloadShoppingCart streams the requester's aggregated shopping
// list as a CSV attachment. Ingredients shared by several cart recipes come
// back as one row with the summed amount; an empty cart yields just the
// header row.
func (h *RecipeHandler) HandleDownloadShoppingCart(c *fiber.Ctx) error {
	items, err := h.service.ShoppingList(currentUserID(c))
	if err != nil {
		log.Printf("Error building shopping list: %v", err)
		return respondError(c, "Could not build the shopping list", err)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write([]string{"Name", "Amount", "Unit"}); err != nil {
		return respondError(c, "Could not write the shopping list", err)
	}
	for _, item := range items {
		record := []string{item.Name, strconv.Itoa(item.TotalAmount), item.MeasurementUnit}
		if err := writer.Write(record); err != nil {
			return respondError(c, "Could not write the shopping list", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return respondError(c, "Could not write the shopping list", err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	// The odd spelling is part of the public contract.
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="shoping_list.csv"`)
	return c.Send(buf.Bytes())
}
