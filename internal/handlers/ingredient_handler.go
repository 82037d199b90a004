package handlers

import (
	"fmt"
	"log"

	"resep/internal/models"
	"resep/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// IngredientHandler handles HTTP requests for the ingredient catalog.
type IngredientHandler struct {
	service  *services.IngredientService
	validate *validator.Validate
}

// NewIngredientHandler creates a new IngredientHandler.
func NewIngredientHandler(service *services.IngredientService) *IngredientHandler {
	return &IngredientHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the ingredient routes with the Fiber app.
func (h *IngredientHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	ingredientRoutes := router.Group("/ingredients")
	ingredientRoutes.Get("/", h.HandleSearchIngredients)
	ingredientRoutes.Get("/:id", h.HandleGetIngredientByID)
	ingredientRoutes.Post("/", authRequired, h.HandleCreateIngredient)
}

// HandleSearchIngredients lists ingredients ordered by name. The optional
// "name" query parameter restricts the result to a case-insensitive prefix.
func (h *IngredientHandler) HandleSearchIngredients(c *fiber.Ctx) error {
	ingredients, err := h.service.SearchIngredients(c.Query("name"))
	if err != nil {
		log.Printf("Error searching ingredients: %v", err)
		return respondError(c, "Could not retrieve ingredients", err)
	}
	return c.JSON(ingredients)
}

// HandleGetIngredientByID retrieves a single ingredient by its ID.
func (h *IngredientHandler) HandleGetIngredientByID(c *fiber.Ctx) error {
	ingredientID := c.Params("id")
	ingredient, err := h.service.GetIngredientByID(ingredientID)
	if err != nil {
		log.Printf("Error getting ingredient by ID %s: %v", ingredientID, err)
		return respondError(c, fmt.Sprintf("Could not retrieve ingredient %s", ingredientID), err)
	}
	return c.JSON(ingredient)
}

// HandleCreateIngredient creates a new catalog entry.
func (h *IngredientHandler) HandleCreateIngredient(c *fiber.Ctx) error {
	var ingredient models.Ingredient
	if err := c.BodyParser(&ingredient); err != nil {
		log.Printf("Error parsing ingredient request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(ingredient); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	if err := h.service.CreateIngredient(&ingredient); err != nil {
		log.Printf("Error creating ingredient: %v", err)
		return respondError(c, "Could not create ingredient", err)
	}
	return c.Status(fiber.StatusCreated).JSON(ingredient)
}
