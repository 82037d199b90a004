package handlers

import (
	"fmt"
	"log"
	"strconv"

	"resep/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user profiles and subscriptions.
type UserHandler struct {
	userService *services.UserService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, authService *services.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app. Fixed paths
// are registered before "/:id" so Fiber does not shadow them.
func (h *UserHandler) RegisterRoutes(router fiber.Router, authRequired, optionalAuth fiber.Handler) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", optionalAuth, h.HandleGetUsers)
	userRoutes.Get("/subscriptions", authRequired, h.HandleSubscriptions)
	userRoutes.Post("/set_password", authRequired, h.HandleSetPassword)
	userRoutes.Get("/:id", optionalAuth, h.HandleGetUserByID)
	userRoutes.Post("/:id/subscribe", authRequired, h.HandleSubscribe)
	userRoutes.Delete("/:id/subscribe", authRequired, h.HandleUnsubscribe)
}

// HandleGetUsers retrieves all users, annotated for the viewer when a token
// is present.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers(currentUserID(c))
	if err != nil {
		log.Printf("Error getting all users: %v", err)
		return respondError(c, "Could not retrieve users", err)
	}
	return c.JSON(users)
}

// HandleGetUserByID retrieves a single user profile.
func (h *UserHandler) HandleGetUserByID(c *fiber.Ctx) error {
	userID := c.Params("id")
	user, err := h.userService.GetUserByID(userID, currentUserID(c))
	if err != nil {
		log.Printf("Error getting user by ID %s: %v", userID, err)
		return respondError(c, fmt.Sprintf("Could not retrieve user %s", userID), err)
	}
	return c.JSON(user)
}

// SetPasswordRequest represents the request body for a password change.
type SetPasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

// HandleSetPassword changes the authenticated user's password.
func (h *UserHandler) HandleSetPassword(c *fiber.Ctx) error {
	var req SetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing set_password request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
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

	if err := h.authService.ChangePassword(currentUserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		log.Printf("Error changing password: %v", err)
		return respondError(c, "Could not change password", err)
	}
	return c.Status(fiber.StatusNoContent).Send(nil)
}

// HandleSubscriptions lists the authors the requester follows. An optional
// recipes_limit query parameter truncates each author's embedded recipe
// list; without it the lists come back untruncated.
func (h *UserHandler) HandleSubscriptions(c *fiber.Ctx) error {
	recipesLimit := 0
	limitRecipes := false
	if raw := c.Query("recipes_limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "recipes_limit must be an integer",
				"error":   err.Error(),
			})
		}
		recipesLimit = parsed
		limitRecipes = true
	}

	subs, err := h.userService.Subscriptions(currentUserID(c), recipesLimit, limitRecipes)
	if err != nil {
		log.Printf("Error listing subscriptions: %v", err)
		return respondError(c, "Could not retrieve subscriptions", err)
	}
	return c.JSON(subs)
}

// HandleSubscribe follows the author given by the path parameter.
func (h *UserHandler) HandleSubscribe(c *fiber.Ctx) error {
	authorID := c.Params("id")
	sub, err := h.userService.Subscribe(authorID, currentUserID(c))
	if err != nil {
		log.Printf("Error subscribing to author %s: %v", authorID, err)
		return respondError(c, fmt.Sprintf("Could not subscribe to author %s", authorID), err)
	}
	return c.Status(fiber.StatusCreated).JSON(sub)
}

// HandleUnsubscribe unfollows the author given by the path parameter.
func (h *UserHandler) HandleUnsubscribe(c *fiber.Ctx) error {
	authorID := c.Params("id")
	if err := h.userService.Unsubscribe(authorID, currentUserID(c)); err != nil {
		log.Printf("Error unsubscribing from author %s: %v", authorID, err)
		return respondError(c, fmt.Sprintf("Could not unsubscribe from author %s", authorID), err)
	}
	return c.Status(fiber.StatusNoContent).Send(nil)
}
