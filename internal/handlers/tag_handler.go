package handlers

import (
	"errors"
	"fmt"
	"log"

	"resep/internal/models"
	"resep/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// TagHandler handles HTTP requests for tags.
type TagHandler struct {
	service  *services.TagService
	validate *validator.Validate
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(service *services.TagService) *TagHandler {
	return &TagHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the tag routes with the Fiber app. Reads are
// public and unpaginated; mutations require authentication.
func (h *TagHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	tagRoutes := router.Group("/tags")
	tagRoutes.Get("/", h.HandleGetTags)
	tagRoutes.Get("/:id", h.HandleGetTagByID)
	tagRoutes.Post("/", authRequired, h.HandleCreateTag)
	tagRoutes.Put("/:id", authRequired, h.HandleUpdateTag)
	tagRoutes.Delete("/:id", authRequired, h.HandleDeleteTag)
}

// HandleGetTags retrieves all tags.
func (h *TagHandler) HandleGetTags(c *fiber.Ctx) error {
	tags, err := h.service.GetAllTags()
	if err != nil {
		log.Printf("Error getting all tags: %v", err)
		return respondError(c, "Could not retrieve tags", err)
	}
	return c.JSON(tags)
}

// HandleGetTagByID retrieves a single tag by its ID.
func (h *TagHandler) HandleGetTagByID(c *fiber.Ctx) error {
	tagID := c.Params("id")
	tag, err := h.service.GetTagByID(tagID)
	if err != nil {
		log.Printf("Error getting tag by ID %s: %v", tagID, err)
		return respondError(c, fmt.Sprintf("Could not retrieve tag %s", tagID), err)
	}
	return c.JSON(tag)
}

// HandleCreateTag creates a new tag.
func (h *TagHandler) HandleCreateTag(c *fiber.Ctx) error {
	var tag models.Tag
	if err := c.BodyParser(&tag); err != nil {
		log.Printf("Error parsing tag request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(tag); err != nil {
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

	if err := h.service.CreateTag(&tag); err != nil {
		log.Printf("Error creating tag: %v", err)
		// A slug collision is a conflict, like a taken username.
		if errors.Is(err, services.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Could not create tag",
				"error":   err.Error(),
			})
		}
		return respondError(c, "Could not create tag", err)
	}
	return c.Status(fiber.StatusCreated).JSON(tag)
}

// HandleUpdateTag updates an existing tag.
func (h *TagHandler) HandleUpdateTag(c *fiber.Ctx) error {
	var tag models.Tag
	if err := c.BodyParser(&tag); err != nil {
		log.Printf("Error parsing tag request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	tag.ID = c.Params("id")

	if err := h.validate.Struct(tag); err != nil {
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

	if err := h.service.UpdateTag(&tag); err != nil {
		log.Printf("Error updating tag %s: %v", tag.ID, err)
		if errors.Is(err, services.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": fmt.Sprintf("Could not update tag %s", tag.ID),
				"error":   err.Error(),
			})
		}
		return respondError(c, fmt.Sprintf("Could not update tag %s", tag.ID), err)
	}
	return c.JSON(tag)
}

// HandleDeleteTag deletes a tag by its ID.
func (h *TagHandler) HandleDeleteTag(c *fiber.Ctx) error {
	tagID := c.Params("id")
	if err := h.service.DeleteTag(tagID); err != nil {
		log.Printf("Error deleting tag %s: %v", tagID, err)
		return respondError(c, fmt.Sprintf("Could not delete tag %s", tagID), err)
	}
	return c.Status(fiber.StatusNoContent).Send(nil)
}
