package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"resep/internal/models"
	"resep/internal/repositories"
	"resep/pkg/images"
	"resep/pkg/rabbitmq"

	"github.com/go-playground/validator/v10"
)

// RecipeIngredientInput is one (ingredient id, amount) pair of a recipe write.
type RecipeIngredientInput struct {
	ID     string `json:"id" validate:"required"`
	Amount int    `json:"amount" validate:"required,gt=0"`
}

// RecipeInput is the flat write shape for creating or updating a recipe.
// Any author field supplied by the client is ignored; the author is always
// the authenticated requester.
type RecipeInput struct {
	Name        string                  `json:"name" validate:"required,max=200"`
	Text        string                  `json:"text" validate:"required"`
	CookingTime int                     `json:"cooking_time" validate:"required,gt=0"`
	Tags        []string                `json:"tags" validate:"omitempty,dive,required"`
	Ingredients []RecipeIngredientInput `json:"ingredients" validate:"required,min=1,dive"`
	// Image is either a base64 data-URI to decode and store, or a reference
	// to an already stored file. Optional on update (keeps the current image).
	Image string `json:"image"`
}

// RecipeListFilter narrows a recipe listing. Favorited and InCart are
// viewer-relative and silently ignored for anonymous viewers.
type RecipeListFilter struct {
	AuthorID  string
	TagSlugs  []string
	Favorited bool
	InCart    bool
}

// RecipeService handles business logic related to recipes: CRUD with
// ownership checks, the favorite/cart toggles and the shopping-list
// aggregation.
type RecipeService struct {
	recipeRepo     repositories.RecipeRepository
	tagRepo        repositories.TagRepository
	ingredientRepo repositories.IngredientRepository
	favoriteRepo   repositories.FavoriteRepository
	cartRepo       repositories.CartRepository
	subRepo        repositories.SubscriptionRepository
	imageStore     *images.Store
	mqClient       *rabbitmq.Client
	validate       *validator.Validate
}

// NewRecipeService creates a new RecipeService. imageStore and mqClient may
// be nil; recipes then only accept pre-stored image references and no events
// are published.
func NewRecipeService(
	recipeRepo repositories.RecipeRepository,
	tagRepo repositories.TagRepository,
	ingredientRepo repositories.IngredientRepository,
	favoriteRepo repositories.FavoriteRepository,
	cartRepo repositories.CartRepository,
	subRepo repositories.SubscriptionRepository,
	imageStore *images.Store,
	mqClient *rabbitmq.Client,
) *RecipeService {
	return &RecipeService{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		favoriteRepo:   favoriteRepo,
		cartRepo:       cartRepo,
		subRepo:        subRepo,
		imageStore:     imageStore,
		mqClient:       mqClient,
		validate:       validator.New(),
	}
}

// viewer carries the per-request identity's relation sets so that list
// responses need one lookup per relation instead of one per recipe.
type viewer struct {
	id         string
	favorites  map[string]bool
	cart       map[string]bool
	subscribed map[string]bool
}

func (s *RecipeService) buildViewer(viewerID string) (*viewer, error) {
	v := &viewer{
		id:         viewerID,
		favorites:  map[string]bool{},
		cart:       map[string]bool{},
		subscribed: map[string]bool{},
	}
	if viewerID == "" {
		// Anonymous: every viewer-relative field stays false.
		return v, nil
	}

	favoriteIDs, err := s.favoriteRepo.RecipeIDs(viewerID)
	if err != nil {
		return nil, err
	}
	for _, id := range favoriteIDs {
		v.favorites[id] = true
	}

	cartIDs, err := s.cartRepo.RecipeIDs(viewerID)
	if err != nil {
		return nil, err
	}
	for _, id := range cartIDs {
		v.cart[id] = true
	}

	subs, err := s.subRepo.GetBySubscriber(viewerID)
	if err != nil {
		return nil, err
	}
	for i := range subs {
		v.subscribed[subs[i].AuthorID] = true
	}
	return v, nil
}

func (s *RecipeService) buildResponse(recipe *models.Recipe, v *viewer) RecipeResponse {
	ingredients := make([]RecipeIngredientResponse, 0, len(recipe.RecipeIngredients))
	for i := range recipe.RecipeIngredients {
		row := &recipe.RecipeIngredients[i]
		ingredients = append(ingredients, RecipeIngredientResponse{
			ID:              row.Ingredient.ID,
			Name:            row.Ingredient.Name,
			MeasurementUnit: row.Ingredient.MeasurementUnit,
			Amount:          row.Amount,
		})
	}

	tags := recipe.Tags
	if tags == nil {
		tags = []models.Tag{}
	}

	return RecipeResponse{
		ID:               recipe.ID,
		Tags:             tags,
		Author:           userResponse(&recipe.Author, v.subscribed[recipe.AuthorID]),
		Ingredients:      ingredients,
		IsFavorited:      v.favorites[recipe.ID],
		IsInShoppingCart: v.cart[recipe.ID],
		Name:             recipe.Name,
		Image:            recipe.Image,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
	}
}

// ListRecipes retrieves recipes matching the filter, newest first, annotated
// for the viewer. The favorited/in-cart filters only apply to authenticated
// viewers; for anonymous ones the constraint is silently dropped.
func (s *RecipeService) ListRecipes(filter RecipeListFilter, viewerID string) ([]RecipeResponse, error) {
	repoFilter := repositories.RecipeFilter{
		AuthorID: filter.AuthorID,
		TagSlugs: filter.TagSlugs,
	}
	if viewerID != "" {
		if filter.Favorited {
			repoFilter.FavoritedBy = viewerID
		}
		if filter.InCart {
			repoFilter.InCartOf = viewerID
		}
	}

	recipes, err := s.recipeRepo.GetAll(repoFilter)
	if err != nil {
		return nil, err
	}
	v, err := s.buildViewer(viewerID)
	if err != nil {
		return nil, err
	}

	responses := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		responses = append(responses, s.buildResponse(&recipes[i], v))
	}
	return responses, nil
}

// GetRecipe retrieves a single recipe annotated for the viewer.
func (s *RecipeService) GetRecipe(id, viewerID string) (*RecipeResponse, error) {
	recipe, err := s.recipeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	v, err := s.buildViewer(viewerID)
	if err != nil {
		return nil, err
	}
	resp := s.buildResponse(recipe, v)
	return &resp, nil
}

// CreateRecipe validates the input, stores the image, persists the recipe
// with its tag links and ingredient rows, and publishes a created event.
// The author is forced to authorID regardless of the input.
func (s *RecipeService) CreateRecipe(input *RecipeInput, authorID string) (*RecipeResponse, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	if input.Image == "" {
		return nil, validationError("image", "an image is required")
	}

	tags, err := s.resolveTags(input.Tags)
	if err != nil {
		return nil, err
	}
	rows, err := s.resolveIngredients(input.Ingredients)
	if err != nil {
		return nil, err
	}
	image, err := s.storeImage(input.Image)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		Name:              input.Name,
		Text:              input.Text,
		CookingTime:       input.CookingTime,
		Image:             image,
		AuthorID:          authorID,
		Tags:              tags,
		RecipeIngredients: rows,
	}
	if err := s.recipeRepo.Create(recipe); err != nil {
		return nil, err
	}

	s.publishEvent("recipe.created", recipe)

	return s.GetRecipe(recipe.ID, authorID)
}

// UpdateRecipe applies the full write shape to an existing recipe. Only the
// owner may update. The stored ingredient rows are replaced wholesale with
// the input list inside one transaction; concurrent updates are
// last-writer-wins at that granularity.
func (s *RecipeService) UpdateRecipe(id string, input *RecipeInput, requesterID string) (*RecipeResponse, error) {
	existing, err := s.recipeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing.AuthorID != requesterID {
		return nil, fmt.Errorf("recipe %s belongs to another author: %w", id, ErrForbidden)
	}

	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	tags, err := s.resolveTags(input.Tags)
	if err != nil {
		return nil, err
	}
	rows, err := s.resolveIngredients(input.Ingredients)
	if err != nil {
		return nil, err
	}

	image := existing.Image
	if input.Image != "" {
		image, err = s.storeImage(input.Image)
		if err != nil {
			return nil, err
		}
	}

	recipe := &models.Recipe{
		ID:                id,
		Name:              input.Name,
		Text:              input.Text,
		CookingTime:       input.CookingTime,
		Image:             image,
		AuthorID:          existing.AuthorID,
		Tags:              tags,
		RecipeIngredients: rows,
	}
	if err := s.recipeRepo.Update(recipe); err != nil {
		return nil, err
	}

	return s.GetRecipe(id, requesterID)
}

// DeleteRecipe removes a recipe and its dependent rows. Only the owner may
// delete.
func (s *RecipeService) DeleteRecipe(id, requesterID string) error {
	existing, err := s.recipeRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing.AuthorID != requesterID {
		return fmt.Errorf("recipe %s belongs to another author: %w", id, ErrForbidden)
	}

	if err := s.recipeRepo.Delete(id); err != nil {
		return err
	}

	s.publishEvent("recipe.deleted", existing)
	return nil
}

// Favorite bookmarks a recipe for the user. Adding the same pair twice fails
// with ErrDuplicate.
func (s *RecipeService) Favorite(recipeID, userID string) (*RecipeShortResponse, error) {
	recipe, err := s.recipeRepo.GetByID(recipeID)
	if err != nil {
		return nil, err
	}
	favorite := &models.FavoriteRecipe{UserID: userID, RecipeID: recipeID}
	if err := s.favoriteRepo.Create(favorite); err != nil {
		return nil, err
	}
	resp := shortRecipe(recipe)
	return &resp, nil
}

// Unfavorite removes the bookmark, failing with ErrNotFound when absent.
func (s *RecipeService) Unfavorite(recipeID, userID string) error {
	if _, err := s.recipeRepo.GetByID(recipeID); err != nil {
		return err
	}
	return s.favoriteRepo.Delete(userID, recipeID)
}

// AddToCart puts a recipe into the user's shopping cart. Adding the same
// pair twice fails with ErrDuplicate.
func (s *RecipeService) AddToCart(recipeID, userID string) (*RecipeShortResponse, error) {
	recipe, err := s.recipeRepo.GetByID(recipeID)
	if err != nil {
		return nil, err
	}
	entry := &models.ShoppingCart{UserID: userID, RecipeID: recipeID}
	if err := s.cartRepo.Create(entry); err != nil {
		return nil, err
	}
	resp := shortRecipe(recipe)
	return &resp, nil
}

// RemoveFromCart removes a recipe from the user's shopping cart, failing
// with ErrNotFound when absent.
func (s *RecipeService) RemoveFromCart(recipeID, userID string) error {
	if _, err := s.recipeRepo.GetByID(recipeID); err != nil {
		return err
	}
	return s.cartRepo.Delete(userID, recipeID)
}

// ShoppingList aggregates ingredient amounts over every recipe in the user's
// cart. An empty cart yields an empty list, not an error.
func (s *RecipeService) ShoppingList(userID string) ([]repositories.ShoppingListItem, error) {
	return s.recipeRepo.ShoppingList(userID)
}

// validateInput rejects recipes with no ingredients, a non-positive cooking
// time or a non-positive ingredient amount before anything is written.
func (s *RecipeService) validateInput(input *RecipeInput) error {
	if err := s.validate.Struct(input); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			e := validationErrors[0]
			return fmt.Errorf("%w: field '%s' failed on the '%s' tag", ErrValidation, e.Field(), e.Tag())
		}
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// resolveTags loads the referenced tags, failing with ErrNotFound when any
// ID is unknown.
func (s *RecipeService) resolveTags(ids []string) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	tags, err := s.tagRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, fmt.Errorf("one or more tags: %w", ErrNotFound)
	}
	return tags, nil
}

// resolveIngredients loads the referenced catalog entries and builds the
// join rows, failing with ErrNotFound when any ID is unknown.
func (s *RecipeService) resolveIngredients(inputs []RecipeIngredientInput) ([]models.RecipeIngredient, error) {
	ids := make([]string, 0, len(inputs))
	for _, in := range inputs {
		ids = append(ids, in.ID)
	}

	ingredients, err := s.ingredientRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		byID[ing.ID] = ing
	}

	rows := make([]models.RecipeIngredient, 0, len(inputs))
	for _, in := range inputs {
		if _, ok := byID[in.ID]; !ok {
			return nil, fmt.Errorf("ingredient with ID %s: %w", in.ID, ErrNotFound)
		}
		rows = append(rows, models.RecipeIngredient{
			IngredientID: in.ID,
			Amount:       in.Amount,
		})
	}
	return rows, nil
}

// storeImage persists a data-URI upload and passes stored references through.
func (s *RecipeService) storeImage(image string) (string, error) {
	if !images.IsDataURI(image) {
		return image, nil
	}
	if s.imageStore == nil {
		return "", fmt.Errorf("image uploads are not configured")
	}
	name, err := s.imageStore.SaveDataURI(image)
	if err != nil {
		return "", validationError("image", err.Error())
	}
	return name, nil
}

// publishEvent emits a recipe lifecycle event. Publishing is best-effort:
// failures are logged, never surfaced to the client.
func (s *RecipeService) publishEvent(eventType string, recipe *models.Recipe) {
	if s.mqClient == nil {
		log.Println("RabbitMQ client is not initialized. Skipping message publication.")
		return
	}

	body, err := json.Marshal(map[string]interface{}{
		"recipeID": recipe.ID,
		"authorID": recipe.AuthorID,
		"name":     recipe.Name,
	})
	if err != nil {
		log.Printf("Failed to marshal recipe event: %v", err)
		return
	}
	if err := s.mqClient.Publish(eventType, body); err != nil {
		log.Printf("Warning: Failed to publish %s event for recipe %s: %v", eventType, recipe.ID, err)
	} else {
		log.Printf("Successfully published %s event for recipe %s", eventType, recipe.ID)
	}
}
