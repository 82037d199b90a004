package services

import (
	"resep/internal/models"
	"resep/internal/repositories"
)

// UserService handles business logic for user profiles and the follow
// relation between subscribers and recipe authors.
type UserService struct {
	userRepo   repositories.UserRepository
	subRepo    repositories.SubscriptionRepository
	recipeRepo repositories.RecipeRepository
}

// NewUserService creates a new UserService.
func NewUserService(
	userRepo repositories.UserRepository,
	subRepo repositories.SubscriptionRepository,
	recipeRepo repositories.RecipeRepository,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		subRepo:    subRepo,
		recipeRepo: recipeRepo,
	}
}

// GetAllUsers lists all users, annotated for the viewer. An empty viewerID
// means anonymous, so every is_subscribed comes back false. The viewer's
// followed authors are loaded once, not per user.
func (s *UserService) GetAllUsers(viewerID string) ([]UserResponse, error) {
	users, err := s.userRepo.GetAll()
	if err != nil {
		return nil, err
	}

	subscribed := map[string]bool{}
	if viewerID != "" {
		subs, err := s.subRepo.GetBySubscriber(viewerID)
		if err != nil {
			return nil, err
		}
		for i := range subs {
			subscribed[subs[i].AuthorID] = true
		}
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, userResponse(&users[i], subscribed[users[i].ID]))
	}
	return responses, nil
}

// GetUserByID retrieves a single user, annotated for the viewer.
func (s *UserService) GetUserByID(id, viewerID string) (*UserResponse, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	isSubscribed := false
	if viewerID != "" {
		isSubscribed, err = s.subRepo.Exists(user.ID, viewerID)
		if err != nil {
			return nil, err
		}
	}
	resp := userResponse(user, isSubscribed)
	return &resp, nil
}

// Subscribe creates a follow relation from subscriber to author. It fails
// with ErrSelfSubscribe for author == subscriber, ErrNotFound for an unknown
// author and ErrDuplicate for an existing pair.
func (s *UserService) Subscribe(authorID, subscriberID string) (*SubscriptionResponse, error) {
	if authorID == subscriberID {
		return nil, ErrSelfSubscribe
	}

	author, err := s.userRepo.GetByID(authorID)
	if err != nil {
		return nil, err
	}

	sub := &models.Subscription{
		AuthorID:     authorID,
		SubscriberID: subscriberID,
	}
	if err := s.subRepo.Create(sub); err != nil {
		return nil, err
	}

	return s.buildSubscription(author, 0, false)
}

// Unsubscribe removes a follow relation, failing with ErrNotFound when the
// author does not exist or the relation is absent.
func (s *UserService) Unsubscribe(authorID, subscriberID string) error {
	if _, err := s.userRepo.GetByID(authorID); err != nil {
		return err
	}
	return s.subRepo.Delete(authorID, subscriberID)
}

// Subscriptions lists every author the subscriber follows. When limitRecipes
// is true each author's embedded recipe list is truncated to recipesLimit;
// the recipes_count stays untruncated either way.
func (s *UserService) Subscriptions(subscriberID string, recipesLimit int, limitRecipes bool) ([]SubscriptionResponse, error) {
	subs, err := s.subRepo.GetBySubscriber(subscriberID)
	if err != nil {
		return nil, err
	}

	responses := make([]SubscriptionResponse, 0, len(subs))
	for i := range subs {
		resp, err := s.buildSubscription(&subs[i].Author, recipesLimit, limitRecipes)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

// buildSubscription assembles one followed author with their recipes and
// total recipe count. is_subscribed is always true here: the caller only
// reaches this for authors the requester follows (or just followed).
func (s *UserService) buildSubscription(author *models.User, recipesLimit int, limitRecipes bool) (*SubscriptionResponse, error) {
	recipes, err := s.recipeRepo.GetByAuthor(author.ID)
	if err != nil {
		return nil, err
	}
	count, err := s.recipeRepo.CountByAuthor(author.ID)
	if err != nil {
		return nil, err
	}

	if limitRecipes && recipesLimit < len(recipes) {
		if recipesLimit < 0 {
			recipesLimit = 0
		}
		recipes = recipes[:recipesLimit]
	}

	shorts := make([]RecipeShortResponse, 0, len(recipes))
	for i := range recipes {
		shorts = append(shorts, shortRecipe(&recipes[i]))
	}

	return &SubscriptionResponse{
		Email:        author.Email,
		ID:           author.ID,
		Username:     author.Username,
		FirstName:    author.FirstName,
		LastName:     author.LastName,
		IsSubscribed: true,
		Recipes:      shorts,
		RecipesCount: int(count),
	}, nil
}
