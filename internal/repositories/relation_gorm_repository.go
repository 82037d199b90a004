package repositories

import (
	"errors"
	"fmt"

	"resep/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMSubscriptionRepository is a GORM implementation of SubscriptionRepository.
type GORMSubscriptionRepository struct {
	db *gorm.DB
}

// NewGORMSubscriptionRepository creates a new instance of GORMSubscriptionRepository.
func NewGORMSubscriptionRepository(db *gorm.DB) *GORMSubscriptionRepository {
	return &GORMSubscriptionRepository{
		db: db,
	}
}

// Create inserts a follow relation. The unique (author, subscriber) index
// resolves concurrent duplicate adds; the loser gets ErrDuplicate.
func (r *GORMSubscriptionRepository) Create(sub *models.Subscription) error {
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	if err := r.db.Create(sub).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("subscription to author %s: %w", sub.AuthorID, ErrDuplicate)
		}
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

// Delete removes a follow relation, reporting ErrNotFound when absent.
func (r *GORMSubscriptionRepository) Delete(authorID, subscriberID string) error {
	res := r.db.
		Where("author_id = ? AND subscriber_id = ?", authorID, subscriberID).
		Delete(&models.Subscription{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete subscription: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("subscription to author %s: %w", authorID, ErrNotFound)
	}
	return nil
}

// GetBySubscriber lists all subscriptions of one user with authors preloaded.
func (r *GORMSubscriptionRepository) GetBySubscriber(subscriberID string) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.
		Preload("Author").
		Where("subscriber_id = ?", subscriberID).
		Order("created_at DESC").
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get subscriptions for user %s: %w", subscriberID, err)
	}
	return subs, nil
}

// Exists reports whether the subscriber follows the author.
func (r *GORMSubscriptionRepository) Exists(authorID, subscriberID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Subscription{}).
		Where("author_id = ? AND subscriber_id = ?", authorID, subscriberID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check subscription: %w", err)
	}
	return count > 0, nil
}

// GORMFavoriteRepository is a GORM implementation of FavoriteRepository.
type GORMFavoriteRepository struct {
	db *gorm.DB
}

// NewGORMFavoriteRepository creates a new instance of GORMFavoriteRepository.
func NewGORMFavoriteRepository(db *gorm.DB) *GORMFavoriteRepository {
	return &GORMFavoriteRepository{
		db: db,
	}
}

// Create inserts a favorite row; a duplicate pair yields ErrDuplicate.
func (r *GORMFavoriteRepository) Create(favorite *models.FavoriteRecipe) error {
	if favorite.ID == "" {
		favorite.ID = uuid.New().String()
	}
	if err := r.db.Create(favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("favorite for recipe %s: %w", favorite.RecipeID, ErrDuplicate)
		}
		return fmt.Errorf("failed to create favorite: %w", err)
	}
	return nil
}

// Delete removes a favorite row, reporting ErrNotFound when absent.
func (r *GORMFavoriteRepository) Delete(userID, recipeID string) error {
	res := r.db.
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.FavoriteRecipe{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete favorite: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("favorite for recipe %s: %w", recipeID, ErrNotFound)
	}
	return nil
}

// RecipeIDs lists the IDs of every recipe the user has favorited.
func (r *GORMFavoriteRepository) RecipeIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.FavoriteRecipe{}).
		Where("user_id = ?", userID).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites for user %s: %w", userID, err)
	}
	return ids, nil
}

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// Create inserts a cart row; a duplicate pair yields ErrDuplicate.
func (r *GORMCartRepository) Create(entry *models.ShoppingCart) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if err := r.db.Create(entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("cart entry for recipe %s: %w", entry.RecipeID, ErrDuplicate)
		}
		return fmt.Errorf("failed to create cart entry: %w", err)
	}
	return nil
}

// Delete removes a cart row, reporting ErrNotFound when absent.
func (r *GORMCartRepository) Delete(userID, recipeID string) error {
	res := r.db.
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.ShoppingCart{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete cart entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart entry for recipe %s: %w", recipeID, ErrNotFound)
	}
	return nil
}

// RecipeIDs lists the IDs of every recipe in the user's cart.
func (r *GORMCartRepository) RecipeIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.ShoppingCart{}).
		Where("user_id = ?", userID).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cart entries for user %s: %w", userID, err)
	}
	return ids, nil
}
