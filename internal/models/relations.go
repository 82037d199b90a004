package models

import "time"

// Subscription is a directed follow relation from subscriber to author.
// A user cannot follow the same author twice, and cannot follow themselves;
// both rules are enforced by the database on top of the service checks.
type Subscription struct {
	ID           string `gorm:"primaryKey;type:varchar(36)"`
	AuthorID     string `gorm:"type:varchar(36);uniqueIndex:idx_subscription_pair;check:chk_subscription_not_self,author_id <> subscriber_id"`
	SubscriberID string `gorm:"type:varchar(36);uniqueIndex:idx_subscription_pair"`

	Author     User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Subscriber User `gorm:"foreignKey:SubscriberID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
}

// FavoriteRecipe bookmarks a recipe for a user. Unique per (user, recipe).
type FavoriteRecipe struct {
	ID       string `gorm:"primaryKey;type:varchar(36)"`
	UserID   string `gorm:"type:varchar(36);uniqueIndex:idx_favorite_pair"`
	RecipeID string `gorm:"type:varchar(36);uniqueIndex:idx_favorite_pair"`

	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
}

// ShoppingCart marks a recipe whose ingredients should be included in the
// user's downloadable shopping list. Unique per (user, recipe).
type ShoppingCart struct {
	ID       string `gorm:"primaryKey;type:varchar(36)"`
	UserID   string `gorm:"type:varchar(36);uniqueIndex:idx_cart_pair"`
	RecipeID string `gorm:"type:varchar(36);uniqueIndex:idx_cart_pair"`

	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
}
