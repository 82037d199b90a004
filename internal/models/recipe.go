package models

import "time"

// Recipe is a named dish with instructions, owned by exactly one author.
// Listings are ordered by publish time, newest first.
type Recipe struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string `json:"name" gorm:"type:varchar(200)"`
	Text        string `json:"text"`
	Image       string `json:"image" gorm:"type:varchar(255)"`
	CookingTime int    `json:"cooking_time"`

	AuthorID string `json:"-" gorm:"type:varchar(36);index"`
	Author   User   `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`

	Tags              []Tag              `json:"-" gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	RecipeIngredients []RecipeIngredient `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// RecipeIngredient attaches an Ingredient to a Recipe with a quantity.
// Rows exist only while their recipe does; a recipe update replaces the
// whole set rather than diffing it.
type RecipeIngredient struct {
	ID           string     `json:"-" gorm:"primaryKey;type:varchar(36)"`
	RecipeID     string     `json:"-" gorm:"type:varchar(36);index"`
	IngredientID string     `json:"-" gorm:"type:varchar(36)"`
	Ingredient   Ingredient `json:"-" gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
	Amount       int        `json:"amount"`
}
