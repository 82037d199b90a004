package models

// Tag labels recipes, e.g. "breakfast" or "vegan". Tags are attached to
// recipes through the recipe_tags join table.
type Tag struct {
	ID    string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name  string `json:"name" gorm:"type:varchar(200)" validate:"required,max=200"`
	Color string `json:"color" gorm:"type:varchar(7)" validate:"required,hexcolor"`
	Slug  string `json:"slug" gorm:"uniqueIndex;type:varchar(200)" validate:"required,max=200"`
}
