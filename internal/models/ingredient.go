package models

// Ingredient is a reusable catalog entry. The amount used by a concrete
// recipe lives on the RecipeIngredient join row, not here.
type Ingredient struct {
	ID              string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name            string `json:"name" gorm:"index;type:varchar(200)" validate:"required,max=200"`
	MeasurementUnit string `json:"measurement_unit" gorm:"type:varchar(200)" validate:"required,max=200"`
}
