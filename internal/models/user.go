package models

import "time"

// User represents a registered author of recipes.
type User struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Email     string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Username  string `json:"username" gorm:"uniqueIndex;type:varchar(150)" validate:"required,min=3,max=150"`
	FirstName string `json:"first_name" gorm:"type:varchar(150)" validate:"omitempty,max=150"`
	LastName  string `json:"last_name" gorm:"type:varchar(150)" validate:"omitempty,max=150"`
	Password  string `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized

	// Recipes are removed together with their author.
	Recipes []Recipe `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
